// Package rules turns free-text regulatory rules into structured constraints
// and resolves their field names against actual dataset columns.
package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BartekS5/RCV/internal/llm"
	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/models"
)

// ErrMalformedRuleResponse marks a model response that is not a JSON array
// of rule objects.
var ErrMalformedRuleResponse = errors.New("malformed rule response")

const parsePrompt = `Extract every validation rule from the regulatory text below.

Respond with ONLY a JSON array, no explanation and no markdown. Each element
must be an object of the form:
{"type": "<min_value|max_value|digit_length|format|allowed_values|aggregated_amount>",
 "field": "<field name the rule applies to>",
 "value": <number, for value and length rules>,
 "values": [<string>, ...] (for allowed_values rules),
 "threshold": <number, for aggregated_amount rules>,
 "format": "<expected format, for format rules>"}
Omit keys that do not apply to the rule.

Regulatory text:
%s`

// Parser converts raw regulatory text into rules via one model call.
type Parser struct {
	LLM llm.Completer
}

func NewParser(completer llm.Completer) *Parser {
	return &Parser{LLM: completer}
}

// Parse sends the raw rule text to the model and decodes the JSON array it
// returns. A response that is not a JSON array fails the whole parse with
// ErrMalformedRuleResponse; a single rule with a missing payload is dropped
// with a warning and the rest are kept.
func (p *Parser) Parse(ctx context.Context, rawText string) ([]models.Rule, error) {
	raw, err := p.LLM.Complete(ctx, fmt.Sprintf(parsePrompt, rawText))
	if err != nil {
		return nil, err
	}

	var parsed []models.Rule
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRuleResponse, err)
	}

	rules := make([]models.Rule, 0, len(parsed))
	for _, r := range parsed {
		if err := r.CheckPayload(); err != nil {
			logger.Warnf("Skipping rule: %v", err)
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}
