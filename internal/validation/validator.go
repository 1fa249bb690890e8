package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BartekS5/RCV/internal/dataset"
	"github.com/BartekS5/RCV/internal/llm"
	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/models"
)

// ErrMalformedValidationResponse marks a batch response that is missing,
// not a JSON object, or whose results length does not match the batch.
var ErrMalformedValidationResponse = errors.New("malformed validation response")

// DefaultBatchSize bounds how many rows are sent to the model per call.
const DefaultBatchSize = 10

const validationPrompt = `You are a financial compliance validator. Evaluate every record below
against every rule and report each record's violations.

Rules:
%s

Records:
%s

Respond with ONLY a JSON object, no explanation and no markdown, of the form:
{"results": [{"record_id": <int>, "is_valid": <bool>, "violations": ["<human-readable violation>", ...]}, ...]}
Return exactly one entry per record, in the same order as the records, using
each record's "record_id" value. A record with no violations has
"is_valid": true and an empty violations array.`

// BatchValidator partitions an aggregated dataset into contiguous batches
// and has the model evaluate each batch against the mapped rules.
type BatchValidator struct {
	LLM       llm.Completer
	BatchSize int
}

func NewBatchValidator(completer llm.Completer, batchSize int) *BatchValidator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchValidator{LLM: completer, BatchSize: batchSize}
}

type batchResponse struct {
	Results []models.ValidationResult `json:"results"`
}

// Validate evaluates every row of the table in row order and returns one
// result per row, record ids remapped from batch-local to global indexes.
// A batch whose response stays malformed after a retry, or whose remote call
// fails outright, is marked undetermined (every row invalid with a single
// explanatory violation) and processing continues with the next batch.
func (v *BatchValidator) Validate(ctx context.Context, t *dataset.Table, mapped []models.Rule) ([]models.ValidationResult, error) {
	active := make([]models.Rule, 0, len(mapped))
	for _, r := range mapped {
		if !r.Unmapped {
			active = append(active, r)
		}
	}

	if t == nil || t.Len() == 0 {
		return []models.ValidationResult{}, nil
	}

	results := make([]models.ValidationResult, 0, t.Len())
	for start := 0; start < t.Len(); start += v.BatchSize {
		end := start + v.BatchSize
		if end > t.Len() {
			end = t.Len()
		}
		batch := t.Rows[start:end]

		batchResults, err := v.validateBatch(ctx, batch, active)
		if err != nil {
			logger.Warnf("Batch rows %d-%d undetermined: %v", start, end-1, err)
			batchResults = undeterminedResults(len(batch), err)
		}

		// The model reports batch-local ids; downstream consumers index by
		// global row position.
		for i := range batchResults {
			batchResults[i].RecordID = start + i
		}
		results = append(results, batchResults...)
	}
	return results, nil
}

// validateBatch sends one batch to the model, retrying once on a malformed
// response before giving up. Remote-call failures are not retried here; the
// completer already applies its own bounded retry.
func (v *BatchValidator) validateBatch(ctx context.Context, batch []dataset.Row, rules []models.Rule) ([]models.ValidationResult, error) {
	prompt, err := buildValidationPrompt(batch, rules)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := v.LLM.Complete(ctx, prompt)
		if err != nil {
			return nil, err
		}

		var resp batchResponse
		if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &resp); err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrMalformedValidationResponse, err)
			continue
		}
		if len(resp.Results) != len(batch) {
			lastErr = fmt.Errorf("%w: got %d results for %d rows", ErrMalformedValidationResponse, len(resp.Results), len(batch))
			continue
		}
		return resp.Results, nil
	}
	return nil, lastErr
}

func buildValidationPrompt(batch []dataset.Row, rules []models.Rule) (string, error) {
	rulesJSON, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize rules: %w", err)
	}

	records := make([]map[string]interface{}, len(batch))
	for i, row := range batch {
		record := make(map[string]interface{}, len(row)+1)
		for k, val := range row {
			record[k] = val
		}
		record["record_id"] = i
		records[i] = record
	}
	recordsJSON, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize batch: %w", err)
	}

	return fmt.Sprintf(validationPrompt, rulesJSON, recordsJSON), nil
}

func undeterminedResults(n int, cause error) []models.ValidationResult {
	out := make([]models.ValidationResult, n)
	for i := range out {
		out[i] = models.ValidationResult{
			IsValid:    false,
			Violations: []string{fmt.Sprintf("validation undetermined: %v", cause)},
		}
	}
	return out
}
