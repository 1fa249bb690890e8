package models

import "fmt"

// RuleType identifies the kind of constraint a rule expresses.
type RuleType string

const (
	RuleMinValue         RuleType = "min_value"
	RuleMaxValue         RuleType = "max_value"
	RuleDigitLength      RuleType = "digit_length"
	RuleFormat           RuleType = "format"
	RuleAllowedValues    RuleType = "allowed_values"
	RuleAggregatedAmount RuleType = "aggregated_amount"
)

// Rule is a structured constraint derived from free-text regulatory rules.
// Which payload field is populated depends on Type; unknown types are passed
// through to the validator untouched and left for the model to interpret.
type Rule struct {
	Type      RuleType `json:"type"`
	Field     string   `json:"field"`
	Value     *float64 `json:"value,omitempty"`
	Values    []string `json:"values,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Format    string   `json:"format,omitempty"`

	// Unmapped is set by the field mapper when no dataset column scored above
	// the similarity threshold. Unmapped rules are excluded from validation.
	Unmapped bool `json:"-"`
}

// CheckPayload verifies the kind-specific payload is present, so a rule with
// missing keys fails here instead of at prompt-building time.
func (r Rule) CheckPayload() error {
	if r.Field == "" {
		return fmt.Errorf("rule %q: missing field name", r.Type)
	}
	switch r.Type {
	case RuleMinValue, RuleMaxValue:
		if r.Value == nil {
			return fmt.Errorf("rule %q on %q: missing value", r.Type, r.Field)
		}
	case RuleAllowedValues:
		if len(r.Values) == 0 {
			return fmt.Errorf("rule %q on %q: missing values", r.Type, r.Field)
		}
	case RuleAggregatedAmount:
		if r.Threshold == nil {
			return fmt.Errorf("rule %q on %q: missing threshold", r.Type, r.Field)
		}
	}
	return nil
}
