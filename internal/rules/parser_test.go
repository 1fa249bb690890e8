package rules

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	responses []string
	calls     int
	prompts   []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("unexpected call %d", s.calls+1)
	}
	s.prompts = append(s.prompts, prompt)
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func TestParseRules(t *testing.T) {
	stub := &stubCompleter{responses: []string{`
	[
		{"type": "min_value", "field": "Transaction_Amount", "value": 100},
		{"type": "max_value", "field": "Transaction_Amount", "value": 10000}
	]`}}

	parsed, err := NewParser(stub).Parse(context.Background(), "Transactions must be between $100 and $10,000")
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, "min_value", string(parsed[0].Type))
	require.NotNil(t, parsed[0].Value)
	assert.Equal(t, 100.0, *parsed[0].Value)

	assert.Equal(t, "max_value", string(parsed[1].Type))
	require.NotNil(t, parsed[1].Value)
	assert.Equal(t, 10000.0, *parsed[1].Value)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Transactions must be between")
}

func TestParseRulesFencedJSON(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		"```json\n[{\"type\": \"digit_length\", \"field\": \"Customer ID\", \"value\": 6}]\n```",
	}}

	parsed, err := NewParser(stub).Parse(context.Background(), "Customer ID length must be at least 6 characters")
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Customer ID", parsed[0].Field)
}

func TestParseRulesMalformedResponse(t *testing.T) {
	stub := &stubCompleter{responses: []string{"I cannot extract any rules from this text."}}

	_, err := NewParser(stub).Parse(context.Background(), "some rules")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRuleResponse)
}

func TestParseRulesNotAnArray(t *testing.T) {
	stub := &stubCompleter{responses: []string{`{"type": "min_value", "field": "Amount", "value": 1}`}}

	_, err := NewParser(stub).Parse(context.Background(), "some rules")
	assert.ErrorIs(t, err, ErrMalformedRuleResponse)
}

func TestParseRulesDropsIncompletePayloads(t *testing.T) {
	// A min_value rule without its value and a rule without a field are
	// dropped; the digit_length rule without a value is legitimate.
	stub := &stubCompleter{responses: []string{`
	[
		{"type": "min_value", "field": "Transaction_Amt", "value": 100},
		{"type": "min_value", "field": "Transaction_Amt"},
		{"type": "allowed_values", "values": ["Savings"]},
		{"type": "digit_length", "field": "Customer ID"}
	]`}}

	parsed, err := NewParser(stub).Parse(context.Background(), "rules")
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "Transaction_Amt", parsed[0].Field)
	assert.Equal(t, "Customer ID", parsed[1].Field)
}
