package validation

import (
	"context"
	"fmt"
	"testing"

	"github.com/BartekS5/RCV/internal/dataset"
	"github.com/BartekS5/RCV/pkg/models"
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

func minValueRule(field string, min float64) models.Rule {
	return models.Rule{Type: models.RuleMinValue, Field: field, Value: &min}
}

func fiveRowTable() *dataset.Table {
	t := &dataset.Table{Columns: []string{"Customer_ID", "Transaction_Amt"}}
	amounts := []float64{50, 150, 250, 80, 500}
	for i, amt := range amounts {
		t.Rows = append(t.Rows, dataset.Row{
			"Customer_ID":     float64(i + 1),
			"Transaction_Amt": amt,
		})
	}
	return t
}

func TestValidateRemapsToGlobalOrder(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		`{"results": [
			{"record_id": 0, "is_valid": false, "violations": ["Transaction amount below minimum"]},
			{"record_id": 1, "is_valid": true, "violations": []}
		]}`,
		`{"results": [
			{"record_id": 0, "is_valid": true, "violations": []},
			{"record_id": 1, "is_valid": false, "violations": ["Transaction amount below minimum"]}
		]}`,
		`{"results": [
			{"record_id": 0, "is_valid": true, "violations": []}
		]}`,
	}}

	results, err := NewBatchValidator(stub, 2).Validate(context.Background(), fiveRowTable(), []models.Rule{minValueRule("Transaction_Amt", 100)})
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, 3, stub.calls)

	for i, res := range results {
		assert.Equal(t, i, res.RecordID)
	}
	assert.False(t, results[0].IsValid)
	assert.True(t, results[1].IsValid)
	assert.True(t, results[2].IsValid)
	assert.False(t, results[3].IsValid)
	assert.True(t, results[4].IsValid)
}

func TestValidateEmptyTableMakesNoCalls(t *testing.T) {
	stub := &stubCompleter{}
	table := &dataset.Table{Columns: []string{"Customer_ID", "Transaction_Amt"}}

	results, err := NewBatchValidator(stub, 10).Validate(context.Background(), table, []models.Rule{minValueRule("Transaction_Amt", 100)})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, stub.calls)
}

func TestValidateMalformedResponseMarksBatchUndetermined(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		"this is not json",
		"still not json",
		`{"results": [
			{"record_id": 0, "is_valid": true, "violations": []},
			{"record_id": 1, "is_valid": true, "violations": []}
		]}`,
	}}

	table := fiveRowTable()
	table.Rows = table.Rows[:4]

	results, err := NewBatchValidator(stub, 2).Validate(context.Background(), table, []models.Rule{minValueRule("Transaction_Amt", 100)})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// First batch: two failed attempts, rows reported rather than skipped.
	assert.Equal(t, 3, stub.calls)
	for i := 0; i < 2; i++ {
		assert.Equal(t, i, results[i].RecordID)
		assert.False(t, results[i].IsValid)
		require.Len(t, results[i].Violations, 1)
		assert.Contains(t, results[i].Violations[0], "validation undetermined")
	}

	// Second batch still validated normally.
	assert.True(t, results[2].IsValid)
	assert.True(t, results[3].IsValid)
}

func TestValidateLengthMismatchMarksBatchUndetermined(t *testing.T) {
	short := `{"results": [{"record_id": 0, "is_valid": true, "violations": []}]}`
	stub := &stubCompleter{responses: []string{short, short}}

	table := fiveRowTable()
	table.Rows = table.Rows[:2]

	results, err := NewBatchValidator(stub, 10).Validate(context.Background(), table, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, stub.calls)
	for _, res := range results {
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Violations[0], "validation undetermined")
	}
}

func TestValidateExcludesUnmappedRules(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		`{"results": [{"record_id": 0, "is_valid": true, "violations": []}]}`,
	}}

	table := fiveRowTable()
	table.Rows = table.Rows[:1]

	mapped := []models.Rule{
		minValueRule("Transaction_Amt", 100),
		{Type: models.RuleFormat, Field: "XYZQ", Unmapped: true},
	}

	_, err := NewBatchValidator(stub, 10).Validate(context.Background(), table, mapped)
	require.NoError(t, err)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Transaction_Amt")
	assert.NotContains(t, stub.prompts[0], "XYZQ")
}

func TestValidatePromptCarriesBatchLocalIDs(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		`{"results": [
			{"record_id": 0, "is_valid": true, "violations": []},
			{"record_id": 1, "is_valid": true, "violations": []}
		]}`,
		`{"results": [
			{"record_id": 0, "is_valid": true, "violations": []}
		]}`,
	}}

	table := fiveRowTable()
	table.Rows = table.Rows[:3]

	_, err := NewBatchValidator(stub, 2).Validate(context.Background(), table, nil)
	require.NoError(t, err)
	require.Len(t, stub.prompts, 2)

	// The second batch's single row is presented to the model as record 0.
	assert.Contains(t, stub.prompts[1], `"record_id": 0`)
	assert.NotContains(t, stub.prompts[1], `"record_id": 2`)
}
