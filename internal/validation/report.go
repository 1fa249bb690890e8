package validation

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BartekS5/RCV/internal/dataset"
	"github.com/BartekS5/RCV/pkg/models"
)

// BuildViolationRecords filters results down to invalid rows and joins each
// with a snapshot of its original row by global record id.
func BuildViolationRecords(results []models.ValidationResult, t *dataset.Table) []models.ViolationRecord {
	var records []models.ViolationRecord
	for _, res := range results {
		if res.IsValid {
			continue
		}
		var snapshot map[string]interface{}
		if res.RecordID >= 0 && res.RecordID < t.Len() {
			snapshot = make(map[string]interface{}, len(t.Rows[res.RecordID]))
			for k, v := range t.Rows[res.RecordID] {
				snapshot[k] = v
			}
		}
		records = append(records, models.ViolationRecord{
			RecordID:   res.RecordID,
			Record:     snapshot,
			Violations: res.Violations,
		})
	}
	return records
}

// ConsoleReporter prints one formatted block per violation record.
type ConsoleReporter struct {
	Out io.Writer
}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

func (r *ConsoleReporter) Report(records []models.ViolationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(r.Out, "No violations found. All records passed validation.")
		return
	}

	fmt.Fprintf(r.Out, "=== Violations Found: %d record(s) ===\n", len(records))
	for _, rec := range records {
		fmt.Fprintln(r.Out, "----------------------------------")
		fmt.Fprintf(r.Out, "Record ID: %d\n", rec.RecordID)

		// Sorted keys keep the snapshot output stable across runs.
		keys := make([]string, 0, len(rec.Record))
		for k := range rec.Record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(r.Out, "  %s: %v\n", k, rec.Record[k])
		}

		fmt.Fprintln(r.Out, "Violations:")
		for _, v := range rec.Violations {
			fmt.Fprintf(r.Out, "  - %s\n", v)
		}
	}
}
