// Package validation evaluates dataset rows against mapped rules in bounded
// batches and reports the violations.
package validation

import (
	"github.com/BartekS5/RCV/internal/dataset"
	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/utils"
)

// Derived per-entity columns added by Aggregate.
const (
	ColTotalAmount      = "Total_Amount"
	ColTransactionCount = "Transaction_Count"
)

// Aggregate computes per-entity totals over amountCol grouped by groupKey and
// broadcasts them onto every row of the entity. The two derived columns are
// recomputed from scratch on every call, so aggregating an already aggregated
// table yields the same result. Rows with a missing or nil group key are kept
// with nil aggregates rather than dropped.
func Aggregate(t *dataset.Table, groupKey, amountCol string) *dataset.Table {
	type entityAgg struct {
		total float64
		count int
	}
	groups := make(map[string]*entityAgg)

	for _, row := range t.Rows {
		keyVal, ok := row[groupKey]
		if !ok || keyVal == nil {
			continue
		}
		key := utils.ToKeyString(keyVal)
		agg := groups[key]
		if agg == nil {
			agg = &entityAgg{}
			groups[key] = agg
		}
		agg.count++
		if amt, err := utils.ToFloat64(row[amountCol]); err == nil {
			agg.total += amt
		} else if row[amountCol] != nil {
			logger.Warnf("Row with %s=%v: cannot sum %s value %v", groupKey, keyVal, amountCol, row[amountCol])
		}
	}

	t.AddColumn(ColTotalAmount)
	t.AddColumn(ColTransactionCount)

	for _, row := range t.Rows {
		keyVal, ok := row[groupKey]
		if !ok || keyVal == nil {
			row[ColTotalAmount] = nil
			row[ColTransactionCount] = nil
			continue
		}
		agg := groups[utils.ToKeyString(keyVal)]
		row[ColTotalAmount] = agg.total
		row[ColTransactionCount] = agg.count
	}
	return t
}
