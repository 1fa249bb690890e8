package rules

import (
	"strings"

	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/models"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultSimilarityThreshold is the minimum normalized similarity a dataset
// column must score before a rule's field name is rewritten to it.
const DefaultSimilarityThreshold = 0.6

var fieldSeparators = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// Similarity scores how close two field names are, in [0, 1]. Names are
// normalized (case-folded, separators collapsed to single spaces) before
// scoring, so "Customer ID" and "Customer_ID" compare equal.
func Similarity(a, b string) float64 {
	return strutil.Similarity(normalizeField(a), normalizeField(b), metrics.NewJaroWinkler())
}

func normalizeField(s string) string {
	s = fieldSeparators.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// MapFields rewrites each rule's free-text field name to the most similar
// dataset column. Columns are scanned in their given order and only a
// strictly greater score replaces the current best, so identical inputs
// always produce identical mappings. A rule whose best score falls below
// threshold is marked Unmapped and warned about once; it is excluded from
// validation rather than guessed at. The input slice is left untouched.
func MapFields(in []models.Rule, columns []string, threshold float64) []models.Rule {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	out := make([]models.Rule, len(in))
	for i, rule := range in {
		mapped := rule

		bestScore := -1.0
		bestCol := ""
		for _, col := range columns {
			if score := Similarity(rule.Field, col); score > bestScore {
				bestScore = score
				bestCol = col
			}
		}

		if bestCol == "" || bestScore < threshold {
			mapped.Unmapped = true
			logger.Warnf("Rule %q: field %q matched no dataset column (best score %.2f); excluding from validation",
				rule.Type, rule.Field, bestScore)
		} else {
			mapped.Field = bestCol
		}
		out[i] = mapped
	}
	return out
}
