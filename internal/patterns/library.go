package patterns

import (
	"github.com/papertrail/classifier/internal/domain"
)

// DefaultRules returns the built-in rule library, partitioned by category.
// The "other" category deliberately has no rules: it is the fallback when
// nothing else accumulates evidence.
func DefaultRules() []domain.PatternRule {
	rules := make([]domain.PatternRule, 0,
		len(invoiceRules)+len(contractRules)+len(legalRules)+len(memoRules)+len(reportRules))
	rules = append(rules, invoiceRules...)
	rules = append(rules, contractRules...)
	rules = append(rules, legalRules...)
	rules = append(rules, memoRules...)
	rules = append(rules, reportRules...)
	return rules
}

// FromKeywordRules converts persisted user rules into pattern rules.
// Disabled rows, unknown categories, and rows without keywords are skipped.
func FromKeywordRules(rows []domain.KeywordRule) []domain.PatternRule {
	rules := make([]domain.PatternRule, 0, len(rows))
	for _, row := range rows {
		if !row.Enabled || len(row.Keywords) == 0 {
			continue
		}
		if !domain.ValidCategory(row.Category) {
			continue
		}
		rules = append(rules, domain.PatternRule{
			Name:        row.RuleName,
			Category:    domain.Category(row.Category),
			Keywords:    row.Keywords,
			Weight:      clampWeight(row.Weight),
			AntiPattern: row.Anti,
		})
	}
	return rules
}

// clampWeight snaps a stored weight onto the nearest supported tier so a
// hand-edited database row cannot distort normalization.
func clampWeight(w float64) float64 {
	tiers := []float64{domain.WeightLow, domain.WeightMedium, domain.WeightHigh}
	best := tiers[0]
	bestDist := dist(w, best)
	for _, t := range tiers[1:] {
		if d := dist(w, t); d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
