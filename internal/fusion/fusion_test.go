package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/classifier/internal/domain"
)

func uniformProbs() domain.ProbabilityVector {
	probs := domain.NewProbabilityVector()
	for _, cat := range domain.Categories() {
		probs[cat] = 1.0 / float64(domain.NumCategories)
	}
	return probs
}

func TestFuseStrongAgreement(t *testing.T) {
	probs := uniformProbs()
	probs[domain.CategoryInvoice] = 0.9
	probs[domain.CategoryOther] = 0.1 / 5
	scores := domain.NewScoreVector()
	scores[domain.CategoryInvoice] = 0.9

	result := Fuse(probs, scores)
	assert.Equal(t, domain.CategoryInvoice, result.Category)
	// base = 0.55*0.9 + 0.45*0.9 = 0.9, strong band plus pattern boost.
	assert.InDelta(t, 0.9, result.BaseConfidence, 1e-9)
	assert.InDelta(t, boostStrong, result.ConfidenceBoost, 1e-12)
	assert.InDelta(t, patternBoost, result.PatternBoost, 1e-12)
	assert.InDelta(t, 1.0, result.Confidence, 1e-12)
}

func TestFuseWinnerIsArgmaxBeforeBoosting(t *testing.T) {
	probs := uniformProbs()
	probs[domain.CategoryContract] = 0.4
	probs[domain.CategoryMemo] = 0.35
	scores := domain.NewScoreVector()
	// Memo's pattern boost eligibility must not flip the winner.
	scores[domain.CategoryContract] = 0.5
	scores[domain.CategoryMemo] = 0.4

	result := Fuse(probs, scores)
	// contract base 0.55*0.4+0.45*0.5 = 0.445; memo 0.55*0.35+0.45*0.4 = 0.3725
	assert.Equal(t, domain.CategoryContract, result.Category)
	assert.InDelta(t, 0.445, result.BaseConfidence, 1e-9)
}

func TestFuseTieBreaks(t *testing.T) {
	t.Run("higher pattern score wins", func(t *testing.T) {
		// invoice: 0.55*0.45 + 0.45*0    = 0.2475
		// report:  0.55*0    + 0.45*0.55 = 0.2475 (exact tie, same operands)
		probs := domain.NewProbabilityVector()
		probs[domain.CategoryInvoice] = 0.45
		scores := domain.NewScoreVector()
		scores[domain.CategoryReport] = 0.55

		result := Fuse(probs, scores)
		assert.Equal(t, domain.CategoryReport, result.Category)
	})

	t.Run("canonical order on full tie", func(t *testing.T) {
		result := Fuse(uniformProbs(), domain.NewScoreVector())
		assert.Equal(t, domain.CategoryInvoice, result.Category)
	})
}

func TestFuseDegenerateInputs(t *testing.T) {
	result := Fuse(uniformProbs(), domain.NewScoreVector())
	// base = 0.55/6 ~ 0.0917: no boost bands reached, low confidence.
	assert.InDelta(t, 0.55/6.0, result.BaseConfidence, 1e-9)
	assert.Zero(t, result.ConfidenceBoost)
	assert.Zero(t, result.PatternBoost)
	assert.Less(t, result.Confidence, 0.2)
	require.Len(t, result.Breakdown, domain.NumCategories)
}

func TestFuseAmbiguousStaysLowConfidence(t *testing.T) {
	probs := uniformProbs()
	probs[domain.CategoryInvoice] = 0.35
	probs[domain.CategoryContract] = 0.35
	scores := domain.NewScoreVector()
	scores[domain.CategoryInvoice] = 0.45
	scores[domain.CategoryContract] = 0.45

	result := Fuse(probs, scores)
	assert.Less(t, result.Confidence, 0.7)
}

func TestConfidenceBoostBands(t *testing.T) {
	tests := []struct {
		name string
		base float64
		want float64
	}{
		{"below weak band", 0.54, 0},
		{"weak band floor", 0.55, boostWeak},
		{"weak band interior", 0.69, boostWeak},
		{"moderate band floor", 0.70, boostModerate},
		{"moderate band interior", 0.84, boostModerate},
		{"strong band floor", 0.85, boostStrong},
		{"strong band interior", 0.99, boostStrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, confidenceBoost(tt.base), 1e-12)
		})
	}
}

func TestFuseConfidenceClamped(t *testing.T) {
	probs := domain.NewProbabilityVector()
	probs[domain.CategoryLegal] = 1.0
	scores := domain.NewScoreVector()
	scores[domain.CategoryLegal] = 1.0

	result := Fuse(probs, scores)
	assert.Equal(t, domain.CategoryLegal, result.Category)
	assert.Equal(t, 1.0, result.Confidence)
}
