package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
)

const richInvoiceText = `INVOICE
Invoice Number: 2024-0042
Bill To: Example Corp
Purchase Order #889
Subtotal: $1,000.00
Sales Tax: $250.00
Amount Due: $1,250.00
Payment Terms: Net 30, due upon receipt
Remit payment to accounts receivable`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	bundle, err := model.TrainSeed(false)
	require.NoError(t, err)

	scorer := patterns.NewScorer(patterns.DefaultRules(), nil)
	return NewEngine(bundle, scorer, nil, nil, Config{Version: "test"})
}

func TestClassifyInvoiceHighConfidence(t *testing.T) {
	engine := newTestEngine(t)

	doc := domain.NewDocument("doc-1", "invoice.txt", richInvoiceText)
	result := engine.Classify(context.Background(), doc)

	assert.Equal(t, domain.CategoryInvoice, result.Category)
	assert.Greater(t, result.Confidence, 0.9)
	assertValidResult(t, result)
}

func TestClassifyGarbageLowConfidence(t *testing.T) {
	engine := newTestEngine(t)

	doc := domain.NewDocument("doc-2", "noise.txt", "zxqv flerp wibble snorf blarg")
	result := engine.Classify(context.Background(), doc)

	assert.Less(t, result.Confidence, 0.7)
	assertValidResult(t, result)
}

func TestClassifyEmptyText(t *testing.T) {
	engine := newTestEngine(t)

	for _, text := range []string{"", "   \n\t  "} {
		doc := domain.NewDocument("doc-3", "empty.txt", text)
		result := engine.Classify(context.Background(), doc)

		assert.Equal(t, domain.CategoryOther, result.Category)
		assert.Less(t, result.Confidence, 0.2)
		assert.Zero(t, result.ConfidenceBoost)
		assert.Zero(t, result.PatternBoost)
		assertValidResult(t, result)
	}
}

func TestClassifyWinnerIsBaseArgmax(t *testing.T) {
	engine := newTestEngine(t)

	texts := []string{
		richInvoiceText,
		"memorandum to all staff regarding the updated meeting policy",
		"quarterly performance report with executive summary and findings",
		"this agreement is made between the parties hereinafter the provider",
		"notice of legal proceedings plaintiff defendant superior court",
		"assorted notes about nothing in particular",
	}
	for _, text := range texts {
		result := engine.Classify(context.Background(), domain.NewDocument("d", "f.txt", text))

		best := result.Category
		for cat, b := range result.Breakdown {
			if b.BaseScore > result.Breakdown[best].BaseScore {
				best = cat
			}
		}
		assert.Equal(t, best, result.Category, "boosting changed the winner for: %s", text)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	doc := domain.NewDocument("doc-4", "contract.txt",
		"This Agreement is made between Acme Corp and the undersigned. IN WITNESS WHEREOF.")

	first := engine.Classify(context.Background(), doc)
	second := engine.Classify(context.Background(), doc)

	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.BaseConfidence, second.BaseConfidence)
	require.Len(t, second.Breakdown, len(first.Breakdown))
	for cat, b := range first.Breakdown {
		assert.Equal(t, b, second.Breakdown[cat])
	}
}

func TestClassifyBatch(t *testing.T) {
	engine := newTestEngine(t)

	docs := []*domain.Document{
		domain.NewDocument("a", "a.txt", richInvoiceText),
		domain.NewDocument("b", "b.txt", ""),
	}
	results := engine.ClassifyBatch(context.Background(), docs)

	require.Len(t, results, 2)
	assert.Equal(t, domain.CategoryInvoice, results[0].Category)
	assert.Equal(t, domain.CategoryOther, results[1].Category)
}

func TestUpdateRulesChangesScoring(t *testing.T) {
	engine := newTestEngine(t)
	builtinCount := engine.RuleCount()

	doc := domain.NewDocument("doc-5", "weird.txt", "flux capacitor maintenance schedule")
	before := engine.Classify(context.Background(), doc)

	engine.UpdateRules([]domain.PatternRule{
		{
			Name:     "user_flux",
			Category: domain.CategoryReport,
			Keywords: []string{"flux capacitor"},
			Weight:   domain.WeightHigh,
		},
	})
	assert.Equal(t, builtinCount+1, engine.RuleCount())

	after := engine.Classify(context.Background(), doc)
	assert.Greater(t,
		after.Breakdown[domain.CategoryReport].PatternScore,
		before.Breakdown[domain.CategoryReport].PatternScore)
}

func assertValidResult(t *testing.T, result *domain.ClassificationResult) {
	t.Helper()

	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	require.Len(t, result.Breakdown, domain.NumCategories)

	var probSum float64
	for cat, b := range result.Breakdown {
		assert.GreaterOrEqual(t, b.Probability, 0.0, "category %s", cat)
		assert.GreaterOrEqual(t, b.PatternScore, 0.0, "category %s", cat)
		assert.LessOrEqual(t, b.PatternScore, 1.0, "category %s", cat)
		probSum += b.Probability
	}
	assert.InDelta(t, 1.0, probSum, 1e-9)
	assert.Equal(t, "test", result.EngineVersion)
}
