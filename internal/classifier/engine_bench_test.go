package classifier

import (
	"context"
	"strings"
	"testing"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
)

// BenchmarkClassify benchmarks the full pipeline on a mid-size document.
func BenchmarkClassify(b *testing.B) {
	bundle, err := model.TrainSeed(false)
	if err != nil {
		b.Fatal(err)
	}
	engine := NewEngine(bundle, patterns.NewScorer(patterns.DefaultRules(), nil), nil, nil, Config{Version: "bench"})

	doc := domain.NewDocument("bench", "bench.txt",
		strings.Repeat("Invoice number 42 with amount due and payment terms net 30. ", 50))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = engine.Classify(context.Background(), doc)
	}
}

// BenchmarkPatternScore isolates the rule-library scan.
func BenchmarkPatternScore(b *testing.B) {
	scorer := patterns.NewScorer(patterns.DefaultRules(), nil)
	text := strings.Repeat("Quarterly report with executive summary, findings and 12% growth. ", 50)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = scorer.Score(text)
	}
}
