// Package classifier orchestrates the hybrid pipeline: normalization,
// vectorization, and the probabilistic model on one path, pattern scoring
// on the raw text on the other, merged by confidence fusion.
package classifier

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/papertrail/classifier/internal/bayes"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/fusion"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
	"github.com/papertrail/classifier/internal/telemetry"
	"github.com/papertrail/classifier/internal/textproc"
	"github.com/papertrail/classifier/internal/vectorizer"
)

// Engine classifies documents against an immutable trained bundle and the
// pattern rule library. Classification is pure per document, so one Engine
// is safely shared across workers.
type Engine struct {
	vectorizer  *vectorizer.Vectorizer
	bayes       *bayes.Classifier
	scorer      *patterns.Scorer
	useStemming bool
	version     string
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

// Config holds engine construction options.
type Config struct {
	Version string
}

// NewEngine wires the pipeline stages around a validated bundle.
func NewEngine(
	bundle *model.Bundle,
	scorer *patterns.Scorer,
	log logger.Logger,
	tp *telemetry.Provider,
	cfg Config,
) *Engine {
	e := &Engine{
		vectorizer:  vectorizer.New(bundle.Vocabulary),
		bayes:       bayes.New(bundle.Params),
		scorer:      scorer,
		useStemming: bundle.UseStemming,
		version:     cfg.Version,
		logger:      log,
		telemetry:   tp,
	}

	if tp != nil {
		tp.SetActiveRules(scorer.RuleCount())
	}
	if log != nil {
		log.Info("classification engine initialized",
			logger.String("version", cfg.Version),
			logger.Int("vocabulary_size", bundle.Vocabulary.Size()),
			logger.Int("rules", scorer.RuleCount()),
			logger.Bool("stemming", bundle.UseStemming))
	}
	return e
}

// Classify runs the full pipeline on one document. It never fails:
// empty or garbage text produces a valid low-confidence result.
func (e *Engine) Classify(ctx context.Context, doc *domain.Document) *domain.ClassificationResult {
	startTime := time.Now()

	if e.telemetry != nil {
		var span trace.Span
		ctx, span = e.telemetry.StartSpan(ctx, "classifier.Classify",
			attribute.String("document_id", doc.ID),
			attribute.Int("word_count", doc.WordCount))
		defer span.End()
	}

	if doc.Empty() {
		if e.telemetry != nil {
			e.telemetry.RecordEmptyDocument(ctx)
		}
		result := e.emptyResult(doc, startTime)
		e.record(ctx, result, startTime)
		return result
	}

	tokens := textproc.Normalize(doc.RawText, e.useStemming)
	vec := e.vectorizer.Vectorize(tokens)
	probs := e.bayes.Predict(vec)

	patternStart := time.Now()
	scores := e.scorer.Score(doc.RawText)
	if e.telemetry != nil {
		e.telemetry.RecordPatternScore(ctx, time.Since(patternStart))
	}

	fused := fusion.Fuse(probs, scores)
	result := e.buildResult(doc, fused, startTime)
	e.record(ctx, result, startTime)
	return result
}

// ClassifyBatch classifies documents sequentially; concurrent batching
// lives in the processor package.
func (e *Engine) ClassifyBatch(ctx context.Context, docs []*domain.Document) []*domain.ClassificationResult {
	results := make([]*domain.ClassificationResult, len(docs))
	for i, doc := range docs {
		results[i] = e.Classify(ctx, doc)
	}
	return results
}

// UpdateRules hot-swaps the user-defined rule set.
func (e *Engine) UpdateRules(rules []domain.PatternRule) {
	e.scorer.UpdateUserRules(rules)
	if e.telemetry != nil {
		e.telemetry.SetActiveRules(e.scorer.RuleCount())
	}
}

// RuleCount returns the number of active pattern rules.
func (e *Engine) RuleCount() int {
	return e.scorer.RuleCount()
}

// Version returns the engine version stamped onto every result.
func (e *Engine) Version() string {
	return e.version
}

func (e *Engine) buildResult(doc *domain.Document, fused fusion.Result, startTime time.Time) *domain.ClassificationResult {
	return &domain.ClassificationResult{
		DocumentID:       doc.ID,
		Filename:         doc.Filename,
		Category:         fused.Category,
		Confidence:       fused.Confidence,
		Breakdown:        fused.Breakdown,
		BaseConfidence:   fused.BaseConfidence,
		ConfidenceBoost:  fused.ConfidenceBoost,
		PatternBoost:     fused.PatternBoost,
		TextLength:       doc.TextLength,
		WordCount:        doc.WordCount,
		EngineVersion:    e.version,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		ClassifiedAt:     time.Now().UTC(),
	}
}

// emptyResult is the neutral answer for empty or whitespace-only text:
// uniform ML probabilities, zero pattern evidence, category "other" with
// the corresponding unboosted confidence.
func (e *Engine) emptyResult(doc *domain.Document, startTime time.Time) *domain.ClassificationResult {
	probs := domain.NewProbabilityVector()
	for _, cat := range domain.Categories() {
		probs[cat] = 1.0 / float64(domain.NumCategories)
	}

	fused := fusion.Fuse(probs, domain.NewScoreVector())
	fused.Category = domain.CategoryOther
	fused.Confidence = fused.Breakdown[domain.CategoryOther].BaseScore
	fused.BaseConfidence = fused.Confidence
	fused.ConfidenceBoost = 0
	fused.PatternBoost = 0

	return e.buildResult(doc, fused, startTime)
}

func (e *Engine) record(ctx context.Context, result *domain.ClassificationResult, startTime time.Time) {
	if e.telemetry != nil {
		e.telemetry.RecordClassification(ctx, string(result.Category), result.Confidence, time.Since(startTime))
	}
	if e.logger != nil {
		e.logger.Debug("document classified",
			logger.String("document_id", result.DocumentID),
			logger.String("category", string(result.Category)),
			logger.Float64("confidence", result.Confidence),
			logger.Int64("processing_time_ms", result.ProcessingTimeMs))
	}
}
