package domain

import "time"

// FeatureVector is a sparse mapping from vocabulary term index to a
// non-negative TF-IDF weight. It is owned transiently by one classification
// call; the vocabulary behind the indices is shared immutable state.
type FeatureVector map[int]float64

// ProbabilityVector maps every fixed category to an ML-derived probability.
// Entries sum to 1.
type ProbabilityVector map[Category]float64

// ScoreVector maps every fixed category to a normalized pattern score in
// [0,1] after anti-pattern subtraction and floor-at-zero clamping.
type ScoreVector map[Category]float64

// NewProbabilityVector returns a vector with every fixed category present.
func NewProbabilityVector() ProbabilityVector {
	v := make(ProbabilityVector, NumCategories)
	for _, c := range Categories() {
		v[c] = 0
	}
	return v
}

// NewScoreVector returns a score vector with every fixed category present.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, NumCategories)
	for _, c := range Categories() {
		v[c] = 0
	}
	return v
}

// CategoryBreakdown holds the per-category signals retained in the result
// for observability.
type CategoryBreakdown struct {
	Probability  float64 `json:"probability"`
	PatternScore float64 `json:"pattern_score"`
	BaseScore    float64 `json:"base_score"`
}

// ClassificationResult is the final output of one classification call.
// It is created once per document, immutable, and not retained by the
// engine.
type ClassificationResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename,omitempty"`

	// Headline values
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"` // 0.0-1.0, fused and boosted

	// Full per-category breakdown
	Breakdown map[Category]CategoryBreakdown `json:"breakdown"`

	// Applied boosts, kept for audit
	BaseConfidence  float64 `json:"base_confidence"`
	ConfidenceBoost float64 `json:"confidence_boost"`
	PatternBoost    float64 `json:"pattern_boost"`

	// Document metadata
	TextLength int `json:"text_length"`
	WordCount  int `json:"word_count"`

	// Classification metadata
	EngineVersion    string    `json:"engine_version"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	ClassifiedAt     time.Time `json:"classified_at"`
}

// Probabilities returns the ML probability map from the breakdown, in the
// prob_<category> shape the exporter serializes.
func (r *ClassificationResult) Probabilities() ProbabilityVector {
	v := NewProbabilityVector()
	for c, b := range r.Breakdown {
		v[c] = b.Probability
	}
	return v
}

// ClassificationRecord is the audit-trail row persisted for every
// classification.
type ClassificationRecord struct {
	ID               int64     `db:"id"                 json:"id"`
	DocumentID       string    `db:"document_id"        json:"document_id"`
	Filename         string    `db:"filename"           json:"filename,omitempty"`
	Category         string    `db:"category"           json:"category"`
	Confidence       float64   `db:"confidence"         json:"confidence"`
	TextLength       int       `db:"text_length"        json:"text_length"`
	WordCount        int       `db:"word_count"         json:"word_count"`
	EngineVersion    string    `db:"engine_version"     json:"engine_version"`
	ProcessingTimeMs int64     `db:"processing_time_ms" json:"processing_time_ms"`
	ClassifiedAt     time.Time `db:"classified_at"      json:"classified_at"`
}
