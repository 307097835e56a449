// Package fusion merges the probabilistic and rule-based signals into one
// winning category and a bounded confidence value.
package fusion

import (
	"github.com/papertrail/classifier/internal/domain"
)

// Signal weights for the base confidence. The ML posterior carries slightly
// more weight because its baseline calibration is better, while pattern
// evidence can still move the decision.
const (
	mlWeight      = 0.55
	patternWeight = 0.45
)

// Progressive confidence boost: documents where both signals already agree
// strongly trend toward 1.0, weak-signal documents are left nearly alone.
const (
	boostBandStrong   = 0.85
	boostBandModerate = 0.70
	boostBandWeak     = 0.55

	boostStrong   = 0.12
	boostModerate = 0.08
	boostWeak     = 0.04
)

// Pattern-strength boost: unambiguous structural evidence is rewarded even
// when the ML posterior alone is mediocre.
const (
	patternBoostThreshold = 0.60
	patternBoost          = 0.10
)

// Result is the fused outcome before the pipeline attaches document
// metadata.
type Result struct {
	Category        domain.Category
	Confidence      float64
	BaseConfidence  float64
	ConfidenceBoost float64
	PatternBoost    float64
	Breakdown       map[domain.Category]domain.CategoryBreakdown
}

// Fuse combines a probability vector and a pattern score vector. The winner
// is the argmax of the unboosted base confidence; boosting only raises the
// winner's headline value and never changes the decision. Degenerate inputs
// (flat posterior, all-zero pattern scores) produce a valid low-confidence
// result rather than an error.
func Fuse(probs domain.ProbabilityVector, scores domain.ScoreVector) Result {
	breakdown := make(map[domain.Category]domain.CategoryBreakdown, domain.NumCategories)

	winner := domain.CategoryOther
	winnerBase := -1.0
	for _, cat := range domain.Categories() {
		pml := probs[cat]
		ppat := scores[cat]
		base := mlWeight*pml + patternWeight*ppat
		breakdown[cat] = domain.CategoryBreakdown{
			Probability:  pml,
			PatternScore: ppat,
			BaseScore:    base,
		}

		// Ties prefer the stronger pattern signal; canonical order is the
		// final deterministic tie-break (first seen wins on exact equality).
		switch {
		case base > winnerBase:
			winner, winnerBase = cat, base
		case base == winnerBase && ppat > scores[winner]:
			winner = cat
		}
	}

	confBoost := confidenceBoost(winnerBase)
	patBoost := 0.0
	if scores[winner] >= patternBoostThreshold {
		patBoost = patternBoost
	}

	final := winnerBase + confBoost + patBoost
	if final > 1.0 {
		final = 1.0
	}

	return Result{
		Category:        winner,
		Confidence:      final,
		BaseConfidence:  winnerBase,
		ConfidenceBoost: confBoost,
		PatternBoost:    patBoost,
		Breakdown:       breakdown,
	}
}

// confidenceBoost is the staged monotonic boost applied to the winner.
func confidenceBoost(base float64) float64 {
	switch {
	case base >= boostBandStrong:
		return boostStrong
	case base >= boostBandModerate:
		return boostModerate
	case base >= boostBandWeak:
		return boostWeak
	default:
		return 0
	}
}
