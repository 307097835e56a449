// Package bayes implements the multinomial naive-Bayes classifier behind
// the ML half of the hybrid engine.
package bayes

import (
	"math"
	"sort"

	"github.com/papertrail/classifier/internal/domain"
)

// Alpha is the additive smoothing parameter. Deliberately small (the
// conventional default is 1.0) so the posterior stays sharp enough to
// separate the confidence bands downstream.
const Alpha = 0.05

// Parameters holds the trained multinomial model: per-category
// log-conditional probability per vocabulary index, plus log-priors.
// Immutable after training.
type Parameters struct {
	// LogCondProb[c][i] = log P(term_i | c), smoothed.
	LogCondProb map[domain.Category][]float64 `json:"log_cond_prob"`
	// Priors[c] = P(c); uniform for a balanced training corpus.
	Priors map[domain.Category]float64 `json:"priors"`
}

// Classifier scores feature vectors against trained Parameters.
type Classifier struct {
	params *Parameters
}

// New creates a Classifier over trained parameters.
func New(params *Parameters) *Classifier {
	return &Classifier{params: params}
}

// Predict returns the posterior distribution over the fixed category set.
// Scoring runs in log space with max-subtraction before exponentiation so
// renormalization is numerically stable. The zero vector returns the prior
// distribution; Predict never fails.
func (c *Classifier) Predict(vec domain.FeatureVector) domain.ProbabilityVector {
	probs := domain.NewProbabilityVector()

	if len(vec) == 0 {
		for cat, p := range c.params.Priors {
			probs[cat] = p
		}
		return probs
	}

	// Float addition is not associative, so every accumulation runs in a
	// fixed order (sorted indices, canonical categories). Classifying the
	// same vector twice must yield bit-identical probabilities.
	indices := sortedIndices(vec)

	logScores := make(map[domain.Category]float64, domain.NumCategories)
	maxScore := math.Inf(-1)
	for _, cat := range domain.Categories() {
		score := math.Log(c.params.Priors[cat])
		cond := c.params.LogCondProb[cat]
		for _, idx := range indices {
			if idx < 0 || idx >= len(cond) {
				continue
			}
			score += vec[idx] * cond[idx]
		}
		logScores[cat] = score
		if score > maxScore {
			maxScore = score
		}
	}

	var total float64
	for _, cat := range domain.Categories() {
		p := math.Exp(logScores[cat] - maxScore)
		probs[cat] = p
		total += p
	}
	for _, cat := range domain.Categories() {
		probs[cat] /= total
	}
	return probs
}

// sortedIndices returns the vector's active indices in ascending order.
func sortedIndices(vec domain.FeatureVector) []int {
	indices := make([]int, 0, len(vec))
	for idx := range vec {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// Train fits multinomial parameters from labeled feature vectors. The
// vocabulary size fixes the smoothing denominator; categories absent from
// the corpus still receive valid (uniform-conditional) parameters.
func Train(vectors []domain.FeatureVector, labels []domain.Category, vocabSize int) *Parameters {
	featureSum := make(map[domain.Category][]float64, domain.NumCategories)
	classTotal := make(map[domain.Category]float64, domain.NumCategories)
	for _, cat := range domain.Categories() {
		featureSum[cat] = make([]float64, vocabSize)
	}

	for i, vec := range vectors {
		cat := labels[i]
		sums := featureSum[cat]
		for _, idx := range sortedIndices(vec) {
			if idx < 0 || idx >= vocabSize {
				continue
			}
			sums[idx] += vec[idx]
			classTotal[cat] += vec[idx]
		}
	}

	params := &Parameters{
		LogCondProb: make(map[domain.Category][]float64, domain.NumCategories),
		Priors:      make(map[domain.Category]float64, domain.NumCategories),
	}

	denominatorSmoothing := Alpha * float64(vocabSize)
	for _, cat := range domain.Categories() {
		cond := make([]float64, vocabSize)
		total := classTotal[cat] + denominatorSmoothing
		for i := range cond {
			cond[i] = math.Log((featureSum[cat][i] + Alpha) / total)
		}
		params.LogCondProb[cat] = cond
		// Uniform priors: the training corpus is balanced by construction.
		params.Priors[cat] = 1.0 / float64(domain.NumCategories)
	}
	return params
}
