package vectorizer

import (
	"math"
	"sort"

	"github.com/papertrail/classifier/internal/domain"
)

// Vectorizer turns normalized tokens into L2-normalized sparse TF-IDF
// vectors against a fixed vocabulary. Out-of-vocabulary terms contribute
// nothing; inference never fails on unseen text.
type Vectorizer struct {
	vocab *Vocabulary
}

// New creates a Vectorizer over the given vocabulary.
func New(vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{vocab: vocab}
}

// Vocabulary returns the underlying fixed vocabulary.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// Vectorize computes the sublinear TF-IDF vector for the token sequence
// and L2-normalizes it. An empty token sequence (or one with no
// in-vocabulary terms) yields the zero vector.
func (v *Vectorizer) Vectorize(tokens []string) domain.FeatureVector {
	vec := make(domain.FeatureVector)
	if len(tokens) == 0 {
		return vec
	}

	for term, count := range ngramCounts(tokens) {
		idx, ok := v.vocab.Terms[term]
		if !ok {
			continue
		}
		// Sublinear term frequency: 1 + log(count).
		vec[idx] = (1 + math.Log(float64(count))) * v.vocab.IDF[idx]
	}

	normalize(vec)
	return vec
}

// normalize divides every component by the Euclidean norm. The zero
// vector stays zero. The squared sum accumulates in sorted index order so
// repeated vectorization of the same tokens is bit-identical.
func normalize(vec domain.FeatureVector) {
	indices := make([]int, 0, len(vec))
	for idx := range vec {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var sumSq float64
	for _, idx := range indices {
		sumSq += vec[idx] * vec[idx]
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i, w := range vec {
		vec[i] = w / norm
	}
}
