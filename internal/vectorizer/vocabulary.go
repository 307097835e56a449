// Package vectorizer converts normalized token streams into fixed-length
// sparse TF-IDF feature vectors over an n-gram vocabulary.
package vectorizer

import (
	"math"
	"sort"
	"strings"
)

// Vocabulary build constraints. The vocabulary is established once during
// offline training and is immutable afterwards.
const (
	MaxVocabularySize = 5000
	MinNGram          = 1
	MaxNGram          = 5
	// MinDocFreq excludes terms seen in fewer training documents.
	MinDocFreq = 1
	// MaxDocFreqRatio excludes terms seen in more than this share of the
	// training corpus; such terms carry no class signal.
	MaxDocFreqRatio = 0.8
)

// Vocabulary maps n-gram terms to feature indices and holds the smoothed
// IDF weight per index. Shared, read-only process-wide state.
type Vocabulary struct {
	Terms map[string]int `json:"terms"`
	IDF   []float64      `json:"idf"`
}

// Size returns the number of terms in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// BuildVocabulary constructs the vocabulary from tokenized training
// documents: n-grams of size 1..5, document-frequency filtered, capped at
// MaxVocabularySize by total corpus frequency. IDF uses add-one smoothing
// on both document frequency and document count so unseen terms never
// divide by zero.
func BuildVocabulary(docs [][]string) *Vocabulary {
	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)

	for _, tokens := range docs {
		counts := ngramCounts(tokens)
		for term, n := range counts {
			docFreq[term]++
			totalFreq[term] += n
		}
	}

	numDocs := len(docs)
	maxDF := int(math.Floor(MaxDocFreqRatio * float64(numDocs)))
	if maxDF < MinDocFreq {
		maxDF = MinDocFreq
	}

	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < MinDocFreq || df > maxDF {
			continue
		}
		kept = append(kept, term)
	}

	// Highest corpus frequency first; ties resolved lexically so builds
	// are deterministic.
	sort.Slice(kept, func(i, j int) bool {
		if totalFreq[kept[i]] != totalFreq[kept[j]] {
			return totalFreq[kept[i]] > totalFreq[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if len(kept) > MaxVocabularySize {
		kept = kept[:MaxVocabularySize]
	}

	// Stable index assignment: lexical order over the kept terms.
	sort.Strings(kept)

	vocab := &Vocabulary{
		Terms: make(map[string]int, len(kept)),
		IDF:   make([]float64, len(kept)),
	}
	for i, term := range kept {
		vocab.Terms[term] = i
		vocab.IDF[i] = smoothIDF(docFreq[term], numDocs)
	}
	return vocab
}

// smoothIDF computes log((1+N)/(1+df)) + 1.
func smoothIDF(df, numDocs int) float64 {
	return math.Log(float64(1+numDocs)/float64(1+df)) + 1
}

// ngramCounts expands tokens into 1..5-gram occurrence counts.
func ngramCounts(tokens []string) map[string]int {
	counts := make(map[string]int)
	for n := MinNGram; n <= MaxNGram; n++ {
		if len(tokens) < n {
			break
		}
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
