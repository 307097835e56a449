// Package model owns the trained artifact: vocabulary, IDF weights,
// naive-Bayes parameters, and training metadata, serialized as a single
// JSON bundle loaded once at startup.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/papertrail/classifier/internal/bayes"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/vectorizer"
)

// BundleVersion identifies the on-disk format. Bump on incompatible
// changes to the bundle layout.
const BundleVersion = "2"

// Bundle is the immutable trained artifact the engine consumes.
type Bundle struct {
	Version     string                 `json:"version"`
	Categories  []string               `json:"categories"`
	Vocabulary  *vectorizer.Vocabulary `json:"vocabulary"`
	Params      *bayes.Parameters      `json:"params"`
	UseStemming bool                   `json:"use_stemming"`
	TrainedAt   time.Time              `json:"trained_at"`
}

// Load reads and validates a bundle from disk. A missing or malformed
// bundle is fatal to the caller: no document can be classified without it.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model bundle %s: %w", path, err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse model bundle %s: %w", path, err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model bundle %s: %w", path, err)
	}
	return &bundle, nil
}

// Save writes the bundle as JSON. Used by the offline trainer only.
func (b *Bundle) Save(path string) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode model bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write model bundle %s: %w", path, err)
	}
	return nil
}

// Validate checks the structural contract the engine depends on: the fixed
// category set, a bounded vocabulary, and parameter vectors sized to it.
func (b *Bundle) Validate() error {
	if b.Version != BundleVersion {
		return fmt.Errorf("unsupported bundle version %q (want %q)", b.Version, BundleVersion)
	}
	if len(b.Categories) != domain.NumCategories {
		return fmt.Errorf("bundle has %d categories, want %d", len(b.Categories), domain.NumCategories)
	}
	for _, c := range b.Categories {
		if !domain.ValidCategory(c) {
			return fmt.Errorf("unknown category %q in bundle", c)
		}
	}

	if b.Vocabulary == nil || len(b.Vocabulary.Terms) == 0 {
		return fmt.Errorf("bundle has no vocabulary")
	}
	vocabSize := len(b.Vocabulary.Terms)
	if vocabSize > vectorizer.MaxVocabularySize {
		return fmt.Errorf("vocabulary size %d exceeds maximum %d", vocabSize, vectorizer.MaxVocabularySize)
	}
	if len(b.Vocabulary.IDF) != vocabSize {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(b.Vocabulary.IDF), vocabSize)
	}

	if b.Params == nil {
		return fmt.Errorf("bundle has no classifier parameters")
	}
	for _, cat := range domain.Categories() {
		cond, ok := b.Params.LogCondProb[cat]
		if !ok {
			return fmt.Errorf("missing conditional probabilities for category %q", cat)
		}
		if len(cond) != vocabSize {
			return fmt.Errorf("category %q has %d conditional probabilities, want %d", cat, len(cond), vocabSize)
		}
		if _, ok := b.Params.Priors[cat]; !ok {
			return fmt.Errorf("missing prior for category %q", cat)
		}
	}
	return nil
}
