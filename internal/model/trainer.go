package model

import (
	"fmt"
	"time"

	"github.com/papertrail/classifier/internal/bayes"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/textproc"
	"github.com/papertrail/classifier/internal/vectorizer"
)

// Train fits a bundle from a labeled corpus: normalize, build the
// vocabulary, vectorize every document, then fit the naive-Bayes
// parameters. Training happens once, offline; the engine only loads the
// result.
func Train(corpus []LabeledDocument, useStemming bool) (*Bundle, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("training corpus is empty")
	}

	tokenized := make([][]string, len(corpus))
	labels := make([]domain.Category, len(corpus))
	for i, doc := range corpus {
		if !domain.ValidCategory(string(doc.Category)) {
			return nil, fmt.Errorf("training example %d has unknown category %q", i, doc.Category)
		}
		tokenized[i] = textproc.Normalize(doc.Text, useStemming)
		labels[i] = doc.Category
	}

	vocab := vectorizer.BuildVocabulary(tokenized)
	if vocab.Size() == 0 {
		return nil, fmt.Errorf("training corpus produced an empty vocabulary")
	}

	vec := vectorizer.New(vocab)
	vectors := make([]domain.FeatureVector, len(tokenized))
	for i, tokens := range tokenized {
		vectors[i] = vec.Vectorize(tokens)
	}

	params := bayes.Train(vectors, labels, vocab.Size())

	categories := make([]string, 0, domain.NumCategories)
	for _, cat := range domain.Categories() {
		categories = append(categories, string(cat))
	}

	return &Bundle{
		Version:     BundleVersion,
		Categories:  categories,
		Vocabulary:  vocab,
		Params:      params,
		UseStemming: useStemming,
		TrainedAt:   time.Now().UTC(),
	}, nil
}

// TrainSeed fits a bundle from the embedded corpus. Used when no bundle
// path is configured, mirroring a fresh install.
func TrainSeed(useStemming bool) (*Bundle, error) {
	return Train(SeedCorpus(), useStemming)
}
