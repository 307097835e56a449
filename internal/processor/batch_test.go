package processor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/classifier/internal/classifier"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memStore struct {
	mu      sync.Mutex
	results []*domain.ClassificationResult
	failOn  string
}

func (s *memStore) SaveResult(_ context.Context, result *domain.ClassificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && s.failOn == result.DocumentID {
		return fmt.Errorf("store unavailable")
	}
	s.results = append(s.results, result)
	return nil
}

func newTestProcessor(t *testing.T, concurrency int) *BatchProcessor {
	t.Helper()

	bundle, err := model.TrainSeed(false)
	require.NoError(t, err)
	engine := classifier.NewEngine(bundle, patterns.NewScorer(patterns.DefaultRules(), nil), nil, nil, classifier.Config{Version: "test"})
	return NewBatchProcessor(engine, concurrency, nopLogger{}, nil)
}

func makeDocs(n int) []*domain.Document {
	docs := make([]*domain.Document, n)
	for i := range docs {
		docs[i] = domain.NewDocument(
			fmt.Sprintf("doc-%03d", i),
			fmt.Sprintf("doc-%03d.txt", i),
			"invoice number 42 amount due payment terms")
	}
	return docs
}

func TestProcessPreservesOrder(t *testing.T) {
	proc := newTestProcessor(t, 4)
	docs := makeDocs(25)

	items, err := proc.Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, items, len(docs))
	for i, item := range items {
		assert.Equal(t, docs[i].ID, item.Doc.ID)
		assert.Equal(t, docs[i].ID, item.Result.DocumentID)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	proc := newTestProcessor(t, 4)

	items, err := proc.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProcessCancelledContext(t *testing.T) {
	proc := newTestProcessor(t, 2)
	docs := makeDocs(50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := proc.Process(ctx, docs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(items), len(docs))
}

func TestSetConcurrency(t *testing.T) {
	proc := newTestProcessor(t, 0)
	assert.Equal(t, defaultConcurrency, proc.Concurrency())

	proc.SetConcurrency(3)
	assert.Equal(t, 3, proc.Concurrency())

	proc.SetConcurrency(-1)
	assert.Equal(t, 3, proc.Concurrency())
}

func TestProcessAndStore(t *testing.T) {
	proc := newTestProcessor(t, 4)
	limited := NewRateLimitedProcessor(proc, 1000, nopLogger{})
	store := &memStore{}

	docs := makeDocs(10)
	items, err := limited.ProcessAndStore(context.Background(), docs, store)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Len(t, store.results, 10)
}

func TestProcessAndStoreSkipsFailedWrites(t *testing.T) {
	proc := newTestProcessor(t, 2)
	limited := NewRateLimitedProcessor(proc, 1000, nopLogger{})
	store := &memStore{failOn: "doc-003"}

	items, err := limited.ProcessAndStore(context.Background(), makeDocs(5), store)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Len(t, store.results, 4)
}
