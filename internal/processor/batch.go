// Package processor runs the classification pipeline over document batches
// with a worker pool. Classification is pure per document, so workers share
// one engine with no locking.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/papertrail/classifier/internal/classifier"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/telemetry"
)

const defaultConcurrency = 8

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Item pairs a document with its classification result.
type Item struct {
	Doc    *domain.Document
	Result *domain.ClassificationResult
}

// BatchProcessor processes documents in parallel using a worker pool
type BatchProcessor struct {
	engine      *classifier.Engine
	concurrency int
	logger      Logger
	telemetry   *telemetry.Provider
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(engine *classifier.Engine, concurrency int, logger Logger, tp *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		engine:      engine,
		concurrency: concurrency,
		logger:      logger,
		telemetry:   tp,
	}
}

// Process classifies a batch of documents using the worker pool. Results
// preserve input order. On cancellation the remaining documents are
// abandoned and the completed prefix of results is returned alongside the
// context error; no completed result is rolled back.
func (b *BatchProcessor) Process(ctx context.Context, docs []*domain.Document) ([]Item, error) {
	if len(docs) == 0 {
		return []Item{}, nil
	}

	b.logger.Info("Starting batch processing",
		"batch_size", len(docs),
		"concurrency", b.concurrency,
	)
	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(docs))
		b.telemetry.SetQueueDepth(len(docs))
		b.telemetry.SetActiveWorkers(b.concurrency)
		defer func() {
			b.telemetry.SetQueueDepth(0)
			b.telemetry.SetActiveWorkers(0)
		}()
	}

	startTime := time.Now()

	jobs := make(chan int, len(docs))
	results := make([]*domain.ClassificationResult, len(docs))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, i, docs, jobs, results, &wg)
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	items := make([]Item, 0, len(docs))
	for i, result := range results {
		if result == nil {
			continue // abandoned on cancellation
		}
		items = append(items, Item{Doc: docs[i], Result: result})
	}

	duration := time.Since(startTime)
	b.logger.Info("Batch processing complete",
		"total", len(docs),
		"classified", len(items),
		"duration_ms", duration.Milliseconds(),
		"docs_per_second", float64(len(items))/duration.Seconds(),
	)

	if err := ctx.Err(); err != nil {
		return items, err
	}
	return items, nil
}

// worker classifies documents from the jobs channel
func (b *BatchProcessor) worker(
	ctx context.Context,
	id int,
	docs []*domain.Document,
	jobs <-chan int,
	results []*domain.ClassificationResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	b.logger.Debug("Worker started", "worker_id", id)

	for i := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Warn("Worker stopping due to context cancellation", "worker_id", id)
			return
		default:
		}

		results[i] = b.engine.Classify(ctx, docs[i])
	}

	b.logger.Debug("Worker finished", "worker_id", id)
}

// Concurrency returns the current worker pool size
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}

// SetConcurrency updates the worker pool concurrency
func (b *BatchProcessor) SetConcurrency(concurrency int) {
	if concurrency > 0 {
		b.concurrency = concurrency
		b.logger.Info("Concurrency updated", "new_concurrency", concurrency)
	}
}
