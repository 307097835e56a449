package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/papertrail/classifier/internal/domain"
)

const defaultRPS = 100

// RateLimiter provides rate limiting for operations
type RateLimiter struct {
	limiter *rate.Limiter
	logger  Logger
}

// NewRateLimiter creates a new rate limiter
// rps: requests per second
// burst: maximum burst size
func NewRateLimiter(rps, burst int, logger Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Wait waits until rate limit allows the operation
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("Rate limiter wait failed", "error", err)
		return err
	}
	return nil
}

// Allow checks if an operation is allowed without waiting
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetLimit updates the rate limit
func (r *RateLimiter) SetLimit(rps int) {
	r.limiter.SetLimit(rate.Limit(rps))
	r.logger.Info("Rate limit updated", "new_rps", rps)
}

// RecordStore persists classification results for the audit trail.
type RecordStore interface {
	SaveResult(ctx context.Context, result *domain.ClassificationResult) error
}

// RateLimitedProcessor wraps a batch processor with a rate-limited
// persistence step so a large folder run cannot saturate the database.
type RateLimitedProcessor struct {
	processor *BatchProcessor
	dbLimiter *RateLimiter
	logger    Logger
}

// NewRateLimitedProcessor creates a processor with rate-limited writes
func NewRateLimitedProcessor(processor *BatchProcessor, dbRPS int, logger Logger) *RateLimitedProcessor {
	return &RateLimitedProcessor{
		processor: processor,
		dbLimiter: NewRateLimiter(dbRPS, dbRPS, logger),
		logger:    logger,
	}
}

// ProcessAndStore classifies a batch and persists every result through the
// store, throttled by the database limiter. A failed write is logged and
// skipped; classification results are still returned.
func (r *RateLimitedProcessor) ProcessAndStore(
	ctx context.Context,
	docs []*domain.Document,
	store RecordStore,
) ([]Item, error) {
	items, err := r.processor.Process(ctx, docs)
	if err != nil {
		return items, err
	}
	if store == nil {
		return items, nil
	}

	for _, item := range items {
		if err := r.dbLimiter.Wait(ctx); err != nil {
			return items, err
		}
		if err := store.SaveResult(ctx, item.Result); err != nil {
			r.logger.Error("Failed to persist classification result",
				"document_id", item.Result.DocumentID,
				"error", err,
			)
		}
	}
	return items, nil
}

// DBLimiter returns the database rate limiter
func (r *RateLimitedProcessor) DBLimiter() *RateLimiter {
	return r.dbLimiter
}
