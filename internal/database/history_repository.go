package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/papertrail/classifier/internal/domain"
)

// ErrRecordNotFound is returned when a looked-up row does not exist.
var ErrRecordNotFound = errors.New("record not found")

// HistoryRepository persists the per-classification audit trail.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// SaveResult records one classification. Satisfies processor.RecordStore.
func (r *HistoryRepository) SaveResult(ctx context.Context, result *domain.ClassificationResult) error {
	query := `
		INSERT INTO classification_history
			(document_id, filename, category, confidence, text_length, word_count,
			 engine_version, processing_time_ms, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		result.DocumentID,
		result.Filename,
		string(result.Category),
		result.Confidence,
		result.TextLength,
		result.WordCount,
		result.EngineVersion,
		result.ProcessingTimeMs,
		result.ClassifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}
	return nil
}

// GetByDocumentID returns the stored record for a document, or
// ErrRecordNotFound when the document was never classified.
func (r *HistoryRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.ClassificationRecord, error) {
	var record domain.ClassificationRecord
	query := `
		SELECT id, document_id, filename, category, confidence, text_length,
		       word_count, engine_version, processing_time_ms, classified_at
		FROM classification_history
		WHERE document_id = ?
		ORDER BY classified_at DESC, id DESC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &record, query, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	return &record, nil
}

// Recent returns the newest records, most recent first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]domain.ClassificationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []domain.ClassificationRecord
	query := `
		SELECT id, document_id, filename, category, confidence, text_length,
		       word_count, engine_version, processing_time_ms, classified_at
		FROM classification_history
		ORDER BY classified_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

// CountByCategory returns the classification volume per category.
func (r *HistoryRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM classification_history GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err = rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[category] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}
	return counts, nil
}
