package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/papertrail/classifier/internal/domain"
)

// RulesRepository handles database operations for user-defined keyword
// rules. Keyword lists are stored as a JSON array in a text column.
type RulesRepository struct {
	db *sqlx.DB
}

// NewRulesRepository creates a new rules repository.
func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

// Create inserts a new rule and fills in its ID and timestamps.
func (r *RulesRepository) Create(ctx context.Context, rule *domain.KeywordRule) error {
	keywords, err := json.Marshal(rule.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO keyword_rules (rule_name, category, keywords, weight, anti, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		rule.RuleName, rule.Category, string(keywords), rule.Weight, rule.Anti, rule.Enabled, now, now)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read rule id: %w", err)
	}
	rule.ID = id
	rule.CreatedAt = now
	rule.UpdatedAt = now
	return nil
}

// GetByID retrieves a rule by its ID.
func (r *RulesRepository) GetByID(ctx context.Context, id int64) (*domain.KeywordRule, error) {
	query := `
		SELECT id, rule_name, category, keywords, weight, anti, enabled, created_at, updated_at
		FROM keyword_rules
		WHERE id = ?
	`
	rule, err := scanRule(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rule not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

// List retrieves all rules, optionally filtered by enabled state.
func (r *RulesRepository) List(ctx context.Context, enabled *bool) ([]domain.KeywordRule, error) {
	query := `
		SELECT id, rule_name, category, keywords, weight, anti, enabled, created_at, updated_at
		FROM keyword_rules
	`
	var args []any
	if enabled != nil {
		query += " WHERE enabled = ?"
		args = append(args, *enabled)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var rules []domain.KeywordRule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", scanErr)
		}
		rules = append(rules, *rule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}
	return rules, nil
}

// ListEnabled returns all enabled rules, the set the scorer loads.
func (r *RulesRepository) ListEnabled(ctx context.Context) ([]domain.KeywordRule, error) {
	enabled := true
	return r.List(ctx, &enabled)
}

// Update rewrites an existing rule.
func (r *RulesRepository) Update(ctx context.Context, rule *domain.KeywordRule) error {
	keywords, err := json.Marshal(rule.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	now := time.Now().UTC()
	query := `
		UPDATE keyword_rules
		SET rule_name = ?, category = ?, keywords = ?, weight = ?, anti = ?, enabled = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		rule.RuleName, rule.Category, string(keywords), rule.Weight, rule.Anti, rule.Enabled, now, rule.ID)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule not found: %d", rule.ID)
	}
	rule.UpdatedAt = now
	return nil
}

// Delete removes a rule.
func (r *RulesRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM keyword_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule not found: %d", id)
	}
	return nil
}

// Count returns the total number of rules.
func (r *RulesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keyword_rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.KeywordRule, error) {
	var rule domain.KeywordRule
	var keywords string
	if err := row.Scan(
		&rule.ID,
		&rule.RuleName,
		&rule.Category,
		&keywords,
		&rule.Weight,
		&rule.Anti,
		&rule.Enabled,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &rule.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return &rule, nil
}
