// Package database provides database connectivity and operations.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections
	DefaultMaxIdleConns = 2
	// DefaultConnMaxLifetime is the default maximum connection lifetime
	DefaultConnMaxLifetime = time.Hour
	// DefaultPingTimeout is the default timeout for ping operations
	DefaultPingTimeout = 5 * time.Second
)

// Config holds database configuration.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewSQLiteConnection opens (creating if needed) the SQLite database file
// and applies the schema.
func NewSQLiteConnection(cfg Config) (*sqlx.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = DefaultConnMaxLifetime
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS classification_history (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id        TEXT NOT NULL,
	filename           TEXT NOT NULL DEFAULT '',
	category           TEXT NOT NULL,
	confidence         REAL NOT NULL,
	text_length        INTEGER NOT NULL,
	word_count         INTEGER NOT NULL,
	engine_version     TEXT NOT NULL DEFAULT '',
	processing_time_ms INTEGER NOT NULL DEFAULT 0,
	classified_at      TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_category ON classification_history(category);
CREATE INDEX IF NOT EXISTS idx_history_classified_at ON classification_history(classified_at);

CREATE TABLE IF NOT EXISTS keyword_rules (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	rule_name  TEXT NOT NULL UNIQUE,
	category   TEXT NOT NULL,
	keywords   TEXT NOT NULL,
	weight     REAL NOT NULL,
	anti       INTEGER NOT NULL DEFAULT 0,
	enabled    INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Migrate applies the schema. Idempotent.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
