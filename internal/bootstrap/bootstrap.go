// Package bootstrap assembles the service components from configuration:
// logger, model bundle, rule engine, database, processors, and the HTTP
// server.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/papertrail/classifier/internal/api"
	"github.com/papertrail/classifier/internal/classifier"
	"github.com/papertrail/classifier/internal/config"
	"github.com/papertrail/classifier/internal/database"
	"github.com/papertrail/classifier/internal/httpserver"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/logging"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
	"github.com/papertrail/classifier/internal/processor"
	"github.com/papertrail/classifier/internal/telemetry"
)

// Components holds everything a fully wired service needs. Close releases
// the database connection.
type Components struct {
	Config    *config.Config
	Logger    logger.Logger
	Telemetry *telemetry.Provider
	Engine    *classifier.Engine
	Batch     *processor.BatchProcessor
	DB        *sqlx.DB
	History   *database.HistoryRepository
	Rules     *database.RulesRepository
}

// LoadConfig loads configuration from the CONFIG_FILE path or config.yml.
func LoadConfig() (*config.Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yml"
	}
	return config.Load(path)
}

// NewLogger creates the service logger from configuration.
func NewLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
}

// Build wires all components. withDatabase controls whether the SQLite
// store is opened; the folder processor can run without it when it only
// writes CSV output.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger, withDatabase bool) (*Components, error) {
	tp := telemetry.NewProvider()

	bundle, err := loadBundle(cfg, log)
	if err != nil {
		return nil, err
	}

	scorer := patterns.NewScorer(patterns.DefaultRules(), log)
	engine := classifier.NewEngine(bundle, scorer, log, tp, classifier.Config{
		Version: cfg.Service.Version,
	})

	comps := &Components{
		Config:    cfg,
		Logger:    log,
		Telemetry: tp,
		Engine:    engine,
		Batch:     processor.NewBatchProcessor(engine, cfg.Service.Concurrency, logging.NewKV(log), tp),
	}

	if withDatabase {
		if err := comps.openDatabase(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return comps, nil
}

// loadBundle reads the bundle from disk, or trains one from the embedded
// seed corpus when no path is configured.
func loadBundle(cfg *config.Config, log logger.Logger) (*model.Bundle, error) {
	if cfg.Model.BundlePath != "" {
		bundle, err := model.Load(cfg.Model.BundlePath)
		if err != nil {
			return nil, fmt.Errorf("load model bundle: %w", err)
		}
		log.Info("model bundle loaded",
			logger.String("path", cfg.Model.BundlePath),
			logger.Int("vocabulary_size", bundle.Vocabulary.Size()))
		return bundle, nil
	}

	bundle, err := model.TrainSeed(cfg.Model.UseStemming)
	if err != nil {
		return nil, fmt.Errorf("train seed bundle: %w", err)
	}
	log.Info("model trained from seed corpus",
		logger.Int("vocabulary_size", bundle.Vocabulary.Size()),
		logger.Bool("stemming", cfg.Model.UseStemming))
	return bundle, nil
}

func (c *Components) openDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewSQLiteConnection(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	c.DB = db
	c.History = database.NewHistoryRepository(db)
	c.Rules = database.NewRulesRepository(db)

	// Stored user rules take effect immediately, not on first mutation.
	rows, err := c.Rules.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load user rules: %w", err)
	}
	if len(rows) > 0 {
		c.Engine.UpdateRules(patterns.FromKeywordRules(rows))
		c.Logger.Info("user rules loaded", logger.Int("count", len(rows)))
	}
	return nil
}

// NewHTTPServer builds the API server around the components.
func (c *Components) NewHTTPServer() *httpserver.Server {
	handler := api.NewHandler(c.Engine, c.Batch, c.Rules, c.History, logging.NewKV(c.Logger))

	checks := map[string]httpserver.HealthCheck{}
	if c.DB != nil {
		db := c.DB
		checks["database"] = func(ctx context.Context) error {
			return db.PingContext(ctx)
		}
	}

	return api.NewServer(httpserver.Config{
		Port:           c.Config.Service.Port,
		Debug:          c.Config.Service.Debug,
		ServiceName:    c.Config.Service.Name,
		ServiceVersion: c.Config.Service.Version,
	}, handler, c.Telemetry, c.Logger, api.ServerOptions{
		JWTSecret: c.Config.Auth.JWTSecret,
		Checks:    checks,
	})
}

// Close releases held resources.
func (c *Components) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
