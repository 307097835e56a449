// Package config loads the classifier service configuration from a YAML
// file with environment variable overrides.
package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName     = "papertrail"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8070
	defaultConcurrency     = 8
	defaultBatchSize       = 100
	defaultDBWriteRPS      = 200
	defaultDatabasePath    = "papertrail.db"
	defaultDBMaxConns      = 10
	defaultDBMaxIdleConns  = 2
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultOutputCSV       = "classification_results.csv"
	defaultMinOrganizeConf = 0.5
)

// Config holds all configuration for the papertrail classifier.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Model    ModelConfig    `yaml:"model"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Export   ExportConfig   `yaml:"export"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"PAPERTRAIL_PORT"        yaml:"port"`
	Debug       bool   `env:"APP_DEBUG"              yaml:"debug"`
	Concurrency int    `env:"PAPERTRAIL_CONCURRENCY" yaml:"concurrency"`
	BatchSize   int    `yaml:"batch_size"`
	DBWriteRPS  int    `yaml:"db_write_rps"`
}

// ModelConfig holds the trained bundle location and normalizer options.
type ModelConfig struct {
	// BundlePath points at the serialized model bundle. When empty the
	// engine trains a bundle from the embedded seed corpus at startup.
	BundlePath  string `env:"PAPERTRAIL_MODEL" yaml:"bundle_path"`
	UseStemming bool   `yaml:"use_stemming"`
}

// DatabaseConfig holds SQLite configuration for history and custom rules.
type DatabaseConfig struct {
	Path            string        `env:"PAPERTRAIL_DB" yaml:"path"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// ExportConfig holds results export and file organization settings.
type ExportConfig struct {
	CSVPath string `env:"PAPERTRAIL_OUTPUT" yaml:"csv_path"`
	// Organize moves classified source files into per-category folders.
	Organize bool `yaml:"organize"`
	// MinOrganizeConfidence gates the move; low-confidence documents stay put.
	MinOrganizeConfidence float64 `yaml:"min_organize_confidence"`
}

// AuthConfig holds authentication configuration for mutating API endpoints.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path. A missing file yields
// the default configuration; a malformed file is an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setLoggingDefaults(&cfg.Logging)
	setExportDefaults(&cfg.Export)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.DBWriteRPS == 0 {
		s.DBWriteRPS = defaultDBWriteRPS
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Path == "" {
		d.Path = defaultDatabasePath
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setExportDefaults(e *ExportConfig) {
	if e.CSVPath == "" {
		e.CSVPath = defaultOutputCSV
	}
	if e.MinOrganizeConfidence == 0 {
		e.MinOrganizeConfidence = defaultMinOrganizeConf
	}
}
