// Package config provides centralized configuration for the cleaning
// pipeline. Settings come from environment variables with defaults and
// are validated on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all pipeline configuration.
type Config struct {
	Data      DataConfig
	Database  DatabaseConfig
	Integrity IntegrityConfig
	Logging   LoggingConfig
}

// DataConfig holds the file-side settings: where the raw tables live,
// where cleaned tables and reports go, and the declared text encoding.
type DataConfig struct {
	// InputDir holds the seven raw CSV tables (default: data/raw)
	InputDir string `env:"DATA_INPUT_DIR" default:"data/raw"`

	// OutputDir receives the cleaned CSV tables (default: data/data-cleaned)
	OutputDir string `env:"DATA_OUTPUT_DIR" default:"data/data-cleaned"`

	// ReportDir receives the cleaning report (default: results/reports)
	ReportDir string `env:"DATA_REPORT_DIR" default:"results/reports"`

	// Encoding is the raw-file text encoding: latin1, cp1252, or utf-8.
	// The dataset's Brazilian Portuguese text requires latin1.
	Encoding string `env:"DATA_ENCODING" default:"latin1"`
}

// DatabaseConfig holds the optional Postgres destination. When URL is
// empty the pipeline writes cleaned CSV files only.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the connection pool ceiling (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the number of connections kept open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime caps a connection's lifetime (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// IntegrityConfig tunes the referential-integrity safety threshold.
type IntegrityConfig struct {
	// MaxRemovalPct aborts a cascade that would remove at least this
	// percentage of a non-empty child table (default: 100, meaning only
	// a full wipe is treated as an upstream defect).
	MaxRemovalPct float64 `env:"INTEGRITY_MAX_REMOVAL_PCT" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
