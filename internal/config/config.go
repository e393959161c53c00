// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package config provides layered configuration for Storelens using Koanf v2.
//
// Configuration is resolved in priority order (highest wins):
//  1. Environment variables (STORELENS_ prefix, e.g. STORELENS_SERVER_PORT)
//  2. Config file (config.yaml, or the path in STORELENS_CONFIG_PATH)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the application.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Import   ImportConfig   `koanf:"import"`
	Logging  LoggingConfig  `koanf:"logging"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file, or ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory is DuckDB's memory limit, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// QueryTimeout bounds every query issued without a caller deadline.
	// Queries fail closed when the timeout elapses.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// SeedSampleData inserts a small deterministic dataset at startup
	// when the orders table is empty. Intended for demos and development.
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// ImportConfig holds CSV import settings. Empty paths disable the import.
type ImportConfig struct {
	OrdersCSV  string `koanf:"orders_csv"`
	ReturnsCSV string `koanf:"returns_csv"`
	PeopleCSV  string `koanf:"people_csv"`
	BatchSize  int    `koanf:"batch_size"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "/data/storelens.duckdb",
			MaxMemory:      "2GB",
			Threads:        0, // 0 = use runtime.NumCPU()
			QueryTimeout:   30 * time.Second,
			SeedSampleData: false,
		},
		Import: ImportConfig{
			OrdersCSV:  "",
			ReturnsCSV: "",
			PeopleCSV:  "",
			BatchSize:  500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Validate checks configuration invariants that would otherwise surface
// as confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive, got %s", c.Database.QueryTimeout)
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive, got %d", c.Import.BatchSize)
	}
	return nil
}
