// Package config holds environment-driven configuration, logger setup,
// and YAML catalog loading for psyche-based simulations.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for a simulation host.
type Config struct {
	// Logging
	LogFile  string `env:"PSYCHE_LOG_FILE" envDefault:"/tmp/psyche-sim.log"`
	LogLevel string `env:"PSYCHE_LOG_LEVEL" envDefault:"INFO"`

	// Transition engine
	Volatility float64 `env:"PSYCHE_VOLATILITY" envDefault:"0.5"`
	Seed       int64   `env:"PSYCHE_SEED" envDefault:"0"` // 0 = time-seeded

	// Catalog of personas, masks and triggers
	CatalogPath string `env:"PSYCHE_CATALOG" envDefault:""`
}

// Load reads configuration from the environment, after a best-effort
// .env load for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Volatility < 0 || cfg.Volatility > 1 {
		return Config{}, fmt.Errorf("PSYCHE_VOLATILITY %v out of [0,1]", cfg.Volatility)
	}
	return cfg, nil
}

// SlogLevel maps the configured level string to a slog.Level,
// defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
