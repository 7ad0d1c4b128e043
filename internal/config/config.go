// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

// Config holds the settings shared by the calculator and the gRPC server
// Command-line flags override these values
// MaxYears caps the schedules the gRPC server computes; lower rates are refused
type Config struct {
	GRPCAddr       string          `env:"DOUBLING_GRPC_ADDR"        envDefault:":8080"`
	APIToken       string          `env:"DOUBLING_API_TOKEN"        envDefault:"dev-token"`
	LogLevel       string          `env:"DOUBLING_LOG_LEVEL"        envDefault:"info"`
	Currency       string          `env:"DOUBLING_CURRENCY"         envDefault:"USD"`
	MaxRatePercent decimal.Decimal `env:"DOUBLING_MAX_RATE_PERCENT" envDefault:"100"`
	MaxYears       int             `env:"DOUBLING_MAX_YEARS"        envDefault:"100000"`
}

// Load parses the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the commands cannot run with
func (c Config) Validate() error {
	if c.GRPCAddr == "" {
		return fmt.Errorf("DOUBLING_GRPC_ADDR cannot be empty")
	}
	if !c.MaxRatePercent.IsPositive() {
		return fmt.Errorf("DOUBLING_MAX_RATE_PERCENT must be positive, got %s", c.MaxRatePercent)
	}
	if c.MaxYears <= 0 {
		return fmt.Errorf("DOUBLING_MAX_YEARS must be positive, got %d", c.MaxYears)
	}
	return nil
}
