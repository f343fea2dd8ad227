package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the BLACKJACK_* settings.
type Config struct {
	StartingChips int    `env:"STARTING_CHIPS" envDefault:"100"`
	Database      string `env:"DATABASE" envDefault:":memory:"`
	LogFile       string `env:"LOG_FILE"`
}

// Load reads an optional .env file, then BLACKJACK_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "BLACKJACK_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.StartingChips <= 0 {
		return nil, fmt.Errorf("invalid BLACKJACK_STARTING_CHIPS: %d (must be positive)", cfg.StartingChips)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("BLACKJACK_DATABASE must not be empty")
	}

	return cfg, nil
}
