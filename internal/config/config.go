// Package config loads romanus settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings that may come from the environment. Command-line
// flags override them.
type Config struct {
	Format  string `env:"ROMANUS_FORMAT" envDefault:"text"`
	Debug   bool   `env:"ROMANUS_DEBUG"`
	DBPath  string `env:"ROMANUS_DB"`
	Workers int    `env:"ROMANUS_WORKERS" envDefault:"4"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("ROMANUS_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}
