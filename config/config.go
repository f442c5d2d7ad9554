package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment; the process takes no flags.
type Config struct {
	DBPath   string `env:"LAB_DB_PATH" envDefault:"lab_equipment.db"`
	LogLevel string `env:"LAB_LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
