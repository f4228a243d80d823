package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
// Command-line flags override these values.
type Config struct {
	Port       int    `env:"SPRINTBOARD_PORT"        envDefault:"3000"`
	SeedFile   string `env:"SPRINTBOARD_SEED_FILE"`
	RandomSeed int64  `env:"SPRINTBOARD_RANDOM_SEED"` // 0 means seed from the clock
	WatchSeed  bool   `env:"SPRINTBOARD_WATCH_SEED"  envDefault:"true"`
	LogLevel   string `env:"SPRINTBOARD_LOG_LEVEL"   envDefault:"info"`
	LogFormat  string `env:"SPRINTBOARD_LOG_FORMAT"  envDefault:"text"`
}

// Load reads an optional .env file from the working directory and then parses
// the environment. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
