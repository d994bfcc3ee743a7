// Package config reads the service configuration from RIGCHECK_*
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the serve command's configuration.
type Config struct {
	Addr         string `env:"RIGCHECK_ADDR,default=:8080"`
	Catalog      string `env:"RIGCHECK_CATALOG"`           // catalog file; empty uses the built-in catalog
	DB           string `env:"RIGCHECK_DB"`                // SQLite gallery path; empty disables the gallery
	Seed         bool   `env:"RIGCHECK_SEED,default=true"` // seed an empty gallery with community builds
	SessionLimit int    `env:"RIGCHECK_SESSION_LIMIT,default=1024"`
	Lang         string `env:"RIGCHECK_LANG,default=en"`
	LogLevel     string `env:"RIGCHECK_LOG_LEVEL,default=info"`
}

// Load reads envFile (or ./.env when envFile is empty and the file exists)
// into the process environment and decodes the configuration from it.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("RIGCHECK_ADDR must not be empty")
	}
	if c.SessionLimit <= 0 {
		return fmt.Errorf("RIGCHECK_SESSION_LIMIT must be positive, got %d", c.SessionLimit)
	}
	switch strings.ToLower(c.Lang) {
	case "en", "ru":
	default:
		return fmt.Errorf("RIGCHECK_LANG must be en or ru, got %q", c.Lang)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("RIGCHECK_LOG_LEVEL: %w", err)
	}
	return level, nil
}
