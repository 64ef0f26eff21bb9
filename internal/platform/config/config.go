// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present so development setups need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Vizza API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// CacheTTL bounds how long reference data (countries, statistics) stays cached.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	// Session tokens (HS256)
	TokenSecret     string        `env:"TOKEN_SECRET,required"`
	TokenExpiry     time.Duration `env:"TOKEN_EXPIRE"      envDefault:"4h"`
	TokenIssuer     string        `env:"TOKEN_ISSUER"      envDefault:"vizza-app"`
	TokenAudience   string        `env:"TOKEN_AUDIENCE"    envDefault:"vizza-users"`
	TokenLeeway     time.Duration `env:"TOKEN_LEEWAY"      envDefault:"60s"`
	TokenCookieName string        `env:"TOKEN_COOKIE_NAME" envDefault:"token"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.TokenSecret) < 32 && cfg.IsProduction() {
		return nil, errors.New("config: TOKEN_SECRET must be at least 32 bytes in production")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins configured for production.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

// # Seed Loader

// SeedConfig holds the settings of the seed command. Redis is optional there:
// when set, the cached reference data is evicted after loading.
type SeedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RedisURL      string `env:"REDIS_URL"`
	SeedFile      string `env:"SEED_FILE"      envDefault:"./data/seed/sample.json"`
	Debug         bool   `env:"DEBUG"          envDefault:"false"`
}

// LoadSeed parses the environment of the seed command.
func LoadSeed() (*SeedConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &SeedConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// loadDotEnv reads a local .env file. A missing file is normal outside development.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read .env file: %w", err)
	}
	return nil
}
