// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package config maps environment variables onto a typed, read-only Config
// struct via caarlos0/env. Everything the server can vary per deployment
// lives here; fixed values belong in constants.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, loaded once at startup and
// passed by constructor injection. No package reads the environment after
// Load returns.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath points at the SQL migrations directory on disk.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL addresses the instance holding the token revocation set.
	RedisURL string `env:"REDIS_URL,required"`

	// SecretKey signs access tokens (HMAC-SHA256). There is deliberately no
	// default: a known placeholder secret would make every token forgeable,
	// so a missing key fails startup loudly instead.
	SecretKey string `env:"SECRET_KEY,required"`

	// TokenTTLMinutes is the access token lifetime.
	TokenTTLMinutes int `env:"TOKEN_TTL_MINUTES" envDefault:"60"`

	// BcryptCost tunes password hashing. Zero selects the library default.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`

	// ExtraOrigins is a comma-separated list of origins allowed to make
	// credentialed CORS requests outside development.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// Load builds the Config from the process environment. A .env file, when
// present, is merged in first without overriding real environment variables,
// so development setups keep the production shape.
func Load() (*Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL_MINUTES must be positive, got %d", cfg.TokenTTLMinutes)
	}

	return cfg, nil
}

// TokenTTL is the access token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// IsDevelopment reports whether the server runs in development mode, which
// relaxes the CORS origin check.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigin reports whether origin may make credentialed CORS requests.
func (c *Config) AllowedOrigin(origin string) bool {
	for _, allowed := range strings.Split(c.ExtraOrigins, ",") {
		if allowed = strings.TrimSpace(allowed); allowed != "" && allowed == origin {
			return true
		}
	}
	return false
}
