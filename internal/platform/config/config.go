// Package config reads runtime configuration from environment variables so
// main stays lean.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the API server.
type Config struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Addr            string        `envconfig:"PRESALES_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Should be overridden outside development.
	JWTSigningKey string        `envconfig:"JWT_SIGNING_KEY" default:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	// Empty DSN selects the in-memory stores.
	PGDSN string `envconfig:"PG_DSN" default:""`

	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"true"`

	// Login attempts allowed per client IP per minute.
	LoginRateLimit int `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == "production"
}
