package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientOptions holds the CLI configuration.
type ClientOptions struct {
	SWAPIURL   string        `env:"HOLOFAVS_SWAPI_URL"`
	BackendURL string        `env:"HOLOFAVS_BACKEND_URL"`
	UserID     int64         `env:"HOLOFAVS_USER_ID"`
	Timeout    time.Duration `env:"HOLOFAVS_TIMEOUT"`
	Rollback   bool          `env:"HOLOFAVS_ROLLBACK"`
	LogLevel   string        `env:"HOLOFAVS_LOG_LEVEL"`
}

// DefaultClient returns the CLI defaults.
func DefaultClient() ClientOptions {
	return ClientOptions{
		SWAPIURL:   "https://www.swapi.tech/api",
		BackendURL: "http://localhost:3001/api",
		UserID:     1,
		Timeout:    10 * time.Second,
		LogLevel:   "warn",
	}
}

// ApplyEnv overrides o with any HOLOFAVS_* variables that are set.
func (o *ClientOptions) ApplyEnv() error {
	if err := env.Parse(o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return o.Validate()
}

// Validate reports option values the CLI cannot run with.
func (o *ClientOptions) Validate() error {
	if o.UserID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", o.UserID)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	return nil
}
