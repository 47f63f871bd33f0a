// Package config provides functionality for managing configuration options
// for the server and the CLI using command-line flags, an optional JSON
// config file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the favorites server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// CleanupInterval is how often deactivated favorites are purged.
	CleanupInterval time.Duration `json:"-" env:"CLEANUP_INTERVAL"`

	// Retention is how long a deactivated favorite is kept before purging.
	Retention time.Duration `json:"-" env:"RETENTION"`
}

// Parse reads args (without the program name), then the JSON config file,
// then the environment. Later sources override earlier ones.
func Parse(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:3001", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.DurationVar(&options.CleanupInterval, "cleanup-interval", time.Hour, "interval between purges of deactivated favorites")
	fs.DurationVar(&options.Retention, "retention", 30*24*time.Hour, "how long deactivated favorites are kept")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// CONFIG may point at the file, so the environment is read once before
	// the file and once after it.
	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return options, nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}
