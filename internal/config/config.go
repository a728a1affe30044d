// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New(ctx, ...Option); each binary passes its own options.
// - Load layers defaults, an optional YAML file and environment variables.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// CORSEnabled turns on the cross-origin middleware.
	CORSEnabled bool `koanf:"cors_enabled"`

	// CORSAllowedOrigins lists allowed origins; "*" allows all.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// DocsEnabled mounts /api-docs and /openapi.yaml.
	DocsEnabled bool `koanf:"docs_enabled"`

	// Seed loads the built-in seed records at startup.
	Seed bool `koanf:"seed"`

	// envPrefix is the environment prefix used by Load, e.g. "PRODUCTS_".
	envPrefix string
}

// New creates a Config with defaults, then applies opts.
func New(_ context.Context, opts ...Option) *Config {
	c := &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":3000",
		CORSEnabled:        false,
		CORSAllowedOrigins: []string{"*"},
		DocsEnabled:        true,
		Seed:               true,
		envPrefix:          "COLLECTIONS_",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnvPrefix returns the environment prefix Load reads from.
func (c *Config) EnvPrefix() string { return c.envPrefix }
