package config

import "strings"

// Option adjusts the defaults built by New.
type Option func(*Config)

// WithEnvPrefix sets the environment prefix, e.g. "PRODUCTS". A trailing underscore is added if missing.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		prefix = strings.ToUpper(strings.TrimSpace(prefix))
		if prefix == "" {
			return
		}
		if !strings.HasSuffix(prefix, "_") {
			prefix += "_"
		}
		c.envPrefix = prefix
	}
}

// WithAddr sets the default listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Addr = addr
		}
	}
}

// WithCORSEnabled sets the default CORS switch.
func WithCORSEnabled(enabled bool) Option {
	return func(c *Config) {
		c.CORSEnabled = enabled
	}
}
