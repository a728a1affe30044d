package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx, opts...))
//  2. file (YAML) if <PREFIX>CONFIG is set
//  3. env (<PREFIX>ADDR, <PREFIX>LOG_LEVEL, ...)
//
// cors_allowed_origins may be given in env as a comma-separated list.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	base := New(ctx, opts...)
	prefix := base.envPrefix

	k := koanf.New(".")

	if path := os.Getenv(prefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadFailed(path, err)
		}
	}

	// Flat keys: PRODUCTS_LOG_LEVEL -> log_level. The file path variable is not a config key.
	lowerPrefix := strings.ToLower(prefix)
	envProvider := env.ProviderWithValue(prefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), lowerPrefix)
		if key == "config" {
			return "", nil
		}
		if key == "cors_allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadFailed("env", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadFailed("unmarshal", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields Load cannot default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return invalid("addr must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return invalid("unknown log_format %q", c.LogFormat)
	}
	if c.CORSEnabled && len(c.CORSAllowedOrigins) == 0 {
		return invalid("cors_allowed_origins must not be empty when cors is enabled")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
