package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if FOIL_CONFIG is set
//  3. env (prefix FOIL_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("FOIL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: FOIL_ADDR, FOIL_SAVE_BACKEND, ...
	// Map env keys like FOIL_SAVE_BACKEND -> save_backend (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("FOIL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "foil_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.SaveKey == "" {
		return fmt.Errorf("%w: save_key must not be empty", ErrInvalidConfig)
	}
	switch c.SaveBackend {
	case BackendMemory:
	case BackendFile:
		if c.SavePath == "" {
			return fmt.Errorf("%w: save_path required for file backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres_dsn required for postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown save_backend %q", ErrInvalidConfig, c.SaveBackend)
	}
	if c.EventQueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	return nil
}
