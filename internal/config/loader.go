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
//  2. file (YAML) if RONDO_CONFIG is set
//  3. env (prefix RONDO_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RONDO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RONDO_ADDR, RONDO_CACHE_SIZE, ...
	// Map env keys like RONDO_CACHE_SIZE -> cache_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RONDO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rondo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RefineMaxIterations <= 0:
		return fmt.Errorf("%w: refine_max_iterations must be positive", ErrInvalidConfig)
	case c.DefaultTimeoutMS <= 0:
		return fmt.Errorf("%w: default_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxTimeoutMS < c.DefaultTimeoutMS:
		return fmt.Errorf("%w: max_timeout_ms must not be below default_timeout_ms", ErrInvalidConfig)
	case c.MaxRosterSize < 6:
		return fmt.Errorf("%w: max_roster_size must allow at least 6 players", ErrInvalidConfig)
	case c.MaxConcurrentSolves <= 0:
		return fmt.Errorf("%w: max_concurrent_solves must be positive", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
