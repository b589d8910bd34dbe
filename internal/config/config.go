// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) builds a Config with defaults; Load(ctx) layers file and env on top.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9081".
	Addr string `koanf:"addr"`

	// RefineMaxIterations caps the swap-refinement loop per candidate.
	RefineMaxIterations int `koanf:"refine_max_iterations"`

	// DefaultSeed feeds strategies when a request carries no seed.
	DefaultSeed int64 `koanf:"default_seed"`

	// DefaultTimeoutMS bounds a solve when the request names no timeout.
	DefaultTimeoutMS int `koanf:"default_timeout_ms"`

	// MaxTimeoutMS caps any requested timeout.
	MaxTimeoutMS int `koanf:"max_timeout_ms"`

	// MaxRosterSize rejects oversized rosters before parsing players.
	MaxRosterSize int `koanf:"max_roster_size"`

	// MaxConcurrentSolves bounds balancing runs in flight.
	MaxConcurrentSolves int `koanf:"max_concurrent_solves"`

	// CacheSize bounds the solve result cache. Zero disables caching.
	CacheSize int `koanf:"cache_size"`

	// DiagPath appends per-stage diagnostics to a JSONL file when set.
	DiagPath string `koanf:"diag_path"`

	// CORSOrigins lists allowed origins for the HTTP API. Set via the
	// YAML file; the env layer only overrides scalar fields.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9081",
		RefineMaxIterations: 50,
		DefaultSeed:         42,
		DefaultTimeoutMS:    10_000,
		MaxTimeoutMS:        30_000,
		MaxRosterSize:       200,
		MaxConcurrentSolves: 8,
		CacheSize:           256,
		DiagPath:            "",
		CORSOrigins:         []string{"*"},
	}
	return c
}
