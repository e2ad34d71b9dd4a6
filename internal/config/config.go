// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Save backends selectable via SaveBackend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ContentDir points at the tiers/prizes/upgrades/progression YAML files.
	// Empty means built-in content.
	ContentDir string `koanf:"content_dir"`

	// SaveBackend selects where saves persist: memory, file, or postgres.
	SaveBackend string `koanf:"save_backend"`

	// SavePath is the directory for the file backend.
	SavePath string `koanf:"save_path"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// SaveKey names the save slot within the chosen backend.
	SaveKey string `koanf:"save_key"`

	// RNGSeed reseeds the service's shared random stream when non-empty.
	// Ticket grids are unaffected; they always derive from tier and serial.
	RNGSeed string `koanf:"rng_seed"`

	// EventQueueSize bounds the in-memory event bus.
	EventQueueSize int `koanf:"queue_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		ContentDir:     "",
		SaveBackend:    BackendMemory,
		SavePath:       "saves",
		SaveKey:        "foil-save-v1",
		EventQueueSize: 1024,
	}
}
