// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// RescorePolicy selects what happens when a judge scores the same
	// (team, criterion) twice: "reject" or "overwrite".
	RescorePolicy string `koanf:"rescore_policy"`

	// JWTSecret signs/verifies bearer tokens issued by the auth service.
	JWTSecret string `koanf:"jwt_secret"`

	// RosterURL and IdentityURL point at the external collaborators.
	RosterURL   string `koanf:"roster_url"`
	IdentityURL string `koanf:"identity_url"`

	// UpstreamTimeoutMS bounds calls to roster/identity services.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// StorageDir is the root of the filesystem object store.
	StorageDir string `koanf:"storage_dir"`

	// EventQueueSize bounds the in-memory identity event queue.
	EventQueueSize int `koanf:"event_queue_size"`

	// WorkerCount sets the number of identity event workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		DBPath:            "arena.db",
		RescorePolicy:     "reject",
		JWTSecret:         "",
		RosterURL:         "http://localhost:8081",
		IdentityURL:       "http://localhost:8082",
		UpstreamTimeoutMS: 3000,
		StorageDir:        "uploads",
		EventQueueSize:    10_000,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        100_000,
	}
}
