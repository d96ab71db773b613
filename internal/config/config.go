// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (later layers override earlier ones):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config file: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment variables, including any loaded from a .env file
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Results    ResultsConfig    `koanf:"results"`
	Events     EventsConfig     `koanf:"events"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS, rate limiting and admin token settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminTokenSecret is the HMAC secret used to verify admin bearer tokens.
	// Empty disables the admin routes.
	AdminTokenSecret string `koanf:"admin_token_secret"`

	// AuthzPolicyPath is a Casbin CSV policy for the admin routes. Empty
	// uses the built-in policy.
	AuthzPolicyPath string `koanf:"authz_policy_path"`

	// AuditMaxEvents bounds the in-memory admin audit trail. 0 disables
	// auditing.
	// Default: 10000
	AuditMaxEvents int `koanf:"audit_max_events"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// CatalogConfig describes where the game catalog comes from and how it is
// refreshed.
type CatalogConfig struct {
	// Path is a JSON or CSV catalog file, chosen by extension.
	Path string `koanf:"path"`

	// ReloadInterval is the period of the background reload. Zero disables it.
	// Default: 1h
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// ExcludeWords drops catalog entries whose name contains any of them.
	ExcludeWords []string `koanf:"exclude_words"`

	// ReloadPerMinute limits manual reloads triggered through the admin API.
	// Default: 2
	ReloadPerMinute int `koanf:"reload_per_minute"`

	// BreakerFailures is the number of consecutive reload failures that
	// open the reload circuit breaker.
	// Default: 3
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before a trial reload.
	// Default: 5m
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds engine limits.
type RecommendConfig struct {
	// DefaultK is used when a request does not carry k.
	// Default: 5
	DefaultK int `koanf:"default_k"`

	// MaxK is the largest k a request may ask for.
	// Default: 100
	MaxK int `koanf:"max_k"`
}

// ResultsConfig holds ranked-result storage settings.
type ResultsConfig struct {
	// Path is the badger directory. Empty keeps results in memory.
	Path string `koanf:"path"`

	// TTL is how long a stored result stays retrievable.
	// Default: 24h
	TTL time.Duration `koanf:"ttl"`

	// GCInterval is the period of badger value log garbage collection.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EventsConfig holds recommendation event settings.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// BufferSize is the gochannel output buffer per subscriber.
	// Default: 256
	BufferSize int64 `koanf:"buffer_size"`

	// CloseTimeout bounds router shutdown.
	// Default: 10s
	CloseTimeout time.Duration `koanf:"close_timeout"`

	// BreakerFailures is the number of consecutive publish failures that
	// open the publisher circuit breaker.
	// Default: 5
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the publisher breaker stays open.
	// Default: 30s
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`

	// StreamEnabled serves consumed events to WebSocket clients on
	// /api/v1/recommendations/stream. Requires Enabled.
	// Default: true
	StreamEnabled bool `koanf:"stream_enabled"`
}

// SupervisorConfig holds suture supervisor tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// AdminEnabled reports whether the admin routes should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.Security.AdminTokenSecret != ""
}
