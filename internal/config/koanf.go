// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gamerec/config.yaml",
	"/etc/gamerec/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultExcludeWords are name fragments that mark non-game catalog entries.
var DefaultExcludeWords = []string{
	"demo", "dlc", "vr", "soundtrack", "ost", "bundle", "episode",
	"mod", "skin", "theme", "trailer", "movie", "book", "comic",
}

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			AuditMaxEvents:  10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Path:            "/data/games.json",
			ReloadInterval:  time.Hour,
			ExcludeWords:    append([]string(nil), DefaultExcludeWords...),
			ReloadPerMinute: 2,
			BreakerFailures: 3,
			BreakerTimeout:  5 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Results: ResultsConfig{
			TTL:        24 * time.Hour,
			GCInterval: 10 * time.Minute,
		},
		Events: EventsConfig{
			Enabled:         true,
			BufferSize:      256,
			CloseTimeout:    10 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
			StreamEnabled:   true,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment (after merging any .env file), then validates it.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return LoadWithKoanf()
}

// LoadWithKoanf layers defaults, config file and environment variables.
// Precedence is ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, CATALOG_PATH -> catalog.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"catalog.exclude_words",
}

// processSliceFields converts comma-separated string values to slices.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
var envMappings = map[string]string{
	"http_port":                    "server.port",
	"http_host":                    "server.host",
	"http_timeout":                 "server.timeout",
	"http_shutdown_timeout":        "server.shutdown_timeout",
	"environment":                  "server.environment",
	"cors_origins":                 "security.cors_origins",
	"rate_limit_requests":          "security.rate_limit_reqs",
	"rate_limit_window":            "security.rate_limit_window",
	"disable_rate_limit":           "security.rate_limit_disabled",
	"admin_token_secret":           "security.admin_token_secret",
	"authz_policy_path":            "security.authz_policy_path",
	"audit_max_events":             "security.audit_max_events",
	"log_level":                    "logging.level",
	"log_format":                   "logging.format",
	"log_caller":                   "logging.caller",
	"catalog_path":                 "catalog.path",
	"catalog_reload_interval":      "catalog.reload_interval",
	"catalog_exclude_words":        "catalog.exclude_words",
	"catalog_reload_per_min":       "catalog.reload_per_minute",
	"catalog_breaker_failures":     "catalog.breaker_failures",
	"catalog_breaker_timeout":      "catalog.breaker_timeout",
	"recommend_default_k":          "recommend.default_k",
	"recommend_max_k":              "recommend.max_k",
	"results_path":                 "results.path",
	"results_ttl":                  "results.ttl",
	"results_gc_interval":          "results.gc_interval",
	"events_enabled":               "events.enabled",
	"events_buffer_size":           "events.buffer_size",
	"events_close_timeout":         "events.close_timeout",
	"events_breaker_failures":      "events.breaker_failures",
	"events_breaker_timeout":       "events.breaker_timeout",
	"events_stream_enabled":        "events.stream_enabled",
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped so that unrelated
// environment does not leak into the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
