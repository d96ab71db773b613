// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

// isolateConfigFile points CONFIG_PATH at a file that does not exist so that
// a developer's config.yaml cannot leak into the test.
func isolateConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateConfigFile(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.ReloadInterval != time.Hour {
		t.Errorf("Catalog.ReloadInterval = %v, want 1h", cfg.Catalog.ReloadInterval)
	}
	if !reflect.DeepEqual(cfg.Catalog.ExcludeWords, DefaultExcludeWords) {
		t.Errorf("Catalog.ExcludeWords = %v, want %v", cfg.Catalog.ExcludeWords, DefaultExcludeWords)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolateConfigFile(t)
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("CATALOG_PATH", "/srv/games.csv")
	t.Setenv("CATALOG_EXCLUDE_WORDS", "demo, soundtrack ,,beta")
	t.Setenv("RECOMMEND_DEFAULT_K", "10")
	t.Setenv("RESULTS_TTL", "90m")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/srv/games.csv" {
		t.Errorf("Catalog.Path = %q, want /srv/games.csv", cfg.Catalog.Path)
	}
	wantWords := []string{"demo", "soundtrack", "beta"}
	if !reflect.DeepEqual(cfg.Catalog.ExcludeWords, wantWords) {
		t.Errorf("Catalog.ExcludeWords = %v, want %v", cfg.Catalog.ExcludeWords, wantWords)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Recommend.DefaultK = %d, want 10", cfg.Recommend.DefaultK)
	}
	if cfg.Results.TTL != 90*time.Minute {
		t.Errorf("Results.TTL = %v, want 90m", cfg.Results.TTL)
	}
	if cfg.Events.Enabled {
		t.Error("Events.Enabled = true, want false")
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `server:
  port: 7000
  environment: staging
catalog:
  path: /data/steam.json
  exclude_words:
    - demo
    - dlc
recommend:
  default_k: 3
  max_k: 30
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_MAX_K", "50")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("Server.Environment = %q, want staging", cfg.Server.Environment)
	}
	if !reflect.DeepEqual(cfg.Catalog.ExcludeWords, []string{"demo", "dlc"}) {
		t.Errorf("Catalog.ExcludeWords = %v, want [demo dlc]", cfg.Catalog.ExcludeWords)
	}
	if cfg.Recommend.DefaultK != 3 {
		t.Errorf("Recommend.DefaultK = %d, want 3 from file", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend.MaxK = %d, want 50 from env", cfg.Recommend.MaxK)
	}
}

func TestLoadWithKoanf_InvalidFails(t *testing.T) {
	isolateConfigFile(t)
	t.Setenv("RECOMMEND_DEFAULT_K", "0")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want validation error")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"CATALOG_PATH", "catalog.path"},
		{"catalog_reload_interval", "catalog.reload_interval"},
		{"ADMIN_TOKEN_SECRET", "security.admin_token_secret"},
		{"RECOMMEND_MAX_K", "recommend.max_k"},
		{"RESULTS_PATH", "results.path"},
		{"SUPERVISOR_FAILURE_BACKOFF", "supervisor.failure_backoff"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	_ = k.Set("security.cors_origins", "https://a.example, https://b.example")
	_ = k.Set("catalog.exclude_words", []string{"already", "slice"})

	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}

	if got := k.Strings("security.cors_origins"); !reflect.DeepEqual(got, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("cors_origins = %v, want two trimmed origins", got)
	}
	if got := k.Strings("catalog.exclude_words"); !reflect.DeepEqual(got, []string{"already", "slice"}) {
		t.Errorf("exclude_words = %v, want unchanged slice", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "GAMEREC_DOTENV_TEST_VALUE"
	const presetKey = "GAMEREC_DOTENV_TEST_PRESET"

	path := filepath.Join(t.TempDir(), "test.env")
	content := key + "=from-file\n" + presetKey + "=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv(DotEnvPathEnvVar, path)
	t.Setenv(presetKey, "from-process")
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}
	if got := os.Getenv(presetKey); got != "from-process" {
		t.Errorf("%s = %q, want existing value to win", presetKey, got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv(DotEnvPathEnvVar, filepath.Join(t.TempDir(), "missing.env"))

	if err := LoadDotEnv(); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil for a missing file", err)
	}
}
