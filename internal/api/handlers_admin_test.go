// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/catalog"
)

const reloadPath = "/api/v1/admin/catalog/reload"

func TestReloadCatalog(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	rec, resp := env.do(t, http.MethodPost, reloadPath, nil, env.adminHeader(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var got CatalogSummary
	decodeData(t, resp, &got)
	if got.Games != 4 || got.Source != "reload" {
		t.Errorf("summary = %+v, want 4 games from reload", got)
	}

	// The reloaded snapshot is served immediately.
	rec, _ = env.do(t, http.MethodGet, "/api/v1/games/Portal", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET game after reload status = %d, want 200", rec.Code)
	}
}

func TestReloadCatalog_Auth(t *testing.T) {
	t.Parallel()

	other, err := auth.NewJWTManager(testSecret+"-other", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	forged, _ := other.GenerateToken("mallory")

	tests := []struct {
		name     string
		header   http.Header
		wantCode int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"basic auth", http.Header{"Authorization": []string{"Basic dXNlcjpwYXNz"}}, http.StatusUnauthorized},
		{"forged token", http.Header{"Authorization": []string{"Bearer " + forged}}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, true)
			rec, resp := env.do(t, http.MethodPost, reloadPath, nil, tt.header)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
			if resp.Error == nil || resp.Error.Code != ErrCodeUnauthorized {
				t.Errorf("error = %+v, want UNAUTHORIZED", resp.Error)
			}
			if env.catalog.reloads != 0 {
				t.Errorf("reloads = %d, want 0", env.catalog.reloads)
			}
		})
	}
}

func TestReloadCatalog_Disabled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true, func(cfg *HandlerConfig) { cfg.Tokens = nil })
	rec, _ := env.do(t, http.MethodPost, reloadPath, nil, env.adminHeader(t))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReloadCatalog_Throttled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true, func(cfg *HandlerConfig) { cfg.ReloadPerMinute = 1 })
	header := env.adminHeader(t)

	rec, _ := env.do(t, http.MethodPost, reloadPath, nil, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("first reload status = %d, want 200", rec.Code)
	}

	rec, resp := env.do(t, http.MethodPost, reloadPath, nil, header)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second reload status = %d, want 429", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v, want TOO_MANY_REQUESTS", resp.Error)
	}
	if env.catalog.reloads != 1 {
		t.Errorf("reloads = %d, want 1", env.catalog.reloads)
	}
}

func TestReloadCatalog_BreakerOpen(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.catalog.err = catalog.ErrReloadUnavailable

	rec, resp := env.do(t, http.MethodPost, reloadPath, nil, env.adminHeader(t))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("error = %+v, want SERVICE_UNAVAILABLE", resp.Error)
	}
}

func TestAdminRoutes_Authorization(t *testing.T) {
	t.Parallel()

	noAuthorizer := func(cfg *HandlerConfig) { cfg.Authorizer = nil }

	tests := []struct {
		name     string
		role     string
		method   string
		path     string
		opts     []envOption
		wantCode int
	}{
		{"operator reloads", auth.RoleOperator, http.MethodPost, reloadPath, nil, http.StatusOK},
		{"operator reads stats", auth.RoleOperator, http.MethodGet, statsPath, nil, http.StatusForbidden},
		{"admin reads stats", auth.RoleAdmin, http.MethodGet, statsPath, nil, http.StatusOK},
		{"operator without policy", auth.RoleOperator, http.MethodPost, reloadPath, []envOption{noAuthorizer}, http.StatusForbidden},
		{"admin without policy", auth.RoleAdmin, http.MethodGet, statsPath, []envOption{noAuthorizer}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, true, tt.opts...)
			rec, resp := env.do(t, tt.method, tt.path, nil, env.roleHeader(t, tt.role))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d\n%s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusForbidden && (resp.Error == nil || resp.Error.Code != ErrCodeForbidden) {
				t.Errorf("error = %+v, want FORBIDDEN", resp.Error)
			}
		})
	}
}

const statsPath = "/api/v1/admin/stats"

func TestGetAdminStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"name": "Ada", "genres": "Puzzle, Action", "categories": "Single-player",
	}, nil)

	rec, resp := env.do(t, http.MethodGet, statsPath, nil, env.adminHeader(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var got AdminStats
	decodeData(t, resp, &got)
	if got.CatalogGames != 4 || got.CatalogSource != "test" {
		t.Errorf("catalog = %d from %q, want 4 from test", got.CatalogGames, got.CatalogSource)
	}
	if got.StoredResults == nil || *got.StoredResults != 1 {
		t.Errorf("StoredResults = %v, want 1", got.StoredResults)
	}
	if got.Engine.Requests != 1 {
		t.Errorf("Engine.Requests = %d, want 1", got.Engine.Requests)
	}
}
