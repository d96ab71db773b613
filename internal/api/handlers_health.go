// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/gamerec/internal/recommend"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/gamerec/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Uptime        float64           `json:"uptime_seconds"`
	CatalogLoaded bool              `json:"catalog_loaded"`
	CatalogGames  int               `json:"catalog_games"`
	Checks        map[string]string `json:"checks"`
	Engine        recommend.Stats   `json:"engine"`
}

// readinessTimeout bounds each readiness probe.
const readinessTimeout = 2 * time.Second

// runChecks runs the catalog check and the configured checks. It returns
// the per-check outcome and whether all passed.
func (h *Handler) runChecks(ctx context.Context) (map[string]string, bool) {
	out := make(map[string]string, len(h.checks)+1)
	ready := true

	if _, err := h.catalog.Snapshot(); err != nil {
		out["catalog"] = err.Error()
		ready = false
	} else {
		out["catalog"] = "ok"
	}

	for _, c := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		err := c.Check(checkCtx)
		cancel()
		if err != nil {
			out[c.Name] = err.Error()
			ready = false
			continue
		}
		out[c.Name] = "ok"
	}
	return out, ready
}

// Health handles GET /api/v1/health. It always returns 200 and reports
// "degraded" when a check fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks, ready := h.runChecks(r.Context())

	status := HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Checks:  checks,
		Engine:  h.engine.Stats(),
	}
	if !ready {
		status.Status = "degraded"
	}
	if snapshot, err := h.catalog.Snapshot(); err == nil {
		status.CatalogLoaded = true
		status.CatalogGames = snapshot.Len()
	}

	WriteSuccess(w, r, status)
}

// HealthLive handles GET /api/v1/health/live. 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready. 503 until the catalog is
// loaded and every readiness check passes.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks, ready := h.runChecks(r.Context())
	if !ready {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable,
			ErrCodeServiceUnavailable, "Service is not ready", checks)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{
		"ready":  true,
		"checks": checks,
	})
}
