// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tomtom215/gamerec/internal/audit"
	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/authz"
	"github.com/tomtom215/gamerec/internal/logging"
	"github.com/tomtom215/gamerec/internal/recommend"
)

// RequireAdmin returns a Chi middleware that accepts requests carrying a
// valid bearer token whose role the authorizer allows for the route.
// Without a token manager every request gets 404 so the admin surface is
// invisible when disabled.
func (h *Handler) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.tokens == nil {
				respondDomainError(w, r, ErrAdminDisabled)
				return
			}

			token, err := auth.BearerToken(r)
			if err != nil {
				respondDomainError(w, r, err)
				return
			}

			claims, err := h.tokens.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Warn().
					Err(err).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Access denied: admin token rejected")
				h.audit.LogAuthFailure(r, err)
				respondDomainError(w, r, err)
				return
			}

			if err := h.authorize(claims.Role, r); err != nil {
				logging.Ctx(r.Context()).Warn().
					Err(err).
					Str("subject", claims.Subject).
					Str("role", claims.Role).
					Str("path", r.URL.Path).
					Msg("Access denied by policy")
				h.audit.LogAuthzDenied(r, audit.Actor{Subject: claims.Subject, Role: claims.Role})
				respondDomainError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// actorFromRequest returns the audit actor for claims set by RequireAdmin.
func actorFromRequest(r *http.Request) audit.Actor {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return audit.Actor{}
	}
	return audit.Actor{Subject: claims.Subject, Role: claims.Role}
}

func (h *Handler) authorize(role string, r *http.Request) error {
	if h.authz != nil {
		return h.authz.Authorize(role, r)
	}
	if role != auth.RoleAdmin {
		return authz.ErrDenied
	}
	return nil
}

// ReloadCatalog handles POST /api/v1/admin/catalog/reload.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondDomainError(w, r, ErrAdminDisabled)
		return
	}
	if !h.allowReload() {
		respondDomainError(w, r, ErrReloadThrottled)
		return
	}

	actor := actorFromRequest(r)
	snapshot, err := h.reloader.Reload(r.Context())
	if err != nil {
		h.audit.LogAdminAction(r, actor, audit.EventTypeCatalogReload, audit.OutcomeFailure,
			"Catalog reload failed", map[string]string{"error": err.Error()})
		respondDomainError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("admin", actor.Subject).
		Int("games", snapshot.Len()).
		Msg("Catalog reloaded through admin API")
	h.audit.LogAdminAction(r, actor, audit.EventTypeCatalogReload, audit.OutcomeSuccess,
		"Catalog reloaded", map[string]string{
			"games":  strconv.Itoa(snapshot.Len()),
			"source": snapshot.Source(),
		})

	WriteSuccess(w, r, newCatalogSummary(snapshot))
}

// breakerReporter is implemented by components guarded by a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// resultCounter is implemented by stores that can count live results.
type resultCounter interface {
	Count(ctx context.Context) (int, error)
}

// AdminStats is the body of GET /api/v1/admin/stats.
type AdminStats struct {
	Engine        recommend.Stats   `json:"engine"`
	CatalogGames  int               `json:"catalog_games"`
	CatalogSource string            `json:"catalog_source,omitempty"`
	StoredResults *int              `json:"stored_results,omitempty"`
	Breakers      map[string]string `json:"breakers"`
}

// GetAdminStats handles GET /api/v1/admin/stats.
func (h *Handler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	stats := AdminStats{
		Engine:   h.engine.Stats(),
		Breakers: make(map[string]string, 2),
	}

	if snapshot, err := h.catalog.Snapshot(); err == nil {
		stats.CatalogGames = snapshot.Len()
		stats.CatalogSource = snapshot.Source()
	}

	if counter, ok := h.results.(resultCounter); ok {
		n, err := counter.Count(r.Context())
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		stats.StoredResults = &n
	}

	if b, ok := h.reloader.(breakerReporter); ok {
		stats.Breakers["catalog_reload"] = b.BreakerState()
	}
	if b, ok := h.publisher.(breakerReporter); ok {
		stats.Breakers["events_publish"] = b.BreakerState()
	}

	h.audit.LogAdminAction(r, actorFromRequest(r), audit.EventTypeAdminRead, audit.OutcomeSuccess,
		"Admin stats read", nil)
	WriteSuccess(w, r, stats)
}
