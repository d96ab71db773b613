// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/events"
	"github.com/tomtom215/gamerec/internal/logging"
	"github.com/tomtom215/gamerec/internal/results"
)

// CreateRecommendation handles POST /api/v1/recommendations.
//
// The catalog is filtered by the hard preferences, the survivors are ranked
// against the profile, and the result is stored and announced. Event
// publishing is best effort; a failure is logged and does not fail the
// request.
func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	req, ok := bindRecommendRequest(w, r)
	if !ok {
		return
	}

	k, err := h.engine.ResolveK(req.K)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	profile := req.Profile()
	prefs := req.Preferences()
	filtered := catalog.Filter(snapshot.Games(), prefs)

	ranking, err := h.engine.Rank(ctx, profile, catalog.Candidates(filtered), k)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	result := results.NewResult(profile, prefs, k, ranking.Items, len(filtered), h.resultTTL)
	result.ScoreRange = ranking.Range
	if err := h.results.Save(ctx, result); err != nil {
		NewResponseWriter(w, r).StorageError(err)
		return
	}

	logger := logging.Ctx(r.Context())
	if h.publisher != nil {
		if err := h.publisher.PublishRecommendation(ctx, events.NewRecommendationGenerated(result)); err != nil {
			logger.Warn().Err(err).Str("result_id", result.ID).Msg("Failed to publish recommendation event")
		}
	}

	logger.Info().
		Str("result_id", result.ID).
		Str("profile", profile.Name).
		Int("catalog", snapshot.Len()).
		Int("candidates", len(filtered)).
		Int("returned", len(result.Items)).
		Msg("Recommendation created")

	WriteSuccess(w, r, result)
}

// GetRecommendation handles GET /api/v1/recommendations/{id}.
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	result, err := h.results.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	WriteSuccess(w, r, result)
}

// GetRecommendationGraph handles GET /api/v1/recommendations/{id}/graph.
func (h *Handler) GetRecommendationGraph(w http.ResponseWriter, r *http.Request) {
	result, err := h.results.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	WriteSuccess(w, r, result.Graph())
}
