// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gamerec/internal/catalog"
)

// GameDetail is the detail view of one catalog game.
type GameDetail struct {
	GameID          string `json:"game_id"`
	Name            string `json:"name"`
	Genres          string `json:"genres"`
	Categories      string `json:"categories"`
	Free            bool   `json:"free"`
	Price           string `json:"price,omitempty"`
	Platform        string `json:"platform"`
	Description     string `json:"description"`
	Recommendations int    `json:"recommendations"`
	Rating          int    `json:"rating"`
	ReleaseDate     string `json:"release_date"`
	Image           string `json:"image,omitempty"`
}

// CatalogSummary describes the active catalog snapshot.
type CatalogSummary struct {
	Games    int           `json:"games"`
	Source   string        `json:"source"`
	LoadedAt time.Time     `json:"loaded_at"`
	Stats    catalog.Stats `json:"stats"`
}

func newGameDetail(g *catalog.Game) GameDetail {
	return GameDetail{
		GameID:          g.GameID,
		Name:            g.Name,
		Genres:          g.Genres,
		Categories:      g.Categories,
		Free:            g.Free,
		Price:           g.Price,
		Platform:        g.Platform,
		Description:     g.PlainDescription(),
		Recommendations: g.Recommendations,
		Rating:          g.Rating,
		ReleaseDate:     g.ReleaseDate,
		Image:           g.Image(),
	}
}

func newCatalogSummary(c *catalog.Catalog) CatalogSummary {
	return CatalogSummary{
		Games:    c.Len(),
		Source:   c.Source(),
		LoadedAt: c.LoadedAt(),
		Stats:    c.Stats(),
	}
}

// GetGame handles GET /api/v1/games/{name}. The name is the display name.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	game, err := snapshot.Lookup(gameNameParam(r))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	WriteSuccess(w, r, newGameDetail(&game))
}

// gameNameParam returns the {name} path segment. chi matches on RawPath
// when the name contains an escaped slash, so it is unescaped here.
func gameNameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// GetCatalog handles GET /api/v1/games.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	WriteSuccess(w, r, newCatalogSummary(snapshot))
}
