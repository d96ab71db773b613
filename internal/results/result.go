// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/recommend"
)

var (
	// ErrResultNotFound is returned for an unknown result ID.
	ErrResultNotFound = errors.New("result not found")

	// ErrResultExpired is returned for a result past its expiry.
	ErrResultExpired = errors.New("result expired")
)

// Store persists ranked results.
type Store interface {
	Save(ctx context.Context, r *Result) error
	Get(ctx context.Context, id string) (*Result, error)
	Delete(ctx context.Context, id string) error
}

// Item is one ranked entry of a result.
type Item struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	GameID     string  `json:"game_id,omitempty"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
	Genres     string  `json:"genres"`
	Categories string  `json:"categories"`
}

// Result is a stored recommendation run.
type Result struct {
	ID              string               `json:"id"`
	Profile         recommend.Profile    `json:"profile"`
	Preferences     catalog.Preferences  `json:"preferences"`
	K               int                  `json:"k"`
	Items           []Item               `json:"items"`
	TotalCandidates int                  `json:"total_candidates"`
	ScoreRange      recommend.ScoreRange `json:"score_range"`
	CreatedAt       time.Time            `json:"created_at"`
	ExpiresAt       time.Time            `json:"expires_at"`
}

// NewResult builds a result with a fresh ID from ranked engine output.
// Ranks start at 1. Items is never nil.
//
//nolint:gocritic // hugeParam: profile and prefs are copied into the result
func NewResult(profile recommend.Profile, prefs catalog.Preferences, k int, ranked []recommend.ScoredCandidate, totalCandidates int, ttl time.Duration) *Result {
	now := time.Now().UTC()

	items := make([]Item, len(ranked))
	for i, sc := range ranked {
		items[i] = Item{
			Rank:       i + 1,
			Name:       sc.Candidate.Name,
			GameID:     sc.Candidate.ID,
			Score:      sc.Score,
			Similarity: sc.Similarity,
			Genres:     sc.Candidate.Genres,
			Categories: sc.Candidate.Categories,
		}
	}

	return &Result{
		ID:              uuid.New().String(),
		Profile:         profile,
		Preferences:     prefs,
		K:               k,
		Items:           items,
		TotalCandidates: totalCandidates,
		CreatedAt:       now,
		ExpiresAt:       now.Add(ttl),
	}
}

// IsExpired reports whether the result is past its expiry.
func (r *Result) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Top returns the best item, if any.
func (r *Result) Top() (Item, bool) {
	if len(r.Items) == 0 {
		return Item{}, false
	}
	return r.Items[0], true
}
