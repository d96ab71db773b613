// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/logging"
	"github.com/tomtom215/gamerec/internal/metrics"
)

// Engine orchestrates similarity, scoring, relation building and top-K
// selection for one request at a time. It holds no per-request state.
type Engine struct {
	config *Config
	logger zerolog.Logger

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats reports engine counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates an engine with the given configuration.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ResolveK applies the configured default when requested is nil and rejects
// values above MaxK. Zero and negative values pass through; Recommend treats
// them as an empty request.
func (e *Engine) ResolveK(requested *int) (int, error) {
	if requested == nil {
		return e.config.DefaultK, nil
	}
	if *requested > e.config.MaxK {
		return 0, fmt.Errorf("%w: %d > %d", ErrKTooLarge, *requested, e.config.MaxK)
	}
	return *requested, nil
}

// Recommend ranks candidates against the profile and returns at most k
// entries, best first.
//
// Candidates must already satisfy the caller's hard constraints. An empty
// candidate set or k <= 0 yields an empty result without error; k <= 0 is
// answered before any other check. Duplicate display names across the
// profile and candidates are rejected with ErrDuplicateIdentity.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, profile Profile, candidates []Candidate, k int) ([]ScoredCandidate, error) {
	ranking, err := e.Rank(ctx, profile, candidates, k)
	if err != nil {
		return nil, err
	}
	return ranking.Items, nil
}

// Rank is Recommend plus the score range over the profile's whole adjacency
// list and the build counters. Items follows the same rules as Recommend.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (e *Engine) Rank(ctx context.Context, profile Profile, candidates []Candidate, k int) (Ranking, error) {
	start := time.Now()
	e.requestCount.Add(1)

	logger := e.createRequestLogger(ctx, profile)

	if k <= 0 {
		logger.Debug().Int("k", k).Msg("non-positive k, returning empty result")
		metrics.RecordRecommendation(metrics.OutcomeEmpty, len(candidates), 0, 0, time.Since(start))
		return Ranking{Items: []ScoredCandidate{}, Stats: BuildStats{Candidates: len(candidates)}}, nil
	}

	if err := checkIdentities(profile, candidates); err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeRejected, len(candidates), 0, 0, time.Since(start))
		logger.Warn().Err(err).Int("candidates", len(candidates)).Msg("recommendation request rejected")
		return Ranking{}, err
	}

	maxPop := MaxPopularity(candidates)
	rel, stats := BuildRelation(profile, candidates, maxPop)
	items := toScoredCandidates(TopK(rel, profile.Identity(), k), logger)

	outcome := metrics.OutcomeSuccess
	if len(items) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, stats.Candidates, stats.Admitted, stats.Rejected, time.Since(start))

	logger.Debug().
		Int("candidates", stats.Candidates).
		Int("admitted", stats.Admitted).
		Int("rejected", stats.Rejected).
		Int("max_popularity", maxPop).
		Int("returned", len(items)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return Ranking{
		Items: items,
		Range: AdjacencyRange(rel, profile.Identity()),
		Stats: stats,
	}, nil
}

// Relation builds the full symmetric relation for a request without
// selecting. It applies the same identity checks as Recommend.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (e *Engine) Relation(profile Profile, candidates []Candidate) (Relation, BuildStats, error) {
	if err := checkIdentities(profile, candidates); err != nil {
		return nil, BuildStats{}, err
	}
	rel, stats := BuildRelation(profile, candidates, MaxPopularity(candidates))
	return rel, stats, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (e *Engine) createRequestLogger(ctx context.Context, profile Profile) zerolog.Logger {
	logCtx := e.logger.With().Str("profile", profile.Name)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}
	return logCtx.Logger()
}

// checkIdentities rejects any display name shared by two entities.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func checkIdentities(profile Profile, candidates []Candidate) error {
	seen := make(map[string]struct{}, len(candidates)+1)
	seen[profile.Identity()] = struct{}{}

	for i := range candidates {
		name := candidates[i].Identity()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateIdentity, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// toScoredCandidates converts the profile's selected edges into results.
// Every neighbor of a profile is a Candidate; anything else is logged and
// left out.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func toScoredCandidates(edges []Edge, logger zerolog.Logger) []ScoredCandidate {
	items := make([]ScoredCandidate, 0, len(edges))
	for _, edge := range edges {
		c, ok := edge.Neighbor.(Candidate)
		if !ok {
			logger.Error().
				Str("neighbor", edge.Neighbor.Identity()).
				Str("type", fmt.Sprintf("%T", edge.Neighbor)).
				Msg("profile neighbor is not a candidate")
			continue
		}
		items = append(items, ScoredCandidate{
			Candidate:  c,
			Score:      edge.Score,
			Similarity: edge.Similarity,
		})
	}
	return items
}
