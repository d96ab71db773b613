// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gamerec/internal/metrics"
)

// breakerName labels the reload breaker in logs and metrics.
const breakerName = "catalog-reload"

// StoreConfig configures a Store.
type StoreConfig struct {
	// Path is the catalog file passed to LoadFile.
	Path string

	// ExcludeWords is forwarded to New.
	ExcludeWords []string

	// BreakerFailures is the number of consecutive failed reloads that open
	// the breaker. Default: 3
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open. Default: 5m
	BreakerTimeout time.Duration
}

// Store holds the current catalog snapshot and reloads it from disk.
// Readers use Current without locking; reloads are serialized.
type Store struct {
	config  StoreConfig
	logger  zerolog.Logger
	current atomic.Pointer[Catalog]
	breaker *gobreaker.CircuitBreaker[*Catalog]
	load    func(path string) ([]Game, error)

	reloadMu sync.Mutex
}

// NewStore creates a store with no snapshot loaded.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewStore(cfg StoreConfig, logger zerolog.Logger) *Store {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 3
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 5 * time.Minute
	}

	s := &Store{
		config: cfg,
		logger: logger.With().Str("component", "catalog").Logger(),
		load:   LoadFile,
	}

	s.breaker = gobreaker.NewCircuitBreaker[*Catalog](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog reload breaker changed state")
		},
	})
	metrics.SetCircuitBreakerState(breakerName, int(gobreaker.StateClosed))

	return s
}

// Current returns the active snapshot, or nil before the first load.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Snapshot returns the active snapshot or ErrNotLoaded.
func (s *Store) Snapshot() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

// Replace installs a snapshot directly, bypassing the file loader.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
	metrics.CatalogGames.Set(float64(c.Len()))
}

// BreakerState returns the reload breaker state (closed, half-open, open).
func (s *Store) BreakerState() string {
	return s.breaker.State().String()
}

// Reload reads the catalog file and swaps in the new snapshot. On failure
// the previous snapshot stays active. While the breaker is open Reload
// fails fast with ErrReloadUnavailable.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	c, err := s.breaker.Execute(func() (*Catalog, error) {
		games, err := s.load(s.config.Path)
		if err != nil {
			return nil, err
		}
		return New(games, Options{
			ExcludeWords: s.config.ExcludeWords,
			Source:       s.config.Path,
			Logger:       s.logger,
		}), nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.RecordCatalogReloadSkipped()
		return nil, fmt.Errorf("%w: %v", ErrReloadUnavailable, err)
	}
	if err != nil {
		metrics.RecordCatalogReload(0, err)
		s.logger.Error().Err(err).Str("path", s.config.Path).Msg("Catalog reload failed")
		return nil, fmt.Errorf("reload catalog: %w", err)
	}

	s.current.Store(c)
	metrics.RecordCatalogReload(c.Len(), nil)

	stats := c.Stats()
	s.logger.Info().
		Str("path", s.config.Path).
		Int("games", stats.Kept).
		Int("excluded", stats.Excluded).
		Int("duplicates", stats.Duplicates).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return c, nil
}
