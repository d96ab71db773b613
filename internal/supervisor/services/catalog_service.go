// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/catalog"
)

// reloadTimeout bounds a single catalog reload.
const reloadTimeout = 2 * time.Minute

// CatalogReloader is satisfied by *catalog.Store.
type CatalogReloader interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogReloadService reloads the catalog on a fixed interval and
// whenever Trigger is called. Reload failures are logged and the previous
// snapshot keeps serving; they never stop the service.
type CatalogReloadService struct {
	reloader CatalogReloader
	interval time.Duration
	trigger  chan struct{}
	logger   zerolog.Logger
	name     string

	reloads  atomic.Int64
	failures atomic.Int64
}

// NewCatalogReloadService creates the service. A non-positive interval
// disables periodic reloads; Trigger still works.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(reloader CatalogReloader, interval time.Duration, logger zerolog.Logger) *CatalogReloadService {
	return &CatalogReloadService{
		reloader: reloader,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger.With().Str("service", "catalog-reload").Logger(),
		name:     "catalog-reload",
	}
}

// Trigger requests a reload. It never blocks; requests made while one is
// already pending are coalesced and Trigger returns false.
func (s *CatalogReloadService) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Reloads returns the number of successful reloads.
func (s *CatalogReloadService) Reloads() int64 {
	return s.reloads.Load()
}

// Failures returns the number of failed reloads.
func (s *CatalogReloadService) Failures() int64 {
	return s.failures.Load()
}

// Serve implements suture.Service.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().Dur("interval", s.interval).Msg("catalog reload service started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.reload(ctx, "scheduled")
		case <-s.trigger:
			s.reload(ctx, "manual")
		}
	}
}

func (s *CatalogReloadService) reload(ctx context.Context, reason string) {
	reloadCtx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	start := time.Now()
	c, err := s.reloader.Reload(reloadCtx)
	if err != nil {
		s.failures.Add(1)
		s.logger.Warn().Err(err).Str("reason", reason).Msg("catalog reload failed; keeping previous snapshot")
		return
	}

	s.reloads.Add(1)
	s.logger.Info().
		Str("reason", reason).
		Int("games", c.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")
}

// String implements fmt.Stringer.
func (s *CatalogReloadService) String() string {
	return s.name
}
