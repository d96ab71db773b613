// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is satisfied by *results.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// ResultsGCService runs value log garbage collection on the result store
// at a fixed interval.
type ResultsGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewResultsGCService creates the service. A non-positive interval means 10m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResultsGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *ResultsGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ResultsGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "results-gc").Logger(),
		name:     "results-gc",
	}
}

// Serve implements suture.Service. GC errors are logged, not returned.
func (s *ResultsGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("results GC failed")
				continue
			}
			s.logger.Debug().Msg("results GC complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *ResultsGCService) String() string {
	return s.name
}
