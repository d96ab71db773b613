// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// EventRouter is satisfied by *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the recommendation event router.
//
// A watermill router cannot be run again once it has stopped, so an
// unexpected exit is logged and reported as suture.ErrDoNotRestart.
// Publishing keeps working without a consumer.
type EventRouterService struct {
	router       EventRouter
	closeTimeout time.Duration
	logger       zerolog.Logger
	name         string
}

// NewEventRouterService wraps router. A non-positive closeTimeout means 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEventRouterService(router EventRouter, closeTimeout time.Duration, logger zerolog.Logger) *EventRouterService {
	if closeTimeout <= 0 {
		closeTimeout = 10 * time.Second
	}
	return &EventRouterService{
		router:       router,
		closeTimeout: closeTimeout,
		logger:       logger.With().Str("service", "event-router").Logger(),
		name:         "event-router",
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.router.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error().Err(err).Msg("event router stopped unexpectedly")
		return suture.ErrDoNotRestart

	case <-ctx.Done():
		if err := s.router.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("event router close failed")
		}
		select {
		case <-errCh:
		case <-time.After(s.closeTimeout):
			s.logger.Warn().Dur("timeout", s.closeTimeout).Msg("event router did not stop in time")
		}
		return ctx.Err()
	}
}

// String implements fmt.Stringer.
func (s *EventRouterService) String() string {
	return s.name
}
