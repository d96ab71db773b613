// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/gamerec/internal/events"
)

type exitingRouter struct{}

func (r *exitingRouter) Run(context.Context) error { return errors.New("subscriber closed") }
func (r *exitingRouter) Close() error            { return nil }

func TestEventRouterService_RunsWatermillRouter(t *testing.T) {
	t.Parallel()

	cfg := events.DefaultConfig()
	logger := events.NewLoggerAdapter(zerolog.Nop())
	pubsub := events.NewPubSub(cfg, logger)
	t.Cleanup(func() { _ = pubsub.Close() })

	handler := events.NewRecommendationHandler(zerolog.Nop(), nil)
	router, err := events.NewRouter(cfg, pubsub, handler, logger)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	svc := NewEventRouterService(router, time.Second, zerolog.Nop())
	runService(t, svc.Serve)

	select {
	case <-router.Running():
	case <-time.After(2 * time.Second):
		t.Fatal("router did not start")
	}
	if !router.IsRunning() {
		t.Error("IsRunning() = false after Running closed")
	}
}

func TestEventRouterService_UnexpectedExit(t *testing.T) {
	t.Parallel()

	svc := NewEventRouterService(&exitingRouter{}, time.Second, zerolog.Nop())
	err := svc.Serve(context.Background())
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() error = %v, want suture.ErrDoNotRestart", err)
	}
	if svc.String() != "event-router" {
		t.Errorf("String() = %q, want event-router", svc.String())
	}
}
