// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package main

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/cache"
	"github.com/tomtom215/gamerec/internal/config"
	"github.com/tomtom215/gamerec/internal/events"
)

// EventComponents holds the in-process event pipeline.
type EventComponents struct {
	PubSub    *gochannel.GoChannel
	Publisher *events.Publisher
	Router    *events.Router
}

// Close closes the publisher and the pubsub. The router is closed by its
// supervised service.
func (c *EventComponents) Close() error {
	if err := c.Publisher.Close(); err != nil {
		return err
	}
	return c.PubSub.Close()
}

func eventsConfig(cfg *config.Config) events.Config {
	ec := events.DefaultConfig()
	if cfg.Events.BufferSize > 0 {
		ec.BufferSize = cfg.Events.BufferSize
	}
	if cfg.Events.CloseTimeout > 0 {
		ec.CloseTimeout = cfg.Events.CloseTimeout
	}
	if cfg.Events.BreakerFailures > 0 {
		ec.BreakerFailures = cfg.Events.BreakerFailures
	}
	if cfg.Events.BreakerTimeout > 0 {
		ec.BreakerTimeout = cfg.Events.BreakerTimeout
	}
	return ec
}

// initEvents builds the publisher and the consumer router. The consumer
// logs each recommendation once, skipping redeliveries, and hands it to
// onEvent when set. It returns nil when events are disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEvents(cfg *config.Config, logger zerolog.Logger, onEvent func(*events.RecommendationGenerated) error) (*EventComponents, error) {
	if !cfg.Events.Enabled {
		logger.Info().Msg("Recommendation events disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	ec := eventsConfig(cfg)
	wmLogger := events.NewLoggerAdapter(logger)
	pubsub := events.NewPubSub(ec, wmLogger)

	seen := cache.NewLRUCache(ec.DedupCapacity, ec.DedupTTL)
	handler := events.NewRecommendationHandler(logger, onEvent).WithDeduplication(seen)

	router, err := events.NewRouter(ec, pubsub, handler, wmLogger)
	if err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("create event router: %w", err)
	}

	return &EventComponents{
		PubSub:    pubsub,
		Publisher: events.NewPublisher(pubsub, ec, wmLogger),
		Router:    router,
	}, nil
}
