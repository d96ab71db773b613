// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// consumerName is the router handler name for recommendation events.
const consumerName = "recommendation-consumer"

// Router wraps a Watermill router with Recoverer and Retry middleware and a
// single consumer for TopicRecommendationGenerated.
type Router struct {
	router *message.Router
	logger watermill.LoggerAdapter
}

// NewRouter builds the router. Middleware runs outer to inner:
// Recoverer turns panics into errors, then Retry backs off on failures.
func NewRouter(cfg Config, subscriber message.Subscriber, handler *RecommendationHandler, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	if subscriber == nil {
		return nil, fmt.Errorf("subscriber is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	cfg = cfg.withDefaults()

	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	wmRouter.AddConsumerHandler(consumerName, TopicRecommendationGenerated, subscriber, handler.Handle)

	return &Router{router: wmRouter, logger: logger}, nil
}

// Run blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info("Starting event router", watermill.LogFields{"topic": TopicRecommendationGenerated})
	return r.router.Run(ctx)
}

// Running is closed once the router has started its handlers.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// IsRunning reports whether the router is running.
func (r *Router) IsRunning() bool {
	return r.router.IsRunning()
}

// Close stops the router and waits up to CloseTimeout for handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
