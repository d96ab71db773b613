// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package events publishes and consumes recommendation events over an
// in-process Watermill pub/sub.
//
// # Flow
//
// The API publishes a RecommendationGenerated event after every stored
// result. Publishing goes through a gobreaker circuit breaker so a stuck
// or closed pub/sub fails fast instead of slowing requests down.
//
// A Watermill message.Router consumes the topic with Recoverer and Retry
// middleware. The consumer handler logs each event and records the
// events_processed_total metric. Malformed payloads are acknowledged and
// dropped; gochannel redelivers nacked messages forever.
//
// # Usage
//
//	pubsub := events.NewPubSub(cfg, logger)
//	publisher := events.NewPublisher(pubsub, cfg, logger)
//	router, err := events.NewRouter(cfg, pubsub, events.NewRecommendationHandler(zlog, nil), logger)
//	go router.Run(ctx)
//	<-router.Running()
//	err = publisher.PublishRecommendation(ctx, events.NewRecommendationGenerated(result))
package events
