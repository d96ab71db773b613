// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import (
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/metrics"
)

// Deduplicator remembers processed event IDs. Satisfied by
// *cache.LRUCache.
type Deduplicator interface {
	Contains(key string) bool
	Add(key string, value time.Time)
}

// RecommendationHandler consumes RecommendationGenerated messages.
type RecommendationHandler struct {
	logger     zerolog.Logger
	onEvent    func(*RecommendationGenerated) error
	seen       Deduplicator
	processed  atomic.Int64
	dropped    atomic.Int64
	duplicates atomic.Int64
}

// NewRecommendationHandler creates a handler. onEvent is optional and runs
// after logging; an error from it is returned to the router for retry.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewRecommendationHandler(logger zerolog.Logger, onEvent func(*RecommendationGenerated) error) *RecommendationHandler {
	return &RecommendationHandler{
		logger:  logger.With().Str("component", "events-consumer").Logger(),
		onEvent: onEvent,
	}
}

// WithDeduplication makes the handler ack events whose ID was already
// processed successfully. It returns h.
func (h *RecommendationHandler) WithDeduplication(seen Deduplicator) *RecommendationHandler {
	h.seen = seen
	return h
}

// Handle processes one message. Undecodable payloads are acked and dropped.
func (h *RecommendationHandler) Handle(msg *message.Message) error {
	ev, err := UnmarshalRecommendationGenerated(msg.Payload)
	if err != nil {
		h.dropped.Add(1)
		metrics.RecordEventProcessed(err)
		h.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed recommendation event")
		return nil
	}

	if h.seen != nil && h.seen.Contains(ev.EventID) {
		h.duplicates.Add(1)
		h.logger.Debug().Str("event_id", ev.EventID).Msg("Skipping duplicate recommendation event")
		return nil
	}

	if h.onEvent != nil {
		if err := h.onEvent(ev); err != nil {
			metrics.RecordEventProcessed(err)
			return err
		}
	}

	// Recorded only after success so retries of a failed event still run.
	if h.seen != nil {
		h.seen.Add(ev.EventID, time.Now())
	}
	h.processed.Add(1)
	metrics.RecordEventProcessed(nil)
	h.logger.Info().
		Str("event_id", ev.EventID).
		Str("result_id", ev.ResultID).
		Str("profile", ev.ProfileName).
		Int("candidates", ev.Candidates).
		Int("returned", ev.Returned).
		Str("top_game", ev.TopGame).
		Msg("Recommendation generated")
	return nil
}

// Processed returns the number of events handled successfully.
func (h *RecommendationHandler) Processed() int64 { return h.processed.Load() }

// Dropped returns the number of malformed events discarded.
func (h *RecommendationHandler) Dropped() int64 { return h.dropped.Load() }

// Duplicates returns the number of redelivered events skipped.
func (h *RecommendationHandler) Duplicates() int64 { return h.duplicates.Load() }
