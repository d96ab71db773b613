// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/cache"
	"github.com/tomtom215/gamerec/internal/recommend"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CloseTimeout = time.Second
	cfg.RetryInitialInterval = 5 * time.Millisecond
	cfg.RetryMaxInterval = 20 * time.Millisecond
	return cfg
}

// startRouter runs a router over a fresh pub/sub and waits until it is ready.
func startRouter(t *testing.T, handler *RecommendationHandler) *gochannel.GoChannel {
	t.Helper()

	logger := watermill.NopLogger{}
	cfg := testConfig()
	pubsub := NewPubSub(cfg, logger)

	router, err := NewRouter(cfg, pubsub, handler, logger)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- router.Run(ctx) }()

	select {
	case <-router.Running():
	case <-time.After(2 * time.Second):
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		<-done
		_ = pubsub.Close()
	})
	return pubsub
}

func TestNewRouter_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	pubsub := NewPubSub(DefaultConfig(), watermill.NopLogger{})
	t.Cleanup(func() { _ = pubsub.Close() })

	if _, err := NewRouter(DefaultConfig(), nil, NewRecommendationHandler(zerolog.Nop(), nil), nil); err == nil {
		t.Error("NewRouter(nil subscriber) error = nil, want error")
	}
	if _, err := NewRouter(DefaultConfig(), pubsub, nil, nil); err == nil {
		t.Error("NewRouter(nil handler) error = nil, want error")
	}
}

func TestRouter_DeliversEvents(t *testing.T) {
	t.Parallel()

	received := make(chan *RecommendationGenerated, 1)
	handler := NewRecommendationHandler(zerolog.Nop(), func(ev *RecommendationGenerated) error {
		received <- ev
		return nil
	})
	pubsub := startRouter(t, handler)

	pub := NewPublisher(pubsub, testConfig(), watermill.NopLogger{})
	ev := NewRecommendationGenerated(sampleResult(
		recommend.ScoredCandidate{Candidate: recommend.Candidate{Name: "Stardew Valley"}, Score: 2},
	))
	if err := pub.PublishRecommendation(context.Background(), ev); err != nil {
		t.Fatalf("PublishRecommendation() error = %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != ev.EventID {
			t.Errorf("EventID = %q, want %q", got.EventID, ev.EventID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	deadline := time.Now().Add(2 * time.Second)
	for handler.Processed() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := handler.Processed(); got != 1 {
		t.Errorf("Processed() = %d, want 1", got)
	}
}

func TestRouter_RetriesHandlerErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	done := make(chan struct{})
	handler := NewRecommendationHandler(zerolog.Nop(), func(*RecommendationGenerated) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	})
	pubsub := startRouter(t, handler)

	pub := NewPublisher(pubsub, testConfig(), watermill.NopLogger{})
	if err := pub.PublishRecommendation(context.Background(), NewRecommendationGenerated(sampleResult())); err != nil {
		t.Fatalf("PublishRecommendation() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("handler did not succeed, attempts = %d", attempts.Load())
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRecommendationHandler_DropsMalformed(t *testing.T) {
	t.Parallel()

	called := false
	handler := NewRecommendationHandler(zerolog.Nop(), func(*RecommendationGenerated) error {
		called = true
		return nil
	})

	if err := handler.Handle(message.NewMessage(watermill.NewUUID(), []byte("garbage"))); err != nil {
		t.Fatalf("Handle() error = %v, want nil", err)
	}
	if called {
		t.Error("onEvent called for malformed payload")
	}
	if got := handler.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
	if got := handler.Processed(); got != 0 {
		t.Errorf("Processed() = %d, want 0", got)
	}
}

func TestRecommendationHandler_PropagatesCallbackError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("sink down")
	handler := NewRecommendationHandler(zerolog.Nop(), func(*RecommendationGenerated) error {
		return wantErr
	})

	data, err := NewRecommendationGenerated(sampleResult()).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := handler.Handle(message.NewMessage(watermill.NewUUID(), data)); !errors.Is(err, wantErr) {
		t.Errorf("Handle() error = %v, want %v", err, wantErr)
	}
}

func TestRecommendationHandler_Deduplication(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var fail atomic.Bool
	fail.Store(true)
	handler := NewRecommendationHandler(zerolog.Nop(), func(*RecommendationGenerated) error {
		calls.Add(1)
		if fail.Load() {
			return errors.New("sink down")
		}
		return nil
	}).WithDeduplication(cache.NewLRUCache(16, time.Minute))

	ev := NewRecommendationGenerated(sampleResult())
	payload, err := ev.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	msg := message.NewMessage(ev.EventID, payload)

	// A failed attempt is not remembered, so the retry still runs.
	if err := handler.Handle(msg); err == nil {
		t.Fatal("Handle() error = nil on failing sink")
	}
	fail.Store(false)
	if err := handler.Handle(msg); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	// Redelivery after success is skipped.
	if err := handler.Handle(msg); err != nil {
		t.Fatalf("Handle() duplicate error = %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("onEvent calls = %d, want 2", got)
	}
	if got := handler.Duplicates(); got != 1 {
		t.Errorf("Duplicates() = %d, want 1", got)
	}
	if got := handler.Processed(); got != 1 {
		t.Errorf("Processed() = %d, want 1", got)
	}
}
