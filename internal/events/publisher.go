// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gamerec/internal/metrics"
)

// publishBreakerName labels the publisher breaker in logs and metrics.
const publishBreakerName = "events-publish"

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// NewPubSub creates the in-process pub/sub shared by the publisher and the
// router. Messages published with no subscriber are dropped.
func NewPubSub(cfg Config, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	cfg = cfg.withDefaults()

	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, logger)
}

// Publisher wraps a Watermill publisher with a circuit breaker.
type Publisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[interface{}]
	logger    watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewPublisher guards pub with a breaker that opens after
// cfg.BreakerFailures consecutive failures.
func NewPublisher(pub message.Publisher, cfg Config, logger watermill.LoggerAdapter) *Publisher {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	cfg = cfg.withDefaults()

	breaker := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        publishBreakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			logger.Info("Publisher breaker changed state", watermill.LogFields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	metrics.SetCircuitBreakerState(publishBreakerName, int(gobreaker.StateClosed))

	return &Publisher{
		publisher: pub,
		breaker:   breaker,
		logger:    logger,
	}
}

// Publish sends msg to topic through the breaker.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPublisherClosed
	}
	p.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(topic, msg)
	})
	metrics.RecordEventPublished(err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// PublishRecommendation serializes ev and publishes it on
// TopicRecommendationGenerated. The message UUID is the event ID.
func (p *Publisher) PublishRecommendation(ctx context.Context, ev *RecommendationGenerated) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	data, err := ev.Marshal()
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(ev.EventID, data)
	msg.Metadata.Set("result_id", ev.ResultID)
	msg.Metadata.Set("schema_version", fmt.Sprintf("%d", ev.SchemaVersion))

	return p.Publish(ctx, TopicRecommendationGenerated, msg)
}

// BreakerState returns the publisher breaker state.
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close stops accepting messages. The underlying pub/sub is owned by the
// caller and is not closed.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
