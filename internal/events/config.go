// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import "time"

// Config holds pub/sub, publisher and router settings.
type Config struct {
	// BufferSize is the per-subscriber output buffer of the gochannel.
	BufferSize int64

	// CloseTimeout is how long the router waits for handlers on Close.
	CloseTimeout time.Duration

	// BreakerFailures is the number of consecutive publish failures that
	// open the publisher breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the publisher breaker stays open.
	BreakerTimeout time.Duration

	// Retry configuration for the consumer.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// DedupCapacity and DedupTTL size the consumer's processed-ID cache.
	DedupCapacity int
	DedupTTL      time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:           256,
		CloseTimeout:         10 * time.Second,
		BreakerFailures:      5,
		BreakerTimeout:       30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
		DedupCapacity:        10000,
		DedupTTL:             10 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.CloseTimeout <= 0 {
		c.CloseTimeout = d.CloseTimeout
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = d.BreakerFailures
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = d.BreakerTimeout
	}
	if c.RetryMaxRetries < 0 {
		c.RetryMaxRetries = 0
	}
	if c.RetryInitialInterval <= 0 {
		c.RetryInitialInterval = d.RetryInitialInterval
	}
	if c.RetryMaxInterval <= 0 {
		c.RetryMaxInterval = d.RetryMaxInterval
	}
	if c.RetryMultiplier <= 0 {
		c.RetryMultiplier = d.RetryMultiplier
	}
	if c.DedupCapacity <= 0 {
		c.DedupCapacity = d.DedupCapacity
	}
	if c.DedupTTL <= 0 {
		c.DedupTTL = d.DedupTTL
	}
	return c
}
