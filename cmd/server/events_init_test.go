// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/config"
)

func TestInitEvents_Disabled(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Events.Enabled = false

	comps, err := initEvents(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	if comps != nil {
		t.Error("initEvents() returned components with events disabled")
	}
}

func TestInitEvents_Enabled(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Events.Enabled = true
	cfg.Events.BufferSize = 16
	cfg.Events.CloseTimeout = time.Second

	comps, err := initEvents(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	if comps == nil || comps.Publisher == nil || comps.Router == nil || comps.PubSub == nil {
		t.Fatalf("initEvents() = %+v, want every component", comps)
	}
	if err := comps.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestEventsConfig_Overrides(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Events.BufferSize = 32
	cfg.Events.BreakerFailures = 9

	ec := eventsConfig(cfg)
	if ec.BufferSize != 32 {
		t.Errorf("BufferSize = %d, want 32", ec.BufferSize)
	}
	if ec.BreakerFailures != 9 {
		t.Errorf("BreakerFailures = %d, want 9", ec.BreakerFailures)
	}
	if ec.CloseTimeout != 10*time.Second {
		t.Errorf("CloseTimeout = %v, want default 10s", ec.CloseTimeout)
	}
}
