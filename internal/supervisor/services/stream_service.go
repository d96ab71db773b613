// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package services

import (
	"context"
)

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// StreamHubService runs the live recommendation stream hub under
// supervision. The hub closes its clients when ctx is canceled and can be
// restarted.
//
//	hub := websocket.NewHub(logger, 0)
//	tree.AddMessagingService(services.NewStreamHubService(hub))
type StreamHubService struct {
	hub  ContextHub
	name string
}

// NewStreamHubService creates a new hub service wrapper.
func NewStreamHubService(hub ContextHub) *StreamHubService {
	return &StreamHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service.
func (s *StreamHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for logging.
func (s *StreamHubService) String() string {
	return s.name
}
