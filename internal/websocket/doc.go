// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package websocket pushes recommendation events to live clients.

The events consumer hands every RecommendationGenerated event to
Hub.BroadcastRecommendation, which queues it without blocking. The hub's
RunWithContext loop fans each message out to connected clients in
connection order. It runs under the supervisor tree and closes every
client on shutdown.

Each Client owns two goroutines:
  - readPump reads client pings and unregisters the client on error
  - writePump writes queued messages, pongs and keepalive pings

A client whose send queue is full is disconnected rather than allowed to
stall the hub.

Messages are JSON:

	{"type": "recommendation", "data": {"result_id": "...", "top_game": "Portal 2", ...}}
	{"type": "ping"} -> {"type": "pong", "data": null}

Usage:

	hub := websocket.NewHub(logging.WithComponent("stream"), 0)
	tree.AddMessagingService(services.NewStreamHubService(hub))
	handler := events.NewRecommendationHandler(logger, hub.BroadcastRecommendation)

	// in the HTTP handler, after upgrading
	hub.Attach(conn)
*/
package websocket
