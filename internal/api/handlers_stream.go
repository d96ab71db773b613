// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/gamerec/internal/logging"
)

// streamUnavailableMessage is returned when no stream hub is configured.
const streamUnavailableMessage = "Live recommendation stream is not available"

// upgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkStreamOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkStreamOrigin accepts browser connections from the configured
// origins. Requests without an Origin header are rejected.
func (h *Handler) checkStreamOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Ctx(r.Context()).Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.streamOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Ctx(r.Context()).Warn().
		Str("origin", strings.ToValidUTF8(origin, "?")).
		Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// StreamRecommendations handles GET /api/v1/recommendations/stream. Each
// stored recommendation is pushed to connected clients as
// {"type":"recommendation","data":{...}}.
func (h *Handler) StreamRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.stream == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, streamUnavailableMessage)
		return
	}

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := h.stream.Attach(conn)
	logging.Ctx(r.Context()).Debug().Uint64("client_id", client.ID()).Msg("Live stream client attached")
}
