// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/gamerec/internal/audit"
	"github.com/tomtom215/gamerec/internal/logging"
)

// AuditEventsResponse is the JSON body of GET /api/v1/admin/audit.
type AuditEventsResponse struct {
	Events []audit.Event `json:"events"`

	// Total counts every matching event, ignoring the limit.
	Total   int   `json:"total"`
	Dropped int64 `json:"dropped"`
}

// GetAuditEvents handles GET /api/v1/admin/audit.
//
// Query parameters: type (repeatable or comma separated), outcome,
// subject, since (RFC 3339), limit and format (json or cef).
func (h *Handler) GetAuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		respondDomainError(w, r, ErrAuditDisabled)
		return
	}

	query := r.URL.Query()
	filter, err := parseAuditFilter(query)
	if err != nil {
		NewResponseWriter(w, r).ValidationError(err.Error(), nil)
		return
	}

	format := query.Get("format")
	if format != "" && format != "json" && format != "cef" {
		NewResponseWriter(w, r).ValidationError("format must be json or cef", nil)
		return
	}

	events, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	if format == "cef" {
		data, err := audit.NewCEFExporter(Version).Export(events)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write CEF export")
		}
		return
	}

	total, err := h.audit.Count(r.Context(), filter)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	WriteSuccess(w, r, AuditEventsResponse{
		Events:  events,
		Total:   total,
		Dropped: h.audit.Dropped(),
	})
}

func parseAuditFilter(query url.Values) (audit.QueryFilter, error) {
	var filter audit.QueryFilter

	for _, raw := range query["type"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			t, err := audit.ParseEventType(s)
			if err != nil {
				return filter, err
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if s := query.Get("outcome"); s != "" {
		o, err := audit.ParseOutcome(s)
		if err != nil {
			return filter, err
		}
		filter.Outcome = o
	}

	filter.Subject = query.Get("subject")

	if s := query.Get("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, fmt.Errorf("since must be an RFC 3339 timestamp")
		}
		filter.Since = since
	}

	if s := query.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > audit.MaxQueryLimit {
			return filter, fmt.Errorf("limit must be between 1 and %d", audit.MaxQueryLimit)
		}
		filter.Limit = limit
	}

	return filter, nil
}
