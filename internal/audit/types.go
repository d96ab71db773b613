// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package audit

import (
	"context"
	"fmt"
	"time"
)

// EventType categorizes audit events.
type EventType string

const (
	// EventTypeAuthFailure records a rejected admin bearer token.
	EventTypeAuthFailure EventType = "auth.failure"

	// EventTypeAuthzDenied records a valid token refused by the policy.
	EventTypeAuthzDenied EventType = "authz.denied"

	// EventTypeCatalogReload records a manual catalog reload.
	EventTypeCatalogReload EventType = "catalog.reload"

	// EventTypeAdminRead records a read of admin-only data.
	EventTypeAdminRead EventType = "admin.read"
)

// ParseEventType validates an event type from a query string.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventTypeAuthFailure, EventTypeAuthzDenied, EventTypeCatalogReload, EventTypeAdminRead:
		return t, nil
	default:
		return "", fmt.Errorf("unknown audit event type %q", s)
	}
}

// Severity indicates the severity level of an audit event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

var severityRank = map[Severity]int{
	SeverityInfo:    0,
	SeverityWarning: 1,
	SeverityError:   2,
}

// Outcome indicates whether an action succeeded or failed.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ParseOutcome validates an outcome from a query string.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeSuccess, OutcomeFailure:
		return o, nil
	default:
		return "", fmt.Errorf("unknown audit outcome %q", s)
	}
}

// Event represents a security audit event.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Severity  Severity  `json:"severity"`
	Outcome   Outcome   `json:"outcome"`
	Actor     Actor     `json:"actor"`
	Source    Source    `json:"source"`

	// Action is the verb, Resource the request path it applied to.
	Action   string `json:"action"`
	Resource string `json:"resource,omitempty"`

	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
}

// Actor is the token holder behind an event. Subject is empty when the
// token could not be validated.
type Actor struct {
	Subject string `json:"subject,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Source represents where a request originated.
type Source struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	Save(ctx context.Context, event *Event) error

	// Query returns events matching the filter, newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int, error)
}

const (
	// DefaultQueryLimit applies when a filter has no limit.
	DefaultQueryLimit = 100

	// MaxQueryLimit caps a single query.
	MaxQueryLimit = 1000
)

// QueryFilter defines filtering options for audit queries. Zero fields
// match everything.
type QueryFilter struct {
	Types   []EventType `json:"types,omitempty"`
	Outcome Outcome     `json:"outcome,omitempty"`
	Subject string      `json:"subject,omitempty"`
	Since   time.Time   `json:"since,omitempty"`
	Limit   int         `json:"limit,omitempty"`
}

// limit returns the effective result cap.
func (f *QueryFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultQueryLimit
	case f.Limit > MaxQueryLimit:
		return MaxQueryLimit
	default:
		return f.Limit
	}
}

func (f *QueryFilter) matches(event *Event) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if event.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Outcome != "" && event.Outcome != f.Outcome {
		return false
	}
	if f.Subject != "" && event.Actor.Subject != f.Subject {
		return false
	}
	if !f.Since.IsZero() && event.Timestamp.Before(f.Since) {
		return false
	}
	return true
}
