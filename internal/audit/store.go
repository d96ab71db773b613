// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore implements Store using bounded in-memory storage. Events are
// lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	events  []Event
	maxLen  int
	evicted int64
}

// NewMemoryStore creates a new in-memory audit store.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &MemoryStore{
		events: make([]Event, 0, min(maxLen, 1024)),
		maxLen: maxLen,
	}
}

// Save persists an audit event.
func (s *MemoryStore) Save(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Enforce max length by removing the oldest 10%
	if len(s.events) >= s.maxLen {
		removeCount := max(s.maxLen/10, 1)
		s.events = append(s.events[:0], s.events[removeCount:]...)
		s.evicted += int64(removeCount)
	}

	s.events = append(s.events, *event)
	return nil
}

// Query retrieves events matching the filter, newest first.
func (s *MemoryStore) Query(_ context.Context, filter QueryFilter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.limit()
	results := make([]Event, 0, min(limit, len(s.events)))
	for i := len(s.events) - 1; i >= 0; i-- {
		if !filter.matches(&s.events[i]) {
			continue
		}
		results = append(results, s.events[i])
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Count returns the number of events matching the filter. The limit is
// ignored.
func (s *MemoryStore) Count(_ context.Context, filter QueryFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.events {
		if filter.matches(&s.events[i]) {
			count++
		}
	}
	return count, nil
}

// Len returns the number of events in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Stats summarizes the audit store.
type Stats struct {
	TotalEvents     int              `json:"total_events"`
	EvictedEvents   int64            `json:"evicted_events"`
	EventsByType    map[string]int64 `json:"events_by_type"`
	EventsByOutcome map[string]int64 `json:"events_by_outcome"`
}

// Stats returns statistics for the memory store.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalEvents:     len(s.events),
		EvictedEvents:   s.evicted,
		EventsByType:    make(map[string]int64),
		EventsByOutcome: make(map[string]int64),
	}
	for i := range s.events {
		stats.EventsByType[string(s.events[i].Type)]++
		stats.EventsByOutcome[string(s.events[i].Outcome)]++
	}
	return stats
}

// JSONExporter exports events as an indented JSON array.
type JSONExporter struct{}

// Export exports events to JSON format.
func (JSONExporter) Export(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	return json.MarshalIndent(events, "", "  ")
}

// CEFExporter exports events in Common Event Format for SIEM ingestion.
type CEFExporter struct {
	DeviceVendor  string
	DeviceProduct string
	DeviceVersion string
}

// NewCEFExporter creates a CEF exporter for the given service version.
func NewCEFExporter(version string) *CEFExporter {
	return &CEFExporter{
		DeviceVendor:  "Gamerec",
		DeviceProduct: "GameRecommendationService",
		DeviceVersion: version,
	}
}

// Export renders one CEF line per event:
// CEF:Version|Device Vendor|Device Product|Device Version|Signature ID|Name|Severity|Extension
func (e *CEFExporter) Export(events []Event) ([]byte, error) {
	lines := make([]string, 0, len(events))
	for i := range events {
		event := &events[i]
		lines = append(lines, fmt.Sprintf("CEF:0|%s|%s|%s|%s|%s|%d|%s",
			e.escapeHeader(e.DeviceVendor),
			e.escapeHeader(e.DeviceProduct),
			e.escapeHeader(e.DeviceVersion),
			e.escapeHeader(string(event.Type)),
			e.escapeHeader(event.Description),
			cefSeverity(event.Severity),
			e.buildExtension(event),
		))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// cefSeverity maps severity to the CEF 0-10 scale.
func cefSeverity(severity Severity) int {
	switch severity {
	case SeverityInfo:
		return 3
	case SeverityWarning:
		return 5
	case SeverityError:
		return 7
	default:
		return 0
	}
}

func (e *CEFExporter) buildExtension(event *Event) string {
	parts := []string{fmt.Sprintf("rt=%d", event.Timestamp.UnixMilli())}

	if event.Actor.Subject != "" {
		parts = append(parts, "suser="+e.escapeExtension(event.Actor.Subject))
	}
	if event.Actor.Role != "" {
		parts = append(parts, "spriv="+e.escapeExtension(event.Actor.Role))
	}
	if event.Source.IPAddress != "" {
		parts = append(parts, "src="+e.escapeExtension(event.Source.IPAddress))
	}
	if event.Resource != "" {
		parts = append(parts, "request="+e.escapeExtension(event.Resource))
	}
	parts = append(parts,
		"act="+e.escapeExtension(event.Action),
		"outcome="+e.escapeExtension(string(event.Outcome)),
	)
	if event.RequestID != "" {
		parts = append(parts, "externalId="+e.escapeExtension(event.RequestID))
	}
	return strings.Join(parts, " ")
}

// escapeHeader escapes a CEF header field.
func (e *CEFExporter) escapeHeader(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	return flattenLines(s)
}

// escapeExtension escapes a CEF extension value.
func (e *CEFExporter) escapeExtension(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "=", "\\=")
	return flattenLines(s)
}

func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}
