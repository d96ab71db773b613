// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package audit

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/logging"
)

// Config holds configuration for the audit logger.
type Config struct {
	// MinSeverity drops events below this level.
	// Default: info
	MinSeverity Severity

	// BufferSize is the size of the async write buffer.
	// Default: 256
	BufferSize int

	// LogEvents also writes each event to the application log.
	LogEvents bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MinSeverity: SeverityInfo,
		BufferSize:  256,
		LogEvents:   true,
	}
}

// Logger records audit events asynchronously. A nil *Logger is valid and
// discards everything, so callers need not check whether auditing is on.
type Logger struct {
	config  Config
	store   Store
	logger  zerolog.Logger
	events  chan *Event
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Int64
	now     func() time.Time
}

// NewLogger creates an audit logger writing to store and starts its writer.
func NewLogger(store Store, cfg *Config, logger zerolog.Logger) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.MinSeverity == "" {
		c.MinSeverity = SeverityInfo
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 256
	}

	l := &Logger{
		config: c,
		store:  store,
		logger: logger,
		events: make(chan *Event, c.BufferSize),
		stop:   make(chan struct{}),
		now:    time.Now,
	}

	l.wg.Add(1)
	go l.asyncWriter()

	return l
}

// asyncWriter processes events from the buffer.
func (l *Logger) asyncWriter() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stop:
			// Drain remaining events
			for {
				select {
				case event := <-l.events:
					l.writeEvent(event)
				default:
					return
				}
			}
		case event := <-l.events:
			l.writeEvent(event)
		}
	}
}

func (l *Logger) writeEvent(event *Event) {
	if l.config.LogEvents {
		if data, err := json.Marshal(event); err == nil {
			l.logger.Info().RawJSON("audit", data).Msg("Audit event")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.store.Save(ctx, event); err != nil {
		l.logger.Error().Err(err).Str("event_id", event.ID).Msg("Failed to save audit event")
	}
}

// Log records an audit event without blocking. Events below the configured
// severity are ignored and events arriving on a full buffer are dropped.
func (l *Logger) Log(event *Event) {
	if l == nil {
		return
	}
	if severityRank[event.Severity] < severityRank[l.config.MinSeverity] {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}

	select {
	case <-l.stop:
		return
	default:
	}

	select {
	case l.events <- event:
	default:
		l.dropped.Add(1)
		l.logger.Warn().Str("event_id", event.ID).Msg("Audit event buffer full, dropping event")
	}
}

// Close stops the writer after draining buffered events. Safe to call more
// than once.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.once.Do(func() {
		close(l.stop)
		l.wg.Wait()
	})
	return nil
}

// Dropped returns the number of events lost to a full buffer.
func (l *Logger) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Query retrieves events matching the filter.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// Count returns the number of events matching the filter.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int, error) {
	return l.store.Count(ctx, filter)
}

// LogAuthFailure records a rejected admin token.
func (l *Logger) LogAuthFailure(r *http.Request, reason error) {
	l.Log(&Event{
		Type:        EventTypeAuthFailure,
		Severity:    SeverityWarning,
		Outcome:     OutcomeFailure,
		Source:      SourceFromRequest(r),
		Action:      "authenticate",
		Resource:    r.URL.Path,
		Description: "Admin token rejected: " + reason.Error(),
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
}

// LogAuthzDenied records a policy denial for a valid token.
func (l *Logger) LogAuthzDenied(r *http.Request, actor Actor) {
	l.Log(&Event{
		Type:        EventTypeAuthzDenied,
		Severity:    SeverityWarning,
		Outcome:     OutcomeFailure,
		Actor:       actor,
		Source:      SourceFromRequest(r),
		Action:      r.Method,
		Resource:    r.URL.Path,
		Description: "Role " + actor.Role + " denied " + r.Method + " " + r.URL.Path,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
}

// LogAdminAction records an admin operation and its outcome.
func (l *Logger) LogAdminAction(r *http.Request, actor Actor, eventType EventType, outcome Outcome, description string, metadata map[string]string) {
	severity := SeverityInfo
	if outcome == OutcomeFailure {
		severity = SeverityError
	} else if eventType == EventTypeCatalogReload {
		severity = SeverityWarning
	}
	l.Log(&Event{
		Type:        eventType,
		Severity:    severity,
		Outcome:     outcome,
		Actor:       actor,
		Source:      SourceFromRequest(r),
		Action:      r.Method,
		Resource:    r.URL.Path,
		Description: description,
		Metadata:    metadata,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
}

// SourceFromRequest describes the client of r. RemoteAddr is expected to
// have been rewritten by a real-IP middleware already.
func SourceFromRequest(r *http.Request) Source {
	return Source{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
