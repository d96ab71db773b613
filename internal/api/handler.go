// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/gamerec/internal/audit"
	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/events"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/results"
	ws "github.com/tomtom215/gamerec/internal/websocket"
)

// CatalogSource serves the active catalog snapshot.
type CatalogSource interface {
	Snapshot() (*catalog.Catalog, error)
}

// CatalogReloader reloads the catalog from its source.
type CatalogReloader interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// EventPublisher publishes recommendation events.
type EventPublisher interface {
	PublishRecommendation(ctx context.Context, ev *events.RecommendationGenerated) error
}

// Authorizer decides whether a token role may make a request. Satisfied
// by *authz.Enforcer.
type Authorizer interface {
	Authorize(role string, r *http.Request) error
}

// HealthCheck is a named readiness probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandlerConfig wires the handler's collaborators. Publisher, Reloader,
// Tokens, Authorizer, Audit and Stream are optional. Without an Authorizer only the admin
// role may use the admin routes.
type HandlerConfig struct {
	Engine    *recommend.Engine
	Catalog   CatalogSource
	Reloader  CatalogReloader
	Results   results.Store
	Publisher EventPublisher
	Tokens    *auth.JWTManager

	Authorizer Authorizer
	Audit      *audit.Logger

	// Stream pushes recommendation events to WebSocket clients whose
	// Origin is in StreamOrigins ("*" allows any).
	Stream        *ws.Hub
	StreamOrigins []string

	// ResultTTL is the lifetime of stored results.
	ResultTTL time.Duration

	// ReloadPerMinute limits manual catalog reloads. 0 disables the limit.
	ReloadPerMinute int

	// RequestTimeout bounds recommendation requests. Default: 10s
	RequestTimeout time.Duration

	// ReadinessChecks run on /api/v1/health/ready in addition to the
	// catalog check.
	ReadinessChecks []HealthCheck
}

// Handler implements the HTTP endpoints.
type Handler struct {
	engine    *recommend.Engine
	catalog   CatalogSource
	reloader  CatalogReloader
	results   results.Store
	publisher EventPublisher
	tokens    *auth.JWTManager
	authz     Authorizer
	audit     *audit.Logger
	stream    *ws.Hub

	streamOrigins  []string
	resultTTL      time.Duration
	requestTimeout time.Duration
	reloadLimiter  *rate.Limiter
	checks         []HealthCheck
	startTime      time.Time
}

// NewHandler creates a handler from cfg.
//
//nolint:gocritic // hugeParam: config copied once at startup
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	h := &Handler{
		engine:         cfg.Engine,
		catalog:        cfg.Catalog,
		reloader:       cfg.Reloader,
		results:        cfg.Results,
		publisher:      cfg.Publisher,
		tokens:         cfg.Tokens,
		authz:          cfg.Authorizer,
		audit:          cfg.Audit,
		stream:         cfg.Stream,
		streamOrigins:  cfg.StreamOrigins,
		resultTTL:      cfg.ResultTTL,
		requestTimeout: cfg.RequestTimeout,
		checks:         cfg.ReadinessChecks,
		startTime:      time.Now(),
	}

	if cfg.ReloadPerMinute > 0 {
		h.reloadLimiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.ReloadPerMinute)), cfg.ReloadPerMinute)
	}

	return h
}

// allowReload consumes one token from the reload limiter.
func (h *Handler) allowReload() bool {
	return h.reloadLimiter == nil || h.reloadLimiter.Allow()
}
