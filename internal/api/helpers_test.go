// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamerec/internal/audit"
	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/authz"
	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/events"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/results"
)

const testSecret = "test-admin-secret-with-at-least-32-chars"

func testGames() []catalog.Game {
	return []catalog.Game{
		{
			GameID: "620", Name: "Portal 2", Genres: "Puzzle, Action",
			Categories: "Single-player, Co-op", Platform: "windows;mac;linux",
			Recommendations: 1000, Rating: 95, ReleaseDate: "Apr 18, 2011",
			Description: "<p>Think with <b>portals</b>.</p>",
		},
		{
			GameID: "400", Name: "Portal", Genres: "Puzzle, Action",
			Categories: "Single-player", Platform: "windows;mac",
			Recommendations: 500, Rating: 90, ReleaseDate: "Oct 10, 2007",
		},
		{
			GameID: "570", Name: "Dota 2", Genres: "Action, Strategy",
			Categories: "Multi-player", Free: true, Platform: "windows;mac;linux",
			Recommendations: 2000, Rating: 90, ReleaseDate: "Jul 9, 2013",
		},
		{
			GameID: "105600", Name: "Terraria", Genres: "Action, Adventure, Indie",
			Categories: "Single-player, Multi-player", Platform: "windows",
			Recommendations: 800, Rating: 83, ReleaseDate: "May 16, 2011",
		},
	}
}

// staticCatalog serves a fixed snapshot; nil means not loaded.
type staticCatalog struct {
	mu       sync.Mutex
	snapshot *catalog.Catalog
	reloads  int
	err      error
}

func (s *staticCatalog) Snapshot() (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, catalog.ErrNotLoaded
	}
	return s.snapshot, nil
}

func (s *staticCatalog) Reload(context.Context) (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
	if s.err != nil {
		return nil, s.err
	}
	s.snapshot = catalog.New(testGames(), catalog.Options{Source: "reload"})
	return s.snapshot, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.RecommendationGenerated
	err    error
}

func (p *recordingPublisher) PublishRecommendation(_ context.Context, ev *events.RecommendationGenerated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) published() []*events.RecommendationGenerated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.RecommendationGenerated(nil), p.events...)
}

type testEnv struct {
	server    http.Handler
	catalog   *staticCatalog
	store     *results.BadgerStore
	publisher *recordingPublisher
	tokens    *auth.JWTManager
	audit     *audit.MemoryStore
}

type envOption func(*HandlerConfig)

func newTestEnv(t *testing.T, loaded bool, opts ...envOption) *testEnv {
	t.Helper()

	db, err := results.OpenBadger("", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tokens, err := auth.NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	auditStore := audit.NewMemoryStore(100)
	auditLog := audit.NewLogger(auditStore, &audit.Config{}, zerolog.Nop())
	t.Cleanup(func() { _ = auditLog.Close() })

	cat := &staticCatalog{}
	if loaded {
		cat.snapshot = catalog.New(testGames(), catalog.Options{Source: "test"})
	}

	env := &testEnv{
		catalog:   cat,
		store:     results.NewBadgerStore(db, time.Hour),
		publisher: &recordingPublisher{},
		tokens:    tokens,
		audit:     auditStore,
	}

	cfg := HandlerConfig{
		Engine:    engine,
		Catalog:   cat,
		Reloader:  cat,
		Results:   env.store,
		Publisher: env.publisher,
		Tokens:    tokens,
		ResultTTL: time.Hour,

		Authorizer: enforcer,
		Audit:      auditLog,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	env.server = NewRouter(NewHandler(cfg), mw).SetupChi()
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); ct == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func (e *testEnv) adminHeader(t *testing.T) http.Header {
	t.Helper()
	return e.roleHeader(t, auth.RoleAdmin)
}

func (e *testEnv) roleHeader(t *testing.T, role string) http.Header {
	t.Helper()
	token, err := e.tokens.GenerateTokenWithRole("ops", role)
	if err != nil {
		t.Fatalf("GenerateTokenWithRole() error = %v", err)
	}
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

var errBoom = errors.New("boom")

// waitForAudit blocks until the async audit writer has stored n events.
func (e *testEnv) waitForAudit(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for e.audit.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("audit events = %d, want %d", e.audit.Len(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
