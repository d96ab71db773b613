// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gamerec/internal/api"
	"github.com/tomtom215/gamerec/internal/audit"
	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/authz"
	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/config"
	"github.com/tomtom215/gamerec/internal/events"
	"github.com/tomtom215/gamerec/internal/logging"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/results"
	"github.com/tomtom215/gamerec/internal/supervisor"
	"github.com/tomtom215/gamerec/internal/supervisor/services"
	"github.com/tomtom215/gamerec/internal/websocket"
)

// adminTokenTTL is the lifetime of tokens the API verifies and issues.
const adminTokenTTL = 12 * time.Hour

//nolint:gocyclo // sequential setup steps
func main() {
	issueToken := flag.String("issue-admin-token", "", "print an admin bearer token for `subject` and exit")
	tokenRole := flag.String("role", auth.RoleAdmin, "role of the issued token: admin or operator")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	var tokens *auth.JWTManager
	if cfg.AdminEnabled() {
		tokens, err = auth.NewJWTManager(cfg.Security.AdminTokenSecret, adminTokenTTL)
		if err != nil {
			logging.Fatal().Err(err).Msg("Invalid admin token secret")
		}
	}

	if *issueToken != "" {
		if tokens == nil {
			logging.Fatal().Msg("ADMIN_TOKEN_SECRET must be set to issue admin tokens")
		}
		token, err := tokens.GenerateTokenWithRole(*issueToken, *tokenRole)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to issue admin token")
		}
		fmt.Println(token)
		return
	}

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("catalog_path", cfg.Catalog.Path).
		Bool("events_enabled", cfg.Events.Enabled).
		Bool("admin_enabled", tokens != nil).
		Msg("Starting gamerec with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var enforcer *authz.Enforcer
	if tokens != nil {
		enforcer, err = authz.NewEnforcer(&authz.EnforcerConfig{PolicyPath: cfg.Security.AuthzPolicyPath})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to load authorization policy")
		}
	}

	var auditLog *audit.Logger
	if tokens != nil && cfg.Security.AuditMaxEvents > 0 {
		auditLog = audit.NewLogger(audit.NewMemoryStore(cfg.Security.AuditMaxEvents), nil, logging.WithComponent("audit"))
		defer func() {
			if err := auditLog.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing audit log")
			}
		}()
	}

	// Catalog
	store := catalog.NewStore(catalog.StoreConfig{
		Path:            cfg.Catalog.Path,
		ExcludeWords:    cfg.Catalog.ExcludeWords,
		BreakerFailures: cfg.Catalog.BreakerFailures,
		BreakerTimeout:  cfg.Catalog.BreakerTimeout,
	}, logging.WithComponent("catalog"))

	if snapshot, err := store.Reload(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial catalog load failed; serving not-ready until a reload succeeds")
	} else {
		logging.Info().Int("games", snapshot.Len()).Msg("Catalog loaded")
	}

	// Results
	db, err := results.OpenBadger(cfg.Results.Path, logging.WithComponent("badger"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open results store")
	}
	resultStore := results.NewBadgerStore(db, cfg.Results.TTL)
	defer func() {
		if err := resultStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing results store")
		}
	}()

	// Events
	var hub *websocket.Hub
	var onEvent func(*events.RecommendationGenerated) error
	if cfg.Events.Enabled && cfg.Events.StreamEnabled {
		hub = websocket.NewHub(logging.WithComponent("stream"), int(cfg.Events.BufferSize))
		onEvent = hub.BroadcastRecommendation
	}

	eventComponents, err := initEvents(cfg, logging.WithComponent("events"), onEvent)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize events")
	}
	if eventComponents != nil {
		defer func() {
			if err := eventComponents.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event pipeline")
			}
		}()
	}

	// Engine and HTTP
	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultK: cfg.Recommend.DefaultK,
		MaxK:     cfg.Recommend.MaxK,
	}, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handlerCfg := api.HandlerConfig{
		Engine:          engine,
		Catalog:         store,
		Reloader:        store,
		Results:         resultStore,
		Tokens:          tokens,
		Audit:           auditLog,
		ResultTTL:       cfg.Results.TTL,
		ReloadPerMinute: cfg.Catalog.ReloadPerMinute,
		RequestTimeout:  cfg.Server.Timeout,
		ReadinessChecks: []api.HealthCheck{{
			Name: "results",
			Check: func(ctx context.Context) error {
				_, err := resultStore.Count(ctx)
				return err
			},
		}},
	}
	if eventComponents != nil {
		handlerCfg.Publisher = eventComponents.Publisher
	}
	if hub != nil {
		handlerCfg.Stream = hub
		handlerCfg.StreamOrigins = cfg.Security.CORSOrigins
	}
	if enforcer != nil {
		handlerCfg.Authorizer = enforcer
	} else {
		logging.Info().Msg("Admin routes disabled (ADMIN_TOKEN_SECRET not set)")
	}

	mwConfig := api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(api.NewHandler(handlerCfg), mwConfig)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	reloader := services.NewCatalogReloadService(store, cfg.Catalog.ReloadInterval, logging.WithComponent("catalog"))
	tree.AddDataService(reloader)
	tree.AddDataService(services.NewResultsGCService(resultStore, cfg.Results.GCInterval, logging.WithComponent("results")))

	if eventComponents != nil {
		tree.AddMessagingService(services.NewEventRouterService(
			eventComponents.Router, cfg.Events.CloseTimeout, logging.WithComponent("events")))
	}
	if hub != nil {
		tree.AddMessagingService(services.NewStreamHubService(hub))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				if reloader.Trigger() {
					logging.Info().Msg("SIGHUP received, catalog reload requested")
				} else {
					logging.Info().Msg("SIGHUP received, catalog reload already pending")
				}
				continue
			}
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
			return
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
