// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package main is the entry point for the gamerec server.

gamerec ranks catalog games against a player profile by genre and category
overlap, boosted by rating and popularity, and serves the ranked lists over
a JSON HTTP API.

# Application Architecture

	RootSupervisor ("gamerec")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogReloadService (CATALOG_RELOAD_INTERVAL, SIGHUP)
	│   └── ResultsGCService (RESULTS_GC_INTERVAL)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: .env merge, then koanf v2 (defaults, YAML, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: initial load from CATALOG_PATH (JSON or CSV)
 4. Results: badger, on disk or in memory
 5. Events: watermill gochannel publisher and consumer router
 6. Engine and HTTP handlers: chi router with middleware stack
 7. Supervisor tree

A failed initial catalog load is not fatal. The server starts, readiness
reports 503 and the next reload (scheduled, SIGHUP or admin API) fills it.

# Signals

	SIGINT, SIGTERM   graceful shutdown within SUPERVISOR_SHUTDOWN_TIMEOUT
	SIGHUP            reload the catalog

# Admin Tokens

The admin API accepts HS256 bearer tokens signed with ADMIN_TOKEN_SECRET.
A Casbin policy (AUTHZ_POLICY_PATH or the built-in one) decides what each
token role may do. Issue a token with:

	ADMIN_TOKEN_SECRET=... ./gamerec -issue-admin-token ops
	ADMIN_TOKEN_SECRET=... ./gamerec -issue-admin-token ci -role operator

# Example Usage

	export CATALOG_PATH=/data/games.csv
	export RESULTS_PATH=/data/results
	./gamerec

	curl -s localhost:8080/api/v1/recommendations \
	  -d '{"name":"Ada","genres":"Puzzle, Action","categories":"Co-op","k":5}'
*/
package main
