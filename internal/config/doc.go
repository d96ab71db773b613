// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package config loads and validates gamerec configuration with koanf v2.

Sources, lowest to highest precedence:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or config.yaml / /etc/gamerec/config.yaml
 3. Environment variables, after merging a .env file (DOTENV_PATH or ./.env)

Only the variables listed in envMappings are read. Common ones:

	HTTP_PORT               server.port (default 8080)
	CATALOG_PATH            catalog.path (.json or .csv)
	CATALOG_EXCLUDE_WORDS   catalog.exclude_words (comma-separated)
	RECOMMEND_DEFAULT_K     recommend.default_k (default 5)
	RECOMMEND_MAX_K         recommend.max_k (default 100)
	RESULTS_PATH            results.path (empty keeps results in memory)
	RESULTS_TTL             results.ttl (default 24h)
	RESULTS_GC_INTERVAL     results.gc_interval (default 10m)
	ADMIN_TOKEN_SECRET      security.admin_token_secret (empty disables admin routes)
	AUTHZ_POLICY_PATH       security.authz_policy_path (Casbin CSV, default built-in)
	AUDIT_MAX_EVENTS        security.audit_max_events (0 disables the audit trail)
	EVENTS_STREAM_ENABLED   events.stream_enabled (WebSocket feed, default true)
	LOG_LEVEL, LOG_FORMAT   logging.level, logging.format

Example YAML:

	server:
	  port: 8080
	catalog:
	  path: /data/games.csv
	  reload_interval: 30m
	recommend:
	  default_k: 10
*/
package config
