// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package logging provides the zerolog-based logger shared by every gamerec
package.

A single global logger is configured once from main:

	logging.Init(logging.Config{Level: "info", Format: "json"})

Components derive child loggers rather than building their own:

	logger := logging.WithComponent("catalog")
	logger.Info().Int("games", n).Msg("Catalog loaded")

Request-scoped code should log through Ctx, which adds request_id and
correlation_id when the HTTP middleware has stored them:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation rejected")

Always terminate event chains with Msg or Send; an unterminated chain is
never written.

# slog Bridge

Libraries that log through log/slog (the suture supervisor hook) are routed
through SlogHandler so that all output shares one format and level.
*/
package logging
