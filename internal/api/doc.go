// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package api provides the HTTP layer of the recommendation service.

Routes:

	POST /api/v1/recommendations             rank the catalog for a profile
	GET  /api/v1/recommendations/{id}        stored result
	GET  /api/v1/recommendations/{id}/graph  profile-centred graph data
	GET  /api/v1/recommendations/stream      WebSocket feed of new recommendations
	GET  /api/v1/games                       catalog summary
	GET  /api/v1/games/{name}                game detail by display name
	POST /api/v1/admin/catalog/reload        reload the catalog (operator or admin JWT)
	GET  /api/v1/admin/stats                 engine, store and breaker state (admin JWT)
	GET  /api/v1/admin/audit                 admin audit trail, JSON or CEF (admin JWT)
	GET  /api/v1/health[/live|/ready]        health probes
	GET  /metrics                            Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Middleware order is RequestIDWithLogging, RealIP, Recoverer, CORS, then per
route group httprate limiting and Prometheus metrics.

Error mapping:

  - malformed JSON or failed validation: 400 VALIDATION_ERROR
  - k above the configured maximum: 400 VALIDATION_ERROR
  - profile name equal to a catalog game name: 409 CONFLICT
  - unknown or expired result, unknown game: 404 NOT_FOUND
  - catalog not loaded: 503 SERVICE_UNAVAILABLE
  - reload throttled: 429 TOO_MANY_REQUESTS
  - missing or invalid admin token: 401 UNAUTHORIZED
  - role not allowed by the authorization policy: 403 FORBIDDEN
*/
package api
