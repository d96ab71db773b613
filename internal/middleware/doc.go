// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - Request ID: accepts a sane upstream X-Request-ID or generates a UUID, and
    stores request_id and correlation_id in the logging context
  - Prometheus Metrics: request count, latency and in-flight gauge labelled
    by the chi route pattern

Both are written as http.HandlerFunc wrappers; the api package adapts them to
chi's func(http.Handler) http.Handler form.

Usage Example:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Post("/recommendations", h.CreateRecommendation)
	})

Route patterns keep the endpoint label bounded: /api/v1/recommendations/{id}
is one series no matter how many result IDs are requested. Requests that
match no route are recorded under the "unmatched" endpoint.
*/
package middleware
