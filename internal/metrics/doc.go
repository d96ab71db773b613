// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package metrics provides Prometheus instrumentation for the recommendation
service.

Metrics are registered with the default registry through promauto and exposed
at /metrics in the Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code} (counter)
  - api_request_duration_seconds{method,endpoint} (histogram)
  - api_active_requests (gauge)

Recommendation engine:
  - recommend_requests_total{outcome} (counter), outcome is success, empty or rejected
  - recommend_candidates (histogram): candidate set size per request
  - recommend_edges_admitted_total / recommend_edges_rejected_total (counters)
  - recommend_duration_seconds (histogram)

Catalog:
  - catalog_games (gauge): games in the current snapshot
  - catalog_reloads_total{status} (counter)
  - catalog_last_reload_timestamp_seconds (gauge)

Results and events:
  - results_stored_total{status} (counter)
  - events_published_total{status} (counter)
  - events_processed_total{status} (counter)
  - circuit_breaker_state{name} (gauge): 0 closed, 1 half-open, 2 open

Use the Record* helpers instead of touching the collectors directly.
*/
package metrics
