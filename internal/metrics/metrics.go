// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the outcome label.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidates scored per recommendation request",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	RecommendEdgesAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_edges_admitted_total",
			Help: "Total number of profile-candidate edges that cleared the similarity threshold",
		},
	)

	RecommendEdgesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_edges_rejected_total",
			Help: "Total number of candidates rejected by the similarity threshold",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent scoring and ranking one recommendation request",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Catalog Metrics
	CatalogGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_games",
			Help: "Number of games in the current catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reload attempts by status",
		},
		[]string{"status"},
	)

	CatalogLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_reload_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog reload",
		},
	)

	// Result Store Metrics
	ResultsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "results_stored_total",
			Help: "Total number of ranked results written to the result store by status",
		},
		[]string{"status"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of recommendation events published by status",
		},
		[]string{"status"},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_processed_total",
			Help: "Total number of recommendation events handled by the consumer by status",
		},
		[]string{"status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome of one engine call.
func RecordRecommendation(outcome string, candidates, admitted, rejected int, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendCandidates.Observe(float64(candidates))
	RecommendEdgesAdmitted.Add(float64(admitted))
	RecommendEdgesRejected.Add(float64(rejected))
	RecommendDuration.Observe(duration.Seconds())
}

// RecordCatalogReload records a catalog reload attempt. games is ignored
// unless err is nil.
func RecordCatalogReload(games int, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues(StatusError).Inc()
		return
	}
	CatalogReloads.WithLabelValues(StatusSuccess).Inc()
	CatalogGames.Set(float64(games))
	CatalogLastReload.Set(float64(time.Now().Unix()))
}

// RecordCatalogReloadSkipped records a reload request that was throttled or
// blocked by an open breaker.
func RecordCatalogReloadSkipped() {
	CatalogReloads.WithLabelValues(StatusSkipped).Inc()
}

// RecordResultStored records a result store write.
func RecordResultStored(err error) {
	ResultsStored.WithLabelValues(statusOf(err)).Inc()
}

// RecordEventPublished records an event publish attempt.
func RecordEventPublished(err error) {
	EventsPublished.WithLabelValues(statusOf(err)).Inc()
}

// RecordEventProcessed records an event handled by the consumer.
func RecordEventProcessed(err error) {
	EventsProcessed.WithLabelValues(statusOf(err)).Inc()
}

// SetCircuitBreakerState sets the state gauge for a named breaker.
// state follows gobreaker's ordering: 0 closed, 1 half-open, 2 open.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func statusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
