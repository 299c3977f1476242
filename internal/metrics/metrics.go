// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package metrics provides Prometheus instrumentation for the analysis
// and recommendation pipeline: ensemble collection coverage, per-source
// failures, ranking latency by method, interaction throughput, and API
// request metrics. Metrics register on the default registry via promauto
// and are served at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ensemble metrics
	AnalysisRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of image analysis requests",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end ensemble analysis duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
	)

	AnalysisSourcesContributing = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_sources_contributing",
			Help:    "Number of sources contributing to one combined analysis",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	SourceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_source_failures_total",
			Help: "Total number of failed analysis source calls",
		},
		[]string{"source"},
	)

	// Recommendation metrics
	RecommendationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by effective method",
		},
		[]string{"method"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation ranking duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"method"},
	)

	// Interaction metrics
	InteractionsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of recorded user interactions by type",
		},
		[]string{"type"},
	)

	// Profile metrics
	ProfileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_cache_hits_total",
			Help: "Total number of profile cache hits",
		},
	)

	ProfileCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_cache_misses_total",
			Help: "Total number of profile cache misses (rebuilds from history)",
		},
	)

	// API metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordAnalysis records one completed ensemble analysis.
func RecordAnalysis(duration time.Duration, contributingSources int) {
	AnalysisRequestsTotal.Inc()
	AnalysisDuration.Observe(duration.Seconds())
	AnalysisSourcesContributing.Observe(float64(contributingSources))
}

// RecordSourceFailure records one failed provider call.
func RecordSourceFailure(source string) {
	SourceFailuresTotal.WithLabelValues(source).Inc()
}

// RecordRecommendation records one completed recommendation request.
func RecordRecommendation(method string, duration time.Duration, results int) {
	RecommendationRequestsTotal.WithLabelValues(method).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(method).Observe(float64(results))
}

// RecordInteraction records one accepted interaction event.
func RecordInteraction(interactionType string) {
	InteractionsRecordedTotal.WithLabelValues(interactionType).Inc()
}

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
