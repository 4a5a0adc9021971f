// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package metrics registers the Prometheus collectors exported on /metrics.
//
// Collectors are package-level and registered with the default registry via
// promauto; callers use the Record* helpers rather than touching the vectors
// directly so label sets stay consistent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
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

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Query Engine Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_queries_total",
			Help: "Total number of handled queries by intent and final state",
		},
		[]string{"intent", "state"}, // state: "answered", "failed"
	)

	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_intents_total",
			Help: "Classifier decisions by intent and firing rule",
		},
		[]string{"intent", "rule"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barkeep_query_duration_seconds",
			Help:    "End-to-end query handling time in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"intent"},
	)

	// Index Metrics
	IndexBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_index_builds_total",
			Help: "Embedding index builds by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barkeep_index_build_duration_seconds",
			Help:    "Duration of embedding index builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	IndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barkeep_index_size",
			Help: "Number of cocktails in the active embedding index",
		},
	)

	IndexGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barkeep_index_generation",
			Help: "Generation of the active embedding index (increments on swap)",
		},
	)

	EmbeddingsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_index_embeddings_total",
			Help: "Embeddings produced during index builds by source",
		},
		[]string{"source"}, // "computed", "snapshot"
	)

	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_embedding_requests_total",
			Help: "Embedding provider calls by provider and result",
		},
		[]string{"provider", "result"}, // result: "success", "failure"
	)

	CorpusReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_corpus_reloads_total",
			Help: "Corpus reload attempts by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Preference Store Metrics
	PreferenceMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barkeep_preference_merges_total",
			Help: "Preference merges by result",
		},
		[]string{"result"}, // "changed", "unchanged", "error"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
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

// RecordQuery records one handled query and the state it finished in.
func RecordQuery(intent, state string, duration time.Duration) {
	QueriesTotal.WithLabelValues(intent, state).Inc()
	QueryDuration.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordIntent counts a classifier decision.
func RecordIntent(intent, rule string) {
	IntentsTotal.WithLabelValues(intent, rule).Inc()
}

// RecordIndexBuild records a build attempt.
func RecordIndexBuild(duration time.Duration, entries int, err error) {
	if err != nil {
		IndexBuilds.WithLabelValues("failure").Inc()
		return
	}
	IndexBuilds.WithLabelValues("success").Inc()
	IndexBuildDuration.Observe(duration.Seconds())
	IndexSize.Set(float64(entries))
}

// RecordIndexSwap publishes the generation of the newly active index.
func RecordIndexSwap(generation uint64) {
	IndexGeneration.Set(float64(generation))
}

// RecordEmbeddingRequest counts one call to an embedding provider.
func RecordEmbeddingRequest(provider string, err error) {
	if err != nil {
		EmbeddingRequests.WithLabelValues(provider, "failure").Inc()
		return
	}
	EmbeddingRequests.WithLabelValues(provider, "success").Inc()
}

// RecordEmbeddings counts embeddings taken from source.
func RecordEmbeddings(source string, n int) {
	if n > 0 {
		EmbeddingsComputed.WithLabelValues(source).Add(float64(n))
	}
}

// RecordCorpusReload counts a reload attempt.
func RecordCorpusReload(err error) {
	if err != nil {
		CorpusReloads.WithLabelValues("failure").Inc()
		return
	}
	CorpusReloads.WithLabelValues("success").Inc()
}

// RecordPreferenceMerge counts a preference merge.
func RecordPreferenceMerge(changed bool, err error) {
	switch {
	case err != nil:
		PreferenceMerges.WithLabelValues("error").Inc()
	case changed:
		PreferenceMerges.WithLabelValues("changed").Inc()
	default:
		PreferenceMerges.WithLabelValues("unchanged").Inc()
	}
}

// RecordCacheLookup counts a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}
