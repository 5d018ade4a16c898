// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation modes used as the "mode" label.
const (
	ModePersonalized = "personalized"
	ModeTrending     = "trending"
	ModeSimilar      = "similar"
	ModePreferences  = "preferences"
)

var (
	// Activity Log Metrics
	ActivityWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_activity_writes_total",
			Help: "Activity and feedback writes by kind and result",
		},
		[]string{"kind", "result"}, // kind: activity|feedback, result: ok|invalid|persistence_error|error
	)

	LogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipebox_log_users",
			Help: "Number of users with at least one activity record",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_recommendation_requests_total",
			Help: "Recommendation requests by mode",
		},
		[]string{"mode"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_recommendation_duration_seconds",
			Help:    "Time spent scoring candidates",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_recommendation_results",
			Help:    "Number of recipes returned per request",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	// Storage Metrics
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_storage_operation_duration_seconds",
			Help:    "Duration of activity store operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"backend", "operation"},
	)

	StorageBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipebox_storage_breaker_state",
			Help: "Storage circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"route"},
	)
)

// RecordActivityWrite counts one activity or feedback write.
func RecordActivityWrite(kind, result string) {
	ActivityWrites.WithLabelValues(kind, result).Inc()
}

// RecordRecommendation records one scoring request.
func RecordRecommendation(mode string, duration time.Duration, results int) {
	RecommendationRequests.WithLabelValues(mode).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}

// SetLogUsers updates the tracked user gauge.
func SetLogUsers(n int) {
	LogUsers.Set(float64(n))
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimitHit counts one rejected request.
func RecordRateLimitHit(route string) {
	APIRateLimitHits.WithLabelValues(route).Inc()
}
