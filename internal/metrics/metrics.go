// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Detection Metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_analyses_total",
			Help: "Total number of analyzed interaction events",
		},
		[]string{"action"}, // allow, flag, review, block
	)

	IndicatorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_indicators_total",
			Help: "Total number of fired fraud indicators",
		},
		[]string{"pattern"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fraud_analysis_duration_seconds",
			Help:    "Duration of a single analysis including lock wait",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}, // In-memory, expect microseconds
		},
	)

	ProfiledUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fraud_profiled_users",
			Help: "Current number of users with a behavior profile",
		},
	)

	FlaggedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fraud_flagged_users",
			Help: "Current number of flagged users",
		},
	)

	ProfilesEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraud_profiles_evicted_total",
			Help: "Total number of profiles evicted by capacity or idle expiry",
		},
	)

	// Notification Metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_notifications_total",
			Help: "Total number of flag alert deliveries",
		},
		[]string{"notifier", "outcome"}, // outcome: success, failure
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Event Stream Metrics
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_consumed_total",
			Help: "Total number of interaction events consumed from NATS",
		},
		[]string{"outcome"}, // processed, invalid
	)

	AlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_alerts_published_total",
			Help: "Total number of flag alerts published to the event stream",
		},
		[]string{"outcome"}, // success, failure, rejected
	)

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
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAnalysis records one analysis with its action and fired pattern keys.
func RecordAnalysis(action string, patterns []string, duration time.Duration) {
	AnalysesTotal.WithLabelValues(action).Inc()
	for _, p := range patterns {
		IndicatorsTotal.WithLabelValues(p).Inc()
	}
	AnalysisDuration.Observe(duration.Seconds())
}

// SetUserCounts updates the profiled and flagged user gauges.
func SetUserCounts(total, flagged int) {
	ProfiledUsers.Set(float64(total))
	FlaggedUsers.Set(float64(flagged))
}

// RecordProfilesEvicted counts profiles evicted by capacity or idle expiry.
func RecordProfilesEvicted(n int) {
	if n > 0 {
		ProfilesEvicted.Add(float64(n))
	}
}

// RecordNotification records a flag alert delivery attempt.
func RecordNotification(notifier, outcome string) {
	NotificationsTotal.WithLabelValues(notifier, outcome).Inc()
}

// RecordEventConsumed records a consumed interaction event.
func RecordEventConsumed(outcome string) {
	EventsConsumed.WithLabelValues(outcome).Inc()
}

// RecordAlertPublished records one alert publication attempt.
func RecordAlertPublished(outcome string) {
	AlertsPublished.WithLabelValues(outcome).Inc()
}

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
