// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered with the default registry through promauto and exposed
at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8480/metrics

# Available Metrics

Detection Metrics:
  - fraud_analyses_total: Analyzed events (counter)
    Labels: action (allow, flag, review, block)
  - fraud_indicators_total: Fired indicators (counter)
    Labels: pattern (bot_swipe_pattern, superhuman_reading, suspicious_consensus, rapid_completion)
  - fraud_analysis_duration_seconds: Analysis latency including lock wait (histogram)
  - fraud_profiled_users: Users with a behavior profile (gauge)
  - fraud_flagged_users: Currently flagged users (gauge)
  - fraud_profiles_evicted_total: Profiles removed by idle expiry (counter)

Notification Metrics:
  - fraud_notifications_total: Flag alert deliveries (counter)
    Labels: notifier, outcome
  - circuit_breaker_state: Notifier breaker state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open

Event Stream Metrics:
  - interaction_events_consumed_total: NATS events consumed (counter)
    Labels: outcome (processed, invalid)

API Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

# Example Queries

Flag rate over the last five minutes:

	sum(rate(fraud_analyses_total{action!="allow"}[5m])) / sum(rate(fraud_analyses_total[5m]))

Most frequent pattern:

	topk(1, sum by (pattern) (rate(fraud_indicators_total[1h])))
*/
package metrics
