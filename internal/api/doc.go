// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package api exposes the detection guard over HTTP.

Labeling front-ends post interaction records; reward and validation
components read back the per-labeler policy:

	POST /api/v1/users/{userID}/interactions   analyze one record
	GET  /api/v1/users/{userID}/policy         data weight, validation rate, flag
	GET  /api/v1/users/{userID}/profile        behavioral profile (404 if never seen)
	GET  /api/v1/statistics                    users, flagged users, detection rate
	GET  /api/v1/patterns                      fraud pattern catalog
	GET  /api/v1/health/live|ready             probes
	GET  /metrics                              Prometheus

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code (VALIDATION_ERROR, INVALID_PAYLOAD, PAYLOAD_TOO_LARGE,
NOT_FOUND, RATE_LIMIT_EXCEEDED, SERVICE_UNAVAILABLE).

Usage:

	handler := api.NewHandler(guard, api.HandlerConfig{MaxBodyBytes: cfg.Server.MaxBodyBytes})
	router := api.NewRouter(handler, api.ChiMiddlewareFromSecurity(cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}

Middleware order: request ID, real IP, panic recovery, CORS, then per-group
rate limiting, security headers and Prometheus instrumentation.
*/
package api
