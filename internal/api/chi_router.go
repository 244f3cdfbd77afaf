// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/fraudguard/internal/middleware"
)

// Router wires the handlers into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil chiConfig uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, chiConfig *ChiMiddlewareConfig) *Router {
	return &Router{handler: handler, chiMiddleware: NewChiMiddleware(chiConfig)}
}

// SetupChi builds the HTTP handler.
//
// Routes:
//
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	POST /api/v1/users/{userID}/interactions
//	GET  /api/v1/users/{userID}/policy
//	GET  /api/v1/users/{userID}/profile
//	GET  /api/v1/statistics
//	GET  /api/v1/patterns
//	GET  /metrics
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		router.chiMiddleware.CORS(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/api/v1/users/{userID}", func(r chi.Router) {
			r.Post("/interactions", router.handler.AnalyzeInteraction)
			r.Get("/policy", router.handler.UserPolicy)
			r.Get("/profile", router.handler.UserProfile)
		})
		r.Get("/api/v1/statistics", router.handler.Statistics)
		r.Get("/api/v1/patterns", router.handler.Patterns)
	})

	return r
}
