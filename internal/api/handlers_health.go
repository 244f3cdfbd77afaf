// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/fraudguard/internal/models"
)

// readinessTimeout bounds the total time spent in readiness checks.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK as long as the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.HealthStatus{
			Status:    "alive",
			Version:   h.config.Version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles readiness probe requests.
// Returns 503 when the engine is missing or any registered check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks, ready := h.runChecks(ctx)

	statusCode := http.StatusOK
	status := "ready"
	respStatus := models.StatusSuccess
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
		respStatus = models.StatusError
	}

	resp := &models.APIResponse{
		Status: respStatus,
		Data: models.HealthStatus{
			Status:    status,
			Version:   h.config.Version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Checks:    checks,
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	}
	if !ready {
		resp.Error = &models.APIError{Code: "SERVICE_UNAVAILABLE", Message: "Service is not ready"}
	}
	respondJSON(w, statusCode, resp)
}
