// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/fraudguard/internal/detection"
	"github.com/tomtom215/fraudguard/internal/models"
)

// userRequest carries the {userID} path parameter through the validator.
type userRequest struct {
	UserID string `validate:"required,userid"`
}

// userIDParam validates the {userID} path parameter and writes a 400 on failure.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := userRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return "", false
	}
	return req.UserID, true
}

// requireGuard writes a 503 when the handler has no engine.
func (h *Handler) requireGuard(w http.ResponseWriter) bool {
	if h.guard == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Detection engine not available", ErrEngineUnavailable)
		return false
	}
	return true
}

// AnalyzeInteraction scores one interaction record for a labeler.
//
// POST /api/v1/users/{userID}/interactions
//
// The body is an open JSON object. Known metrics are swipe_timing,
// task_completion_time, task_text_length and consensus_match; anything else
// is kept with the profile history. An empty body is a valid, empty record.
func (h *Handler) AnalyzeInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireGuard(w) {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				fmt.Sprintf("Interaction record exceeds %d bytes", maxErr.Limit), nil)
			return
		}
		respondError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to read request body", err)
		return
	}

	event, err := detection.DecodeInteraction(body)
	if err != nil {
		respondErrorDetails(w, http.StatusBadRequest, &models.APIError{
			Code:    "INVALID_PAYLOAD",
			Message: err.Error(),
		}, nil)
		return
	}
	if event.UserID != "" && event.UserID != userID {
		respondErrorDetails(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "user_id in body does not match path",
			Details: map[string]interface{}{"field": "user_id"},
		}, nil)
		return
	}
	event.UserID = userID

	result := h.guard.Analyze(r.Context(), userID, event)
	respondJSON(w, http.StatusOK, models.NewSuccess(result, start))
}

// UserPolicy returns the data weight and validation rate for a labeler.
// Unknown users get the unflagged policy.
//
// GET /api/v1/users/{userID}/policy
func (h *Handler) UserPolicy(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireGuard(w) {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	weight, rate, flagged := h.guard.Policy(userID)
	respondJSON(w, http.StatusOK, models.NewSuccess(models.PolicyResponse{
		UserID:         userID,
		DataWeight:     weight,
		ValidationRate: rate,
		Flagged:        flagged,
	}, start))
}

// UserProfile returns the labeler's behavioral profile.
//
// GET /api/v1/users/{userID}/profile
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireGuard(w) {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	profile, found := h.guard.Profile(userID)
	if !found {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No profile for user", nil)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(profile, start))
}

// Statistics returns aggregate detection statistics.
//
// GET /api/v1/statistics
func (h *Handler) Statistics(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	if !h.requireGuard(w) {
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(h.guard.Statistics(), start))
}

// Patterns returns the fraud pattern catalog.
//
// GET /api/v1/patterns
func (h *Handler) Patterns(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	if !h.requireGuard(w) {
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(h.guard.Patterns(), start))
}
