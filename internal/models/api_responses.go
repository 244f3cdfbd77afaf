// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "labeler-42", "data_weight": 1, "validation_rate": 0.1, "flagged": false},
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z", "query_time_ms": 0}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "userID is required"},
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes used by the API:
//   - VALIDATION_ERROR: bad path parameter or request field
//   - INVALID_PAYLOAD: interaction body is not a JSON object or has a non-numeric metric
//   - PAYLOAD_TOO_LARGE: body exceeds the configured limit
//   - NOT_FOUND: no profile for the user
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - SERVICE_UNAVAILABLE: readiness check failed
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PolicyResponse is the quality-control policy for one labeler.
type PolicyResponse struct {
	UserID         string  `json:"user_id"`
	DataWeight     float64 `json:"data_weight"`
	ValidationRate float64 `json:"validation_rate"`
	Flagged        bool    `json:"flagged"`
}

// HealthStatus is returned by the liveness and readiness probes.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    float64           `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewSuccess wraps data in a success envelope stamped with the elapsed time since start.
func NewSuccess(data interface{}, start time.Time) *APIResponse {
	return &APIResponse{
		Status: StatusSuccess,
		Data:   data,
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	}
}
