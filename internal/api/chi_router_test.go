// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestSetupChi_Routes(t *testing.T) {
	t.Parallel()
	srv, _, _ := newTestServer(t)

	tests := []struct {
		method   string
		path     string
		wantCode int
	}{
		{http.MethodGet, "/api/v1/health/live", http.StatusOK},
		{http.MethodGet, "/api/v1/health/ready", http.StatusOK},
		{http.MethodPost, "/api/v1/users/u1/interactions", http.StatusOK},
		{http.MethodGet, "/api/v1/users/u1/policy", http.StatusOK},
		{http.MethodGet, "/api/v1/statistics", http.StatusOK},
		{http.MethodGet, "/api/v1/patterns", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/statistics", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		rec, _ := doRequest(t, srv, tt.method, tt.path, "")
		if rec.Code != tt.wantCode {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantCode)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s %s: missing X-Request-ID", tt.method, tt.path)
		}
	}
}

func TestSetupChi_Metrics(t *testing.T) {
	t.Parallel()
	srv, _, _ := newTestServer(t)

	// Generate at least one API sample.
	doRequest(t, srv, http.MethodGet, "/api/v1/statistics", "")

	rec, _ := doRequest(t, srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `endpoint="/api/v1/statistics"`) {
		t.Error("/metrics should expose API request series labeled by route")
	}
}
