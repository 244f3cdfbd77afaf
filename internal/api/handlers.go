// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/fraudguard/internal/detection"
)

// ErrEngineUnavailable is returned when a handler is invoked without a detection guard.
var ErrEngineUnavailable = errors.New("detection engine unavailable")

// DefaultMaxBodyBytes caps an interaction record when HandlerConfig leaves it unset.
const DefaultMaxBodyBytes int64 = 64 << 10

// ReadinessCheck reports whether a dependency is ready to serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HandlerConfig configures the HTTP handlers.
type HandlerConfig struct {
	MaxBodyBytes int64
	Version      string
}

// Handler serves the fraud detection API.
type Handler struct {
	guard     *detection.Guard
	config    HandlerConfig
	startTime time.Time

	checksMu sync.RWMutex
	checks   map[string]ReadinessCheck
}

// NewHandler creates a Handler around guard.
func NewHandler(guard *detection.Guard, cfg HandlerConfig) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		guard:     guard,
		config:    cfg,
		startTime: time.Now(),
		checks:    make(map[string]ReadinessCheck),
	}
}

// AddReadinessCheck registers a named check consulted by HealthReady.
// Registering the same name again replaces the previous check.
func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checksMu.Lock()
	defer h.checksMu.Unlock()
	h.checks[name] = check
}

// runChecks returns "ok" or the error text for each check, plus overall readiness.
func (h *Handler) runChecks(ctx context.Context) (map[string]string, bool) {
	h.checksMu.RLock()
	defer h.checksMu.RUnlock()

	results := make(map[string]string, len(h.checks)+1)
	ready := true

	if h.guard == nil {
		results["engine"] = ErrEngineUnavailable.Error()
		ready = false
	} else {
		results["engine"] = "ok"
	}

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}
	return results, ready
}
