// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/fraudguard/internal/logging"
	"github.com/tomtom215/fraudguard/internal/metrics"
)

// ErrNotifierDisabled is returned by Send on a disabled notifier.
var ErrNotifierDisabled = errors.New("notifier disabled")

// DeliveryConfig controls pacing and failure isolation for an HTTP notifier.
type DeliveryConfig struct {
	// RateLimitMs is the minimum spacing between deliveries.
	RateLimitMs int `json:"rate_limit_ms"`

	// Burst allows short bursts above the steady rate.
	Burst int `json:"burst"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `json:"timeout"`

	// FailureThreshold opens the breaker after this many consecutive failures.
	FailureThreshold uint32 `json:"failure_threshold"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `json:"breaker_timeout"`
}

// endpoint is the switchable destination shared by the HTTP notifiers.
type endpoint struct {
	mu       sync.RWMutex
	url      string
	enabled  bool
	delivery *deliverer
}

// Enabled reports whether the notifier is switched on and has a URL.
func (e *endpoint) Enabled() bool {
	_, err := e.target()
	return err == nil
}

// SetEnabled switches the notifier on or off at runtime.
func (e *endpoint) SetEnabled(enabled bool) {
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()
}

// BreakerState returns the delivery circuit breaker state.
func (e *endpoint) BreakerState() string {
	return e.delivery.state()
}

func (e *endpoint) target() (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.enabled || e.url == "" {
		return "", ErrNotifierDisabled
	}
	return e.url, nil
}

// deliverer posts JSON payloads through a token bucket and a circuit breaker.
type deliverer struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[struct{}]
}

func newDeliverer(name string, cfg DeliveryConfig, defaultInterval time.Duration) *deliverer {
	interval := time.Duration(cfg.RateLimitMs) * time.Millisecond
	if interval <= 0 {
		interval = defaultInterval
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = time.Minute
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return &deliverer{
		name:    name,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(interval), burst),
		cb: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(cbName string, from, to gobreaker.State) {
				logging.Info().Str("notifier", cbName).Str("from", from.String()).Str("to", to.String()).Msg("notifier circuit breaker state transition")
				metrics.CircuitBreakerState.WithLabelValues(cbName).Set(breakerStateValue(to))
			},
		}),
	}
}

// post waits for a rate token, then sends payload unless the breaker is open.
func (d *deliverer) post(ctx context.Context, url string, headers map[string]string, payload any) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limit wait: %w", d.name, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", d.name, err)
	}

	_, err = d.cb.Execute(func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to create %s request: %w", d.name, err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := d.client.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to send %s request: %w", d.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return struct{}{}, fmt.Errorf("%s returned status %d", d.name, resp.StatusCode)
		}
		return struct{}{}, nil
	})
	return err
}

// state returns the breaker state name.
func (d *deliverer) state() string {
	return d.cb.State().String()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
