// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/fraudguard/internal/logging"
	"github.com/tomtom215/fraudguard/internal/metrics"
)

// Guard serializes access to an Engine so it can be shared by HTTP handlers
// and event consumers. It also records metrics, dispatches flag alerts to
// notifiers and runs idle-profile housekeeping.
type Guard struct {
	mu     sync.Mutex
	engine *Engine

	notifiersMu sync.RWMutex
	notifiers   []Notifier

	config GuardConfig
	wg     sync.WaitGroup
}

// GuardConfig configures a Guard.
type GuardConfig struct {
	// HousekeepingInterval is how often idle profiles are expired (0 disables the loop).
	HousekeepingInterval time.Duration `json:"housekeeping_interval"`

	// NotifyTimeout bounds a single notifier delivery.
	NotifyTimeout time.Duration `json:"notify_timeout"`
}

// DefaultGuardConfig returns sensible defaults.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		HousekeepingInterval: time.Minute,
		NotifyTimeout:        15 * time.Second,
	}
}

// NewGuard wraps engine. The engine must not be used directly afterwards.
func NewGuard(engine *Engine, cfg GuardConfig) *Guard {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = DefaultGuardConfig().NotifyTimeout
	}
	return &Guard{
		engine:    engine,
		notifiers: make([]Notifier, 0),
		config:    cfg,
	}
}

// RegisterNotifier adds a notifier for flag alerts.
func (g *Guard) RegisterNotifier(notifier Notifier) {
	g.notifiersMu.Lock()
	defer g.notifiersMu.Unlock()

	g.notifiers = append(g.notifiers, notifier)
	logging.Info().Str("notifier", notifier.Name()).Bool("enabled", notifier.Enabled()).Msg("registered notifier")
}

// Analyze scores one interaction event for userID.
func (g *Guard) Analyze(ctx context.Context, userID string, event *InteractionEvent) *AnalysisResult {
	start := time.Now()

	g.mu.Lock()
	wasFlagged := g.engine.IsFlagged(userID)
	result := g.engine.Analyze(userID, event)
	total, flagged := g.engine.counts()
	evicted := g.engine.takeEvictions()

	var alert *FlagAlert
	if (result.IsFlagged && !wasFlagged) || result.RecommendedAction == ActionBlock {
		alert = g.buildAlert(result)
	}
	g.mu.Unlock()

	patterns := make([]string, len(result.Indicators))
	for i, ind := range result.Indicators {
		patterns[i] = ind.Key
	}
	metrics.RecordAnalysis(string(result.RecommendedAction), patterns, time.Since(start))
	metrics.SetUserCounts(total, flagged)
	metrics.RecordProfilesEvicted(evicted)

	switch {
	case result.IsFlagged && !wasFlagged:
		logging.CtxInfo(ctx).
			Str("user_id", userID).
			Float64("fraud_confidence", result.FraudConfidence).
			Str("action", string(result.RecommendedAction)).
			Int("indicators", len(result.Indicators)).
			Msg("user flagged")
	case !result.IsFlagged && wasFlagged:
		logging.CtxInfo(ctx).Str("user_id", userID).Msg("user unflagged")
	}

	if alert != nil {
		g.notify(ctx, alert)
	}

	return result
}

// buildAlert must be called with g.mu held.
func (g *Guard) buildAlert(result *AnalysisResult) *FlagAlert {
	var flaggedInteractions int64
	if p, ok := g.engine.profiles.Lookup(result.UserID); ok {
		flaggedInteractions = p.FlaggedInteractions
	}

	return &FlagAlert{
		ID:                  uuid.NewString(),
		UserID:              result.UserID,
		FraudConfidence:     result.FraudConfidence,
		RecommendedAction:   result.RecommendedAction,
		Indicators:          append([]Indicator(nil), result.Indicators...),
		FlaggedInteractions: flaggedInteractions,
		DataWeight:          g.engine.DataWeight(result.UserID),
		ValidationRate:      g.engine.ValidationRate(result.UserID),
		CreatedAt:           result.Timestamp,
	}
}

// notify sends the alert to every enabled notifier asynchronously. Delivery
// keeps ctx's values for logging but not its cancellation.
func (g *Guard) notify(parent context.Context, alert *FlagAlert) {
	g.notifiersMu.RLock()
	notifiers := make([]Notifier, 0, len(g.notifiers))
	for _, n := range g.notifiers {
		if n.Enabled() {
			notifiers = append(notifiers, n)
		}
	}
	g.notifiersMu.RUnlock()

	for _, notifier := range notifiers {
		g.wg.Add(1)
		go func(n Notifier) {
			defer g.wg.Done()

			ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), g.config.NotifyTimeout)
			defer cancel()

			if err := n.Send(ctx, alert); err != nil {
				if errors.Is(err, ErrNotifierDisabled) {
					return
				}
				metrics.RecordNotification(n.Name(), "failure")
				logging.CtxError(ctx).Err(err).Str("notifier", n.Name()).Str("user_id", alert.UserID).Msg("failed to send flag alert")
				return
			}
			metrics.RecordNotification(n.Name(), "success")
		}(notifier)
	}
}

// Wait blocks until in-flight notifications finish.
func (g *Guard) Wait() {
	g.wg.Wait()
}

// DataWeight returns the user's downstream data weight.
func (g *Guard) DataWeight(userID string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.DataWeight(userID)
}

// ValidationRate returns the user's re-validation rate.
func (g *Guard) ValidationRate(userID string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ValidationRate(userID)
}

// Policy returns data weight, validation rate and flag status under one lock.
func (g *Guard) Policy(userID string) (dataWeight, validationRate float64, flagged bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.DataWeight(userID), g.engine.ValidationRate(userID), g.engine.IsFlagged(userID)
}

// IsFlagged reports whether the user is currently flagged.
func (g *Guard) IsFlagged(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.IsFlagged(userID)
}

// Profile returns a snapshot of the user's profile.
func (g *Guard) Profile(userID string) (Profile, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Profile(userID)
}

// Statistics returns the engine statistics.
func (g *Guard) Statistics() Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Statistics()
}

// Patterns returns the pattern catalog. The catalog is immutable so no lock is taken.
func (g *Guard) Patterns() []Pattern {
	return g.engine.Catalog().Patterns()
}

// Housekeep expires idle profiles and refreshes the user gauges.
func (g *Guard) Housekeep() int {
	g.mu.Lock()
	removed := g.engine.ExpireIdle()
	total, flagged := g.engine.counts()
	evicted := g.engine.takeEvictions()
	g.mu.Unlock()

	metrics.SetUserCounts(total, flagged)
	metrics.RecordProfilesEvicted(evicted)
	if removed > 0 {
		logging.Debug().Int("removed", removed).Int("remaining", total).Msg("expired idle profiles")
	}
	return removed
}

// RunWithContext runs housekeeping until the context is canceled.
// This method is designed to work with suture supervision.
func (g *Guard) RunWithContext(ctx context.Context) error {
	logging.Info().Dur("interval", g.config.HousekeepingInterval).Msg("detection guard started")

	if g.config.HousekeepingInterval <= 0 {
		<-ctx.Done()
	} else {
		ticker := time.NewTicker(g.config.HousekeepingInterval)
		defer ticker.Stop()

	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				g.Housekeep()
			}
		}
	}

	logging.Info().Msg("detection guard shutting down")
	g.Wait()
	return ctx.Err()
}
