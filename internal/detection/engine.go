// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"time"
)

// Engine scores interaction events against the pattern catalog and keeps
// the flagged-user set that drives data weight and validation rate.
//
// Engine is not safe for concurrent use. Callers sharing an engine across
// goroutines must serialize access; Guard does this.
type Engine struct {
	config     EngineConfig
	catalog    *Catalog
	evaluators []Evaluator
	profiles   *ProfileStore
	flagged    map[string]struct{}
	evicted    int
	now        func() time.Time
}

// EngineConfig configures the detection engine.
type EngineConfig struct {
	// ConfidenceThreshold is the fraud confidence at or above which a user is flagged.
	ConfidenceThreshold float64 `json:"confidence_threshold"`

	// MaxProfiles bounds the number of profiled users (0 = unbounded).
	MaxProfiles int `json:"max_profiles"`

	// ProfileIdleTTL evicts users idle for longer than this on ExpireIdle (0 = never).
	ProfileIdleTTL time.Duration `json:"profile_idle_ttl"`

	// ConsensusTolerance widens the consensus triggers to a range (0 = exact match).
	ConsensusTolerance float64 `json:"consensus_tolerance"`
}

// DefaultEngineConfig returns the reference behavior: threshold 0.8,
// unbounded profiles and exact consensus matching.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithCatalog replaces the default pattern catalog.
func WithCatalog(c *Catalog) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a detection engine. A non-positive threshold falls back
// to DefaultConfidenceThreshold.
func NewEngine(cfg EngineConfig, opts ...EngineOption) *Engine {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}

	e := &Engine{
		config:  cfg,
		catalog: DefaultCatalog(),
		flagged: make(map[string]struct{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.evaluators = evaluatorsFor(e.catalog, cfg.ConsensusTolerance)
	e.profiles = NewProfileStore(ProfileStoreConfig{
		MaxProfiles: cfg.MaxProfiles,
		IdleTTL:     cfg.ProfileIdleTTL,
		Now:         e.now,
		OnEvict: func(userID string) {
			delete(e.flagged, userID)
			e.evicted++
		},
	})

	return e
}

// Analyze records the event in the user's profile, evaluates every pattern
// and updates the flagged set from this event's verdict alone.
func (e *Engine) Analyze(userID string, event *InteractionEvent) *AnalysisResult {
	if event == nil {
		event = &InteractionEvent{}
	}

	profile := e.profiles.GetOrCreate(userID)
	e.profiles.Record(profile, event)

	indicators := make([]Indicator, 0, len(e.evaluators))
	for _, ev := range e.evaluators {
		if ind := ev.Evaluate(profile, event); ind != nil {
			indicators = append(indicators, *ind)
		}
	}

	confidence := Aggregate(indicators)
	isFlagged := confidence >= e.config.ConfidenceThreshold

	if isFlagged {
		e.flagged[userID] = struct{}{}
		profile.FlaggedInteractions++
	} else {
		delete(e.flagged, userID)
	}

	return &AnalysisResult{
		UserID:            userID,
		FraudConfidence:   confidence,
		IsFlagged:         isFlagged,
		Indicators:        indicators,
		RecommendedAction: RecommendAction(confidence),
		Timestamp:         e.now(),
	}
}

// IsFlagged reports whether the user's latest analysis was flagged.
func (e *Engine) IsFlagged(userID string) bool {
	_, ok := e.flagged[userID]
	return ok
}

// DataWeight returns how much the user's labeled data counts downstream.
func (e *Engine) DataWeight(userID string) float64 {
	if e.IsFlagged(userID) {
		return FlaggedDataWeight
	}
	return DefaultDataWeight
}

// ValidationRate returns the fraction of the user's future submissions
// that should be re-validated.
func (e *Engine) ValidationRate(userID string) float64 {
	if e.IsFlagged(userID) {
		return FlaggedValidationRate
	}
	return DefaultValidationRate
}

// Profile returns a copy of the user's profile. It does not create one or
// refresh the user's idle timer.
func (e *Engine) Profile(userID string) (Profile, bool) {
	p, ok := e.profiles.Lookup(userID)
	if !ok {
		return Profile{}, false
	}
	return p.Snapshot(), true
}

// takeEvictions returns the number of profiles evicted by either capacity or
// idle expiry since the previous call.
func (e *Engine) takeEvictions() int {
	n := e.evicted
	e.evicted = 0
	return n
}

// ExpireIdle evicts profiles idle past ProfileIdleTTL and returns the count.
func (e *Engine) ExpireIdle() int {
	return e.profiles.ExpireIdle()
}

// Catalog returns the engine's pattern catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Config returns the effective configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}
