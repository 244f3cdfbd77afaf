// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"context"
	"time"
)

// Severity indicates how strongly an indicator counts toward the aggregate.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight returns the aggregation weight for the severity.
// Unknown severities weigh the same as low.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityHigh:
		return 1.5
	case SeverityMedium:
		return 1.2
	default:
		return 1.0
	}
}

// Action is the advisory action recommended for an analyzed interaction.
type Action string

const (
	ActionAllow  Action = "allow"
	ActionFlag   Action = "flag"
	ActionReview Action = "review"
	ActionBlock  Action = "block"
)

// Confidence bands for recommended actions. They are independent of the
// flagging threshold: a user flagged at 0.8 is still only recommended for review.
const (
	BlockConfidence  = 0.9
	ReviewConfidence = 0.7
	FlagConfidence   = 0.5
)

// Policy values exposed to downstream reward and validation components.
const (
	DefaultDataWeight     = 1.0
	FlaggedDataWeight     = 0.1
	DefaultValidationRate = 0.1
	FlaggedValidationRate = 1.0
)

// DefaultConfidenceThreshold is the fraud confidence at or above which a user is flagged.
const DefaultConfidenceThreshold = 0.8

// InteractionEvent is a single user action reported by a front-end.
// Numeric fields are optional; a nil field means the corresponding rule does not apply.
type InteractionEvent struct {
	UserID string `json:"user_id"`

	// SwipeTiming is milliseconds spent on one discrete micro-action.
	SwipeTiming *float64 `json:"swipe_timing,omitempty"`

	// TaskCompletionTime is seconds spent on one unit of work.
	TaskCompletionTime *float64 `json:"task_completion_time,omitempty"`

	// TaskTextLength is the word count of the task text.
	TaskTextLength *float64 `json:"task_text_length,omitempty"`

	// ConsensusMatch is the 0-1 agreement with the group consensus.
	ConsensusMatch *float64 `json:"consensus_match,omitempty"`

	// Extra holds fields not used by scoring.
	Extra map[string]any `json:"extra,omitempty"`
}

// Num returns a pointer to v for populating optional event fields.
func Num(v float64) *float64 {
	return &v
}

// Indicator is one pattern firing for one event.
type Indicator struct {
	Key         string   `json:"key"`
	Pattern     string   `json:"pattern"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// AnalysisResult is returned for every analyzed event.
type AnalysisResult struct {
	UserID            string      `json:"user_id"`
	FraudConfidence   float64     `json:"fraud_confidence"`
	IsFlagged         bool        `json:"is_flagged"`
	Indicators        []Indicator `json:"fraud_indicators"`
	RecommendedAction Action      `json:"recommended_action"`
	Timestamp         time.Time   `json:"timestamp"`
}

// Statistics is the read-only aggregate view over the engine.
type Statistics struct {
	TotalUsers         int      `json:"total_users"`
	FlaggedUsers       int      `json:"flagged_users"`
	FraudDetectionRate float64  `json:"fraud_detection_rate"`
	PatternsDetected   []string `json:"patterns_detected"`
}

// FlagAlert is delivered to notifiers when a user enters the flagged set or
// an analysis recommends blocking.
type FlagAlert struct {
	ID                  string      `json:"id"`
	UserID              string      `json:"user_id"`
	FraudConfidence     float64     `json:"fraud_confidence"`
	RecommendedAction   Action      `json:"recommended_action"`
	Indicators          []Indicator `json:"fraud_indicators"`
	FlaggedInteractions int64       `json:"flagged_interactions"`
	DataWeight          float64     `json:"data_weight"`
	ValidationRate      float64     `json:"validation_rate"`
	CreatedAt           time.Time   `json:"created_at"`
}

// Notifier sends flag alerts to external systems.
type Notifier interface {
	// Send delivers an alert to the notification channel.
	Send(ctx context.Context, alert *FlagAlert) error

	// Name returns the notifier name (e.g., "discord", "webhook").
	Name() string

	// Enabled returns whether this notifier is enabled.
	Enabled() bool
}
