// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

// Package detection scores labeler interaction events for machine-like or
// low-effort behavior and derives the trust signals consumed by reward and
// validation components.
//
// Detection Architecture:
//
//	InteractionEvent -> ProfileStore -> Evaluators -> Aggregate -> Engine
//	                                                                 |
//	                                         AnalysisResult, flagged set,
//	                                         data weight, validation rate
//
// All rules are deterministic computations over bounded per-user windows
// (50 samples per signal, 100 raw events of history).
//
// Supported Patterns:
//   - Bot-like Swipe Pattern: swipe timings with a coefficient of variation
//     at or below 5% once five samples exist
//   - Superhuman Reading Speed: more than 1000 words per minute
//   - Suspicious Consensus Behavior: consensus match of exactly 1.0 or 0.5
//   - Rapid Task Completion: tasks completed in under one second
//
// Flagging:
// A user is flagged when an event's aggregate confidence reaches the
// threshold (default 0.8) and unflagged as soon as a later event does not.
// Flagged users get a data weight of 0.1 and a validation rate of 1.0.
//
// Engine is single-owner and unsynchronized. Guard wraps it for concurrent
// callers, records Prometheus metrics and sends FlagAlerts to notifiers.
package detection
