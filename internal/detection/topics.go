// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

// Topic returns the default NATS subject pattern for interaction events.
// Format: interactions.> (all front-ends, all event kinds)
func Topic() string {
	return "interactions.>"
}

// AlertTopic returns the subject flagged analysis results are published to.
func AlertTopic() string {
	return "fraud.flagged"
}
