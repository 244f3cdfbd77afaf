// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

// Statistics reports profiled and flagged user counts together with the
// registered pattern names. It does not change engine state.
func (e *Engine) Statistics() Statistics {
	total, flagged := e.counts()

	return Statistics{
		TotalUsers:         total,
		FlaggedUsers:       flagged,
		FraudDetectionRate: float64(flagged) / float64(max(1, total)),
		PatternsDetected:   e.catalog.Names(),
	}
}

// counts returns the profiled and flagged user counts without allocating.
func (e *Engine) counts() (total, flagged int) {
	return e.profiles.Len(), len(e.flagged)
}
