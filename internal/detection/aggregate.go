// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import "math"

// Aggregate combines indicators into one fraud confidence: the
// severity-weighted mean of their confidences, capped at 1.
// No indicators means zero confidence.
func Aggregate(indicators []Indicator) float64 {
	if len(indicators) == 0 {
		return 0
	}

	var weighted, weights float64
	for _, ind := range indicators {
		w := ind.Severity.Weight()
		weighted += ind.Confidence * w
		weights += w
	}

	return math.Min(1, weighted/weights)
}

// RecommendAction maps a fraud confidence onto the advisory action bands.
func RecommendAction(confidence float64) Action {
	switch {
	case confidence >= BlockConfidence:
		return ActionBlock
	case confidence >= ReviewConfidence:
		return ActionReview
	case confidence >= FlagConfidence:
		return ActionFlag
	default:
		return ActionAllow
	}
}
