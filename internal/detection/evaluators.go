// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"fmt"
	"math"
)

// MinConsistencySamples is the number of swipe samples required before
// timing consistency is computed.
const MinConsistencySamples = 5

// Evaluator decides whether one pattern fires for an event.
// Implementations are pure functions of the profile (already updated with
// the event) and the event itself.
type Evaluator interface {
	// Key returns the pattern key this evaluator reports under.
	Key() string

	// Evaluate returns an indicator, or nil when the pattern does not fire
	// or does not apply to the event.
	Evaluate(profile *Profile, event *InteractionEvent) *Indicator
}

// Consistency returns 1 minus the signed coefficient of variation of samples,
// floored at 0. Fewer than MinConsistencySamples samples yields 0. A zero mean
// yields NaN and a negative mean can push the result above 1; both are left
// for the caller's threshold check.
func Consistency(samples []float64) float64 {
	if len(samples) < MinConsistencySamples {
		return 0
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))

	var variance float64
	for _, v := range samples {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(samples))
	stddev := math.Sqrt(variance)

	cv := stddev / mean
	return math.Max(0, 1-math.Min(1, cv))
}

// ReadingSpeed returns words per minute using the reference scaling of
// five units per word. A zero completion time yields +Inf.
func ReadingSpeed(textLength, completionSeconds float64) float64 {
	return (textLength / 5) / (completionSeconds / 60)
}

// TimingConsistencyEvaluator fires when swipe timings are machine-regular.
type TimingConsistencyEvaluator struct {
	pattern   Pattern
	threshold float64
}

// NewTimingConsistencyEvaluator creates the evaluator from its catalog pattern.
func NewTimingConsistencyEvaluator(p Pattern) *TimingConsistencyEvaluator {
	threshold := 0.95
	if r, ok := p.Rule(RuleSwipeConsistency); ok {
		threshold = r.Threshold
	}
	return &TimingConsistencyEvaluator{pattern: p, threshold: threshold}
}

// Key returns the pattern key.
func (e *TimingConsistencyEvaluator) Key() string { return e.pattern.Key }

// Evaluate checks the profile's swipe window.
func (e *TimingConsistencyEvaluator) Evaluate(profile *Profile, event *InteractionEvent) *Indicator {
	if event.SwipeTiming == nil {
		return nil
	}

	consistency := Consistency(profile.SwipeTimings)
	if !(consistency >= e.threshold) {
		return nil
	}

	return &Indicator{
		Key:         e.pattern.Key,
		Pattern:     e.pattern.Name,
		Confidence:  math.Min(1, consistency),
		Description: fmt.Sprintf("Consistent swipe timing detected (%.1f%% consistency)", consistency*100),
		Severity:    SeverityHigh,
	}
}

// ReadingSpeedEvaluator fires when long text is read faster than humanly possible.
type ReadingSpeedEvaluator struct {
	pattern Pattern
	maxWPM  float64
}

// NewReadingSpeedEvaluator creates the evaluator from its catalog pattern.
func NewReadingSpeedEvaluator(p Pattern) *ReadingSpeedEvaluator {
	maxWPM := 1000.0
	if r, ok := p.Rule(RuleReadingSpeed); ok && r.Threshold > 0 {
		maxWPM = r.Threshold
	}
	return &ReadingSpeedEvaluator{pattern: p, maxWPM: maxWPM}
}

// Key returns the pattern key.
func (e *ReadingSpeedEvaluator) Key() string { return e.pattern.Key }

// Evaluate checks the event's text length against its completion time.
func (e *ReadingSpeedEvaluator) Evaluate(_ *Profile, event *InteractionEvent) *Indicator {
	if event.TaskTextLength == nil || event.TaskCompletionTime == nil {
		return nil
	}

	wpm := ReadingSpeed(*event.TaskTextLength, *event.TaskCompletionTime)
	if !(wpm > e.maxWPM) {
		return nil
	}

	return &Indicator{
		Key:         e.pattern.Key,
		Pattern:     e.pattern.Name,
		Confidence:  math.Min(1, wpm/e.maxWPM),
		Description: fmt.Sprintf("Superhuman reading speed detected (%.0f WPM)", wpm),
		Severity:    SeverityHigh,
	}
}

// ConsensusEvaluator fires on perfect (copying) or coin-flip (guessing)
// consensus matches. With zero tolerance the match must be exact.
type ConsensusEvaluator struct {
	pattern   Pattern
	perfect   float64
	guess     float64
	tolerance float64
}

// NewConsensusEvaluator creates the evaluator from its catalog pattern.
// tolerance <= 0 means exact equality.
func NewConsensusEvaluator(p Pattern, tolerance float64) *ConsensusEvaluator {
	e := &ConsensusEvaluator{pattern: p, perfect: 1.0, guess: 0.5}
	if rules := p.rulesOf(RuleConsensusMatch); len(rules) >= 2 {
		e.perfect = rules[0].Threshold
		e.guess = rules[1].Threshold
	}
	if tolerance > 0 {
		e.tolerance = tolerance
	}
	return e
}

// Key returns the pattern key.
func (e *ConsensusEvaluator) Key() string { return e.pattern.Key }

// Evaluate checks the event's consensus match.
func (e *ConsensusEvaluator) Evaluate(_ *Profile, event *InteractionEvent) *Indicator {
	if event.ConsensusMatch == nil {
		return nil
	}
	v := *event.ConsensusMatch

	switch {
	case e.matches(v, e.perfect):
		return &Indicator{
			Key:         e.pattern.Key,
			Pattern:     e.pattern.Name,
			Confidence:  1.0,
			Description: "Perfect consensus match (100%) - possible copying",
			Severity:    SeverityHigh,
		}
	case e.matches(v, e.guess):
		return &Indicator{
			Key:         e.pattern.Key,
			Pattern:     e.pattern.Name,
			Confidence:  0.8,
			Description: "Random consensus match (50%) - possible guessing",
			Severity:    SeverityMedium,
		}
	default:
		return nil
	}
}

func (e *ConsensusEvaluator) matches(v, target float64) bool {
	if e.tolerance == 0 {
		return v == target
	}
	return math.Abs(v-target) <= e.tolerance
}

// RapidCompletionEvaluator fires when a task is completed in under the
// average task time threshold.
type RapidCompletionEvaluator struct {
	pattern Pattern
	minTime float64
}

// NewRapidCompletionEvaluator creates the evaluator from its catalog pattern.
func NewRapidCompletionEvaluator(p Pattern) *RapidCompletionEvaluator {
	minTime := 1.0
	if r, ok := p.Rule(RuleAverageTaskTime); ok && r.Threshold > 0 {
		minTime = r.Threshold
	}
	return &RapidCompletionEvaluator{pattern: p, minTime: minTime}
}

// Key returns the pattern key.
func (e *RapidCompletionEvaluator) Key() string { return e.pattern.Key }

// Evaluate checks the event's completion time.
func (e *RapidCompletionEvaluator) Evaluate(_ *Profile, event *InteractionEvent) *Indicator {
	if event.TaskCompletionTime == nil {
		return nil
	}

	t := *event.TaskCompletionTime
	if !(t < e.minTime) {
		return nil
	}

	return &Indicator{
		Key:         e.pattern.Key,
		Pattern:     e.pattern.Name,
		Confidence:  1 - t/e.minTime,
		Description: fmt.Sprintf("Extremely rapid task completion (%.2fs)", t),
		Severity:    SeverityHigh,
	}
}

// evaluatorsFor builds one evaluator per catalog pattern it recognizes,
// in catalog order.
func evaluatorsFor(c *Catalog, consensusTolerance float64) []Evaluator {
	evaluators := make([]Evaluator, 0, c.Len())
	for _, p := range c.patterns {
		switch p.Key {
		case PatternBotSwipe:
			evaluators = append(evaluators, NewTimingConsistencyEvaluator(p))
		case PatternSuperhumanReading:
			evaluators = append(evaluators, NewReadingSpeedEvaluator(p))
		case PatternSuspiciousConsensus:
			evaluators = append(evaluators, NewConsensusEvaluator(p, consensusTolerance))
		case PatternRapidCompletion:
			evaluators = append(evaluators, NewRapidCompletionEvaluator(p))
		}
	}
	return evaluators
}
