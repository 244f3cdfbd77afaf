// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

// Pattern keys. These are stable identifiers used in metrics labels and
// indicator payloads; display names may change, keys may not.
const (
	PatternBotSwipe            = "bot_swipe_pattern"
	PatternSuperhumanReading   = "superhuman_reading"
	PatternSuspiciousConsensus = "suspicious_consensus"
	PatternRapidCompletion     = "rapid_completion"
)

// Indicator rule types.
const (
	RuleSwipeTiming        = "swipe_timing"
	RuleSwipeConsistency   = "swipe_consistency"
	RuleReadingSpeed       = "reading_speed"
	RuleTaskCompletionTime = "task_completion_time"
	RuleConsensusMatch     = "consensus_match"
	RuleTasksPerMinute     = "tasks_per_minute"
	RuleAverageTaskTime    = "average_task_time"
)

// IndicatorRule is one threshold belonging to a pattern.
type IndicatorRule struct {
	Type      string  `json:"type"`
	Threshold float64 `json:"threshold"`
	Tolerance float64 `json:"tolerance,omitempty"`
	Unit      string  `json:"unit,omitempty"`
}

// Pattern is a named detection rule.
type Pattern struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rules       []IndicatorRule `json:"indicators"`

	// Weight is carried for catalog consumers; aggregation uses severity only.
	Weight float64 `json:"weight"`
}

// Rule returns the first rule of the given type.
func (p Pattern) Rule(ruleType string) (IndicatorRule, bool) {
	for _, r := range p.Rules {
		if r.Type == ruleType {
			return r, true
		}
	}
	return IndicatorRule{}, false
}

// rulesOf returns all rules of the given type, in declaration order.
func (p Pattern) rulesOf(ruleType string) []IndicatorRule {
	var out []IndicatorRule
	for _, r := range p.Rules {
		if r.Type == ruleType {
			out = append(out, r)
		}
	}
	return out
}

// Catalog is the immutable, ordered set of patterns an engine evaluates.
type Catalog struct {
	patterns []Pattern
	byKey    map[string]int
}

// NewCatalog builds a catalog from patterns. Later duplicates of a key are ignored.
func NewCatalog(patterns ...Pattern) *Catalog {
	c := &Catalog{
		patterns: make([]Pattern, 0, len(patterns)),
		byKey:    make(map[string]int, len(patterns)),
	}
	for _, p := range patterns {
		if _, dup := c.byKey[p.Key]; dup {
			continue
		}
		p.Rules = append([]IndicatorRule(nil), p.Rules...)
		c.byKey[p.Key] = len(c.patterns)
		c.patterns = append(c.patterns, p)
	}
	return c
}

// DefaultCatalog returns the four built-in patterns.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultPatterns()...)
}

// DefaultPatterns returns the built-in pattern definitions.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Key:         PatternBotSwipe,
			Name:        "Bot-like Swipe Pattern",
			Description: "Users swiping at consistent, machine-like intervals",
			Rules: []IndicatorRule{
				{Type: RuleSwipeTiming, Threshold: 800, Tolerance: 50, Unit: "ms"},
				{Type: RuleSwipeConsistency, Threshold: 0.95},
			},
			Weight: 0.3,
		},
		{
			Key:         PatternSuperhumanReading,
			Name:        "Superhuman Reading Speed",
			Description: "Users completing long-text tasks faster than humanly possible",
			Rules: []IndicatorRule{
				{Type: RuleReadingSpeed, Threshold: 1000, Unit: "wpm"},
				{Type: RuleTaskCompletionTime, Threshold: 5, Unit: "seconds"},
			},
			Weight: 0.25,
		},
		{
			Key:         PatternSuspiciousConsensus,
			Name:        "Suspicious Consensus Behavior",
			Description: "Users matching consensus 100% or 50% of the time",
			Rules: []IndicatorRule{
				{Type: RuleConsensusMatch, Threshold: 1.0},
				{Type: RuleConsensusMatch, Threshold: 0.5},
			},
			Weight: 0.25,
		},
		{
			Key:         PatternRapidCompletion,
			Name:        "Rapid Task Completion",
			Description: "Users completing tasks at impossible speeds",
			Rules: []IndicatorRule{
				{Type: RuleTasksPerMinute, Threshold: 60},
				{Type: RuleAverageTaskTime, Threshold: 1, Unit: "second"},
			},
			Weight: 0.2,
		},
	}
}

// Get returns the pattern with the given key.
func (c *Catalog) Get(key string) (Pattern, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Pattern{}, false
	}
	p := c.patterns[i]
	p.Rules = append([]IndicatorRule(nil), p.Rules...)
	return p, true
}

// Patterns returns a copy of the patterns in catalog order.
func (c *Catalog) Patterns() []Pattern {
	out := make([]Pattern, len(c.patterns))
	for i, p := range c.patterns {
		p.Rules = append([]IndicatorRule(nil), p.Rules...)
		out[i] = p
	}
	return out
}

// Names returns pattern display names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}
