// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"strings"
	"testing"
)

func TestDefaultCatalog_Patterns(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}

	tests := []struct {
		key      string
		name     string
		contains string
		weight   float64
	}{
		{PatternBotSwipe, "Bot-like Swipe Pattern", "Bot-like", 0.3},
		{PatternSuperhumanReading, "Superhuman Reading Speed", "Superhuman", 0.25},
		{PatternSuspiciousConsensus, "Suspicious Consensus Behavior", "Consensus", 0.25},
		{PatternRapidCompletion, "Rapid Task Completion", "Rapid", 0.2},
	}

	for i, tt := range tests {
		p, ok := c.Get(tt.key)
		if !ok {
			t.Errorf("pattern %q not found", tt.key)
			continue
		}
		if p.Name != tt.name {
			t.Errorf("pattern %q name = %q, want %q", tt.key, p.Name, tt.name)
		}
		if !strings.Contains(p.Name, tt.contains) {
			t.Errorf("pattern %q name %q should contain %q", tt.key, p.Name, tt.contains)
		}
		if p.Weight != tt.weight {
			t.Errorf("pattern %q weight = %v, want %v", tt.key, p.Weight, tt.weight)
		}
		if got := c.Patterns()[i].Key; got != tt.key {
			t.Errorf("catalog order[%d] = %q, want %q", i, got, tt.key)
		}
	}
}

func TestDefaultCatalog_Thresholds(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()

	tests := []struct {
		pattern   string
		rule      string
		threshold float64
		tolerance float64
		unit      string
	}{
		{PatternBotSwipe, RuleSwipeTiming, 800, 50, "ms"},
		{PatternBotSwipe, RuleSwipeConsistency, 0.95, 0, ""},
		{PatternSuperhumanReading, RuleReadingSpeed, 1000, 0, "wpm"},
		{PatternSuperhumanReading, RuleTaskCompletionTime, 5, 0, "seconds"},
		{PatternSuspiciousConsensus, RuleConsensusMatch, 1.0, 0, ""},
		{PatternRapidCompletion, RuleTasksPerMinute, 60, 0, ""},
		{PatternRapidCompletion, RuleAverageTaskTime, 1, 0, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.rule, func(t *testing.T) {
			p, _ := c.Get(tt.pattern)
			r, ok := p.Rule(tt.rule)
			if !ok {
				t.Fatalf("rule %q missing", tt.rule)
			}
			if r.Threshold != tt.threshold {
				t.Errorf("threshold = %v, want %v", r.Threshold, tt.threshold)
			}
			if r.Tolerance != tt.tolerance {
				t.Errorf("tolerance = %v, want %v", r.Tolerance, tt.tolerance)
			}
			if r.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", r.Unit, tt.unit)
			}
		})
	}

	consensus, _ := c.Get(PatternSuspiciousConsensus)
	rules := consensus.rulesOf(RuleConsensusMatch)
	if len(rules) != 2 || rules[0].Threshold != 1.0 || rules[1].Threshold != 0.5 {
		t.Errorf("consensus rules = %+v, want thresholds [1.0 0.5]", rules)
	}
}

func TestCatalog_Immutable(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	patterns := c.Patterns()
	patterns[0].Name = "mutated"
	patterns[0].Rules[0].Threshold = -1

	p, _ := c.Get(PatternBotSwipe)
	if p.Name != "Bot-like Swipe Pattern" {
		t.Errorf("catalog name mutated through Patterns(): %q", p.Name)
	}
	if r, _ := p.Rule(RuleSwipeTiming); r.Threshold != 800 {
		t.Errorf("catalog rule mutated through Patterns(): %v", r.Threshold)
	}
}

func TestNewCatalog_SkipsDuplicates(t *testing.T) {
	t.Parallel()

	c := NewCatalog(
		Pattern{Key: "a", Name: "first"},
		Pattern{Key: "a", Name: "second"},
		Pattern{Key: "b", Name: "third"},
	)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if p, _ := c.Get("a"); p.Name != "first" {
		t.Errorf("Get(a).Name = %q, want first", p.Name)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
	names := c.Names()
	if len(names) != 2 || names[0] != "first" || names[1] != "third" {
		t.Errorf("Names() = %v", names)
	}
}
