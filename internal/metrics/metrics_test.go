// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordAnalysis tests analysis metric recording
func TestRecordAnalysis(t *testing.T) {
	beforeReview := testutil.ToFloat64(AnalysesTotal.WithLabelValues("review"))
	beforeConsensus := testutil.ToFloat64(IndicatorsTotal.WithLabelValues("suspicious_consensus"))
	beforeRapid := testutil.ToFloat64(IndicatorsTotal.WithLabelValues("rapid_completion"))
	beforeCount := histogramCount(t, AnalysisDuration)

	RecordAnalysis("review", []string{"suspicious_consensus", "rapid_completion"}, 40*time.Microsecond)
	RecordAnalysis("allow", nil, 10*time.Microsecond)

	if got := testutil.ToFloat64(AnalysesTotal.WithLabelValues("review")) - beforeReview; got != 1 {
		t.Errorf("review analyses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(IndicatorsTotal.WithLabelValues("suspicious_consensus")) - beforeConsensus; got != 1 {
		t.Errorf("consensus indicators delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(IndicatorsTotal.WithLabelValues("rapid_completion")) - beforeRapid; got != 1 {
		t.Errorf("rapid indicators delta = %v, want 1", got)
	}
	if got := histogramCount(t, AnalysisDuration) - beforeCount; got != 2 {
		t.Errorf("duration samples delta = %d, want 2", got)
	}
}

// TestSetUserCounts tests user gauges
func TestSetUserCounts(t *testing.T) {
	SetUserCounts(12, 3)

	if got := testutil.ToFloat64(ProfiledUsers); got != 12 {
		t.Errorf("ProfiledUsers = %v, want 12", got)
	}
	if got := testutil.ToFloat64(FlaggedUsers); got != 3 {
		t.Errorf("FlaggedUsers = %v, want 3", got)
	}
}

func TestRecordProfilesEvicted(t *testing.T) {
	before := testutil.ToFloat64(ProfilesEvicted)
	RecordProfilesEvicted(4)
	RecordProfilesEvicted(0)

	if got := testutil.ToFloat64(ProfilesEvicted) - before; got != 4 {
		t.Errorf("ProfilesEvicted delta = %v, want 4", got)
	}
}

func TestRecordNotification(t *testing.T) {
	tests := []struct {
		notifier string
		outcome  string
	}{
		{"webhook", "success"},
		{"webhook", "failure"},
		{"discord", "success"},
	}

	for _, tt := range tests {
		t.Run(tt.notifier+"_"+tt.outcome, func(t *testing.T) {
			c := NotificationsTotal.WithLabelValues(tt.notifier, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordNotification(tt.notifier, tt.outcome)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordEventConsumed(t *testing.T) {
	before := testutil.ToFloat64(EventsConsumed.WithLabelValues("invalid"))
	RecordEventConsumed("invalid")
	if got := testutil.ToFloat64(EventsConsumed.WithLabelValues("invalid")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordAlertPublished(t *testing.T) {
	before := testutil.ToFloat64(AlertsPublished.WithLabelValues("rejected"))
	RecordAlertPublished("rejected")
	if got := testutil.ToFloat64(AlertsPublished.WithLabelValues("rejected")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"analyze", "POST", "/api/v1/users/{userID}/interactions", "200", 2 * time.Millisecond},
		{"policy", "GET", "/api/v1/users/{userID}/policy", "200", time.Millisecond},
		{"bad request", "POST", "/api/v1/users/{userID}/interactions", "400", time.Millisecond},
		{"not found", "GET", "/api/v1/users/{userID}/profile", "404", time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(c)
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

// TestTrackActiveRequest tests concurrent in-flight tracking
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}

func TestCircuitBreakerStateGauge(t *testing.T) {
	CircuitBreakerState.WithLabelValues("test-breaker").Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAnalysis("allow", nil, time.Microsecond)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}

	if n := testutil.CollectAndCount(AnalysesTotal); n == 0 {
		t.Error("expected at least one fraud_analyses_total series")
	}
}
