// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"time"

	"github.com/tomtom215/fraudguard/internal/cache"
)

// Window caps. Sample windows are FIFO; the oldest sample is dropped first.
const (
	MaxSampleWindow    = 50
	MaxBehaviorHistory = 100
)

// BehaviorRecord is one raw event kept for audit. It is never used for scoring.
type BehaviorRecord struct {
	Event     InteractionEvent `json:"interaction_data"`
	Timestamp time.Time        `json:"timestamp"`
}

// Profile holds the rolling behavioral statistics of one user.
type Profile struct {
	UserID              string           `json:"user_id"`
	SwipeTimings        []float64        `json:"swipe_timings"`
	TaskCompletionTimes []float64        `json:"task_completion_times"`
	ConsensusMatches    []float64        `json:"consensus_matches"`
	TotalTasks          int64            `json:"total_tasks"`
	FlaggedInteractions int64            `json:"flagged_interactions"`
	BehaviorHistory     []BehaviorRecord `json:"behavior_history"`
	CreatedAt           time.Time        `json:"created_at"`
	LastSeen            time.Time        `json:"last_seen"`
}

// newProfile creates an empty profile.
func newProfile(userID string, now time.Time) *Profile {
	return &Profile{
		UserID:              userID,
		SwipeTimings:        make([]float64, 0, MaxSampleWindow),
		TaskCompletionTimes: make([]float64, 0, MaxSampleWindow),
		ConsensusMatches:    make([]float64, 0, MaxSampleWindow),
		BehaviorHistory:     make([]BehaviorRecord, 0, MaxBehaviorHistory),
		CreatedAt:           now,
		LastSeen:            now,
	}
}

// Record appends the event's numeric fields to the sample windows and the raw
// event to the behavior history. Values are stored as given, without range checks.
func (p *Profile) Record(event *InteractionEvent, now time.Time) {
	if event.SwipeTiming != nil {
		p.SwipeTimings = pushBounded(p.SwipeTimings, *event.SwipeTiming, MaxSampleWindow)
	}
	if event.TaskCompletionTime != nil {
		p.TaskCompletionTimes = pushBounded(p.TaskCompletionTimes, *event.TaskCompletionTime, MaxSampleWindow)
	}
	if event.ConsensusMatch != nil {
		p.ConsensusMatches = pushBounded(p.ConsensusMatches, *event.ConsensusMatch, MaxSampleWindow)
	}

	p.TotalTasks++
	p.LastSeen = now

	stored := event.clone()
	if stored.UserID == "" {
		stored.UserID = p.UserID
	}
	p.BehaviorHistory = append(p.BehaviorHistory, BehaviorRecord{
		Event:     stored,
		Timestamp: now,
	})
	if over := len(p.BehaviorHistory) - MaxBehaviorHistory; over > 0 {
		n := copy(p.BehaviorHistory, p.BehaviorHistory[over:])
		clear(p.BehaviorHistory[n:])
		p.BehaviorHistory = p.BehaviorHistory[:n]
	}
}

// Snapshot returns a deep copy safe to hand outside the engine.
func (p *Profile) Snapshot() Profile {
	cp := *p
	cp.SwipeTimings = append([]float64(nil), p.SwipeTimings...)
	cp.TaskCompletionTimes = append([]float64(nil), p.TaskCompletionTimes...)
	cp.ConsensusMatches = append([]float64(nil), p.ConsensusMatches...)
	cp.BehaviorHistory = make([]BehaviorRecord, len(p.BehaviorHistory))
	for i, r := range p.BehaviorHistory {
		cp.BehaviorHistory[i] = BehaviorRecord{Event: r.Event.clone(), Timestamp: r.Timestamp}
	}
	return cp
}

// pushBounded appends v and drops from the front while len exceeds limit.
// The backing array is reused so a window never grows past limit+1 elements.
func pushBounded(s []float64, v float64, limit int) []float64 {
	s = append(s, v)
	if over := len(s) - limit; over > 0 {
		n := copy(s, s[over:])
		s = s[:n]
	}
	return s
}

// clone copies the event including its optional fields and extras.
func (e *InteractionEvent) clone() InteractionEvent {
	cp := InteractionEvent{UserID: e.UserID}
	cp.SwipeTiming = cloneNum(e.SwipeTiming)
	cp.TaskCompletionTime = cloneNum(e.TaskCompletionTime)
	cp.TaskTextLength = cloneNum(e.TaskTextLength)
	cp.ConsensusMatch = cloneNum(e.ConsensusMatch)
	if len(e.Extra) > 0 {
		cp.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp.Extra[k] = v
		}
	}
	return cp
}

func cloneNum(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Num(*v)
}

// ProfileStore maps user IDs to profiles. With both bounds at zero it grows
// with the number of distinct users, like the reference engine.
type ProfileStore struct {
	profiles *cache.LRU[string, *Profile]
	now      func() time.Time
}

// ProfileStoreConfig bounds the store.
type ProfileStoreConfig struct {
	// MaxProfiles evicts the least recently seen user beyond this count (0 = unbounded).
	MaxProfiles int

	// IdleTTL evicts users not seen within this duration on ExpireIdle (0 = never).
	IdleTTL time.Duration

	// OnEvict is called with the user ID of every evicted profile.
	OnEvict func(userID string)

	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewProfileStore creates a profile store.
func NewProfileStore(cfg ProfileStoreConfig) *ProfileStore {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	opts := []cache.LRUOption[string, *Profile]{
		cache.WithClock[string, *Profile](now),
	}
	if cfg.OnEvict != nil {
		onEvict := cfg.OnEvict
		opts = append(opts, cache.WithEvictFunc(func(userID string, _ *Profile) {
			onEvict(userID)
		}))
	}

	return &ProfileStore{
		profiles: cache.NewLRU[string, *Profile](cfg.MaxProfiles, cfg.IdleTTL, opts...),
		now:      now,
	}
}

// GetOrCreate returns the user's profile, creating an empty one on first use.
func (s *ProfileStore) GetOrCreate(userID string) *Profile {
	if p, ok := s.profiles.Get(userID); ok {
		return p
	}
	p := newProfile(userID, s.now())
	s.profiles.Add(userID, p)
	return p
}

// Lookup returns the user's profile without creating or touching it.
func (s *ProfileStore) Lookup(userID string) (*Profile, bool) {
	return s.profiles.Peek(userID)
}

// Record applies the event to the profile.
func (s *ProfileStore) Record(p *Profile, event *InteractionEvent) {
	p.Record(event, s.now())
}

// Len returns the number of profiled users.
func (s *ProfileStore) Len() int {
	return s.profiles.Len()
}

// ExpireIdle evicts idle profiles and returns how many were removed.
func (s *ProfileStore) ExpireIdle() int {
	return s.profiles.ExpireIdle()
}
