// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](3, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok {
			t.Errorf("expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add("a", 10)
	if got, _ := c.Peek("a"); got != 10 {
		t.Errorf("Peek(a) after replace = %d, want 10", got)
	}
	if c.Len() != 3 {
		t.Errorf("replace should not grow the map, Len() = %d", c.Len())
	}
}

func TestLRU_CapacityEviction(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := NewLRU[string, int](3, 0, WithEvictFunc(func(key string, _ int) {
		evicted = append(evicted, key)
	}))

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch 'a' so 'b' becomes least recently used.
	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Peek("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Peek(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
}

func TestLRU_ZeroCapacityIsUnbounded(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, int](0, 0)
	for i := 0; i < 5000; i++ {
		c.Add(i, i)
	}
	if c.Len() != 5000 {
		t.Errorf("Len() = %d, want 5000", c.Len())
	}
}

func TestLRU_ExpireIdle(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var evicted []string
	c := NewLRU[string, int](0, time.Hour,
		WithClock[string, int](clock.Now),
		WithEvictFunc(func(key string, _ int) { evicted = append(evicted, key) }),
	)

	c.Add("old", 1)
	clock.Advance(45 * time.Minute)
	c.Add("fresh", 2)
	clock.Advance(30 * time.Minute)

	removed := c.ExpireIdle()
	if removed != 1 {
		t.Fatalf("ExpireIdle() = %d, want 1", removed)
	}
	if _, ok := c.Peek("old"); ok {
		t.Error("expected 'old' to be expired")
	}
	if _, ok := c.Peek("fresh"); !ok {
		t.Error("expected 'fresh' to remain")
	}
	if len(evicted) != 1 || evicted[0] != "old" {
		t.Errorf("evicted = %v, want [old]", evicted)
	}
}

func TestLRU_GetRefreshesIdleTimer(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewLRU[string, int](0, time.Hour, WithClock[string, int](clock.Now))

	c.Add("a", 1)
	clock.Advance(50 * time.Minute)
	c.Get("a")
	clock.Advance(50 * time.Minute)

	if removed := c.ExpireIdle(); removed != 0 {
		t.Errorf("ExpireIdle() = %d, want 0 after recent Get", removed)
	}
}

func TestLRU_ExpireIdleDisabled(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewLRU[string, int](0, 0, WithClock[string, int](clock.Now))
	c.Add("a", 1)
	clock.Advance(1000 * time.Hour)

	if removed := c.ExpireIdle(); removed != 0 {
		t.Errorf("ExpireIdle() = %d, want 0 with idle expiry disabled", removed)
	}
}

func TestLRU_RemoveAndClearSkipCallback(t *testing.T) {
	t.Parallel()

	calls := 0
	c := NewLRU[string, int](10, 0, WithEvictFunc(func(string, int) { calls++ }))
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) should report true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) should report false")
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if calls != 0 {
		t.Errorf("evict callback called %d times, want 0", calls)
	}
}

func TestLRU_KeysOrder(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](0, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a")

	got := fmt.Sprint(c.Keys())
	if got != "[a c b]" {
		t.Errorf("Keys() = %s, want [a c b]", got)
	}
}

func TestLRU_Stats(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](1, 0)
	c.Add("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Add("b", 2)

	hits, misses, evictions, size := c.Stats()
	if hits != 1 || misses != 1 || evictions != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d, %d), want (1, 1, 1, 1)", hits, misses, evictions, size)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, int](100, 0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(offset*1000+i, i)
				c.Get(offset*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", c.Len())
	}
}
