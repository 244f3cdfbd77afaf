// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package cache

import (
	"sync"
	"time"
)

// lruEntry is a node in the LRU doubly-linked list.
type lruEntry[K comparable, V any] struct {
	key      K
	value    V
	prev     *lruEntry[K, V]
	next     *lruEntry[K, V]
	lastUsed time.Time
}

// EvictFunc is called for every entry removed by capacity or idle eviction.
// It is not called for explicit Remove or Clear.
type EvictFunc[K comparable, V any] func(key K, value V)

// LRU is a thread-safe least recently used map with optional capacity and
// idle expiry.
//
// Key features:
//   - O(1) Get, Add, Remove operations
//   - O(1) LRU eviction when capacity is reached
//   - Idle expiry swept explicitly via ExpireIdle (no background goroutine)
//   - Zero capacity and zero idle TTL mean unbounded
//
// The list uses sentinel head/tail nodes: head.next is the most recently used
// entry, tail.prev the least recently used.
type LRU[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	idleTTL  time.Duration
	onEvict  EvictFunc[K, V]
	now      func() time.Time

	items map[K]*lruEntry[K, V]
	head  *lruEntry[K, V]
	tail  *lruEntry[K, V]

	hits      int64
	misses    int64
	evictions int64
}

// LRUOption configures an LRU.
type LRUOption[K comparable, V any] func(*LRU[K, V])

// WithEvictFunc registers a callback for evicted entries.
// The callback runs while the LRU lock is held and must not call back into the LRU.
func WithEvictFunc[K comparable, V any](fn EvictFunc[K, V]) LRUOption[K, V] {
	return func(c *LRU[K, V]) {
		c.onEvict = fn
	}
}

// WithClock overrides the time source (tests).
func WithClock[K comparable, V any](now func() time.Time) LRUOption[K, V] {
	return func(c *LRU[K, V]) {
		if now != nil {
			c.now = now
		}
	}
}

// NewLRU creates an LRU. capacity <= 0 disables capacity eviction and
// idleTTL <= 0 disables idle expiry.
func NewLRU[K comparable, V any](capacity int, idleTTL time.Duration, opts ...LRUOption[K, V]) *LRU[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if idleTTL < 0 {
		idleTTL = 0
	}

	c := &LRU[K, V]{
		capacity: capacity,
		idleTTL:  idleTTL,
		now:      time.Now,
		items:    make(map[K]*lruEntry[K, V]),
		head:     &lruEntry[K, V]{},
		tail:     &lruEntry[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	entry.lastUsed = c.now()
	c.moveToFront(entry)
	c.hits++
	return entry.value, true
}

// Peek returns the value for key without touching recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Add inserts or replaces the value for key and marks it most recently used.
// If the LRU is over capacity afterwards, the least recently used entries are evicted.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.lastUsed = now
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry[K, V]{key: key, value: value, lastUsed: now}
	c.addToFront(entry)
	c.items[key] = entry

	if c.capacity == 0 {
		return
	}
	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key. Returns true if it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// Clear removes every entry without invoking the evict callback.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*lruEntry[K, V])
	c.head.next = c.tail
	c.tail.prev = c.head
}

// ExpireIdle evicts entries not used within the idle TTL and returns how many
// were removed. It is a no-op when idle expiry is disabled.
func (c *LRU[K, V]) ExpireIdle() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idleTTL == 0 {
		return 0
	}

	cutoff := c.now().Add(-c.idleTTL)
	removed := 0

	// Walk from tail (oldest); stop at the first entry still fresh since the
	// list is ordered by last use.
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if !entry.lastUsed.Before(cutoff) {
			break
		}
		c.evict(entry)
		removed++
		entry = prev
	}
	return removed
}

// Stats returns hit, miss and eviction counters plus the current size.
func (c *LRU[K, V]) Stats() (hits, misses, evictions int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU[K, V]) addToFront(entry *lruEntry[K, V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[K, V]) moveToFront(entry *lruEntry[K, V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[K, V]) removeEntry(entry *lruEntry[K, V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRU[K, V]) evict(entry *lruEntry[K, V]) {
	c.removeEntry(entry)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}

func (c *LRU[K, V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.evict(oldest)
}
