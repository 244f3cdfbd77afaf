// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package cache provides in-memory data structures used to bound engine state.

# Overview

The package currently provides a generic LRU map:
  - O(1) Get, Add, Remove
  - Optional capacity bound with least-recently-used eviction
  - Optional idle expiry, swept explicitly with ExpireIdle
  - Eviction callback so owners can release related state

The detection engine stores one behavior profile per user in an LRU. With
capacity and idle TTL both zero the map is unbounded, which is the default.

# Usage Example

	profiles := cache.NewLRU[string, *Profile](10000, 24*time.Hour,
	    cache.WithEvictFunc(func(userID string, _ *Profile) {
	        delete(flagged, userID)
	    }),
	)
	profiles.Add("user-1", p)
	removed := profiles.ExpireIdle()

# Thread Safety

All methods are safe for concurrent use. Eviction callbacks run with the
internal lock held.
*/
package cache
