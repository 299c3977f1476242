// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

/*
Package cache provides a thread-safe generic LRU cache with TTL support.

The cache backs the preference profile store: profiles are rebuilt from
interaction history on miss, which walks badger, so hot users stay
resident and cold entries age out by recency and TTL.

# Overview

  - O(1) Get, Add, Remove via hashmap plus doubly-linked list
  - Capacity-bounded with least-recently-used eviction
  - Per-cache TTL; expired entries are dropped lazily on Get
  - Safe for concurrent use (sync.RWMutex)

# Usage

	c := cache.NewLRUCache[*profile.UserProfile](1000, 5*time.Minute)

	if p, ok := c.Get("user-42"); ok {
	    return p
	}
	p := buildProfile(ctx, "user-42")
	c.Add("user-42", p)

Invalidate after a write so the next read rebuilds:

	c.Remove("user-42")
*/
package cache
