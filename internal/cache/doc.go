// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

/*
Package cache provides a generic, thread-safe LRU cache.

The recommendation engine keeps computed result lists in an LRU keyed by
(scorer, user, alpha, top_n). Stores and providers are immutable for the
life of an engine, so entries never go stale and the cache is bounded by
capacity only; an optional TTL is available for callers whose inputs change.

# Usage

	c := cache.NewLRU[string, []int](1024, 0)
	c.Add("hybrid|42|0.7|10", items)
	if items, ok := c.Get("hybrid|42|0.7|10"); ok {
	    return items
	}

# Complexity

Get, Add and Remove are O(1): a hashmap indexes nodes of a doubly-linked
list whose head is the most recently used entry.
*/
package cache
