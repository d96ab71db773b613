// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package cache provides a bounded, TTL-aware LRU set of string keys.
//
// The event consumer uses it to remember recently processed event IDs so a
// redelivered message is acknowledged without being handled twice:
//
//	seen := cache.NewLRUCache(10000, 10*time.Minute)
//	if seen.Contains(ev.EventID) {
//	    return nil
//	}
//	// handle
//	seen.Add(ev.EventID, time.Now())
//
// All methods are safe for concurrent use. Expired entries are removed
// lazily on access, or in bulk by CleanupExpired.
package cache
