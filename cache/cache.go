// Package cache provides bounded translation caches with recency-based eviction.
package cache

import (
	"slices"
	"sort"
)

// MaxEntries is the number of translations kept at rest.
const MaxEntries = 100

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found.
	Get(key string) (string, bool)

	// Put stores a translation, evicting the oldest entries past capacity.
	Put(key string, translation string) error
}

// Entry is a cached translation with its write time in unix milliseconds.
// The timestamp only orders eviction; entries never expire.
type Entry struct {
	Translation string `json:"translation"`
	Timestamp   int64  `json:"timestamp"`
}

// Snapshotter is implemented by caches that can list their entries.
type Snapshotter interface {
	Snapshot() (map[string]Entry, error)
}

// Restorer is implemented by caches that accept entries with preset timestamps.
type Restorer interface {
	Restore(entries map[string]Entry) error
}

// evict keeps the capacity newest entries, sorted by timestamp descending.
// Equal timestamps fall back to key order.
func evict(entries map[string]Entry, capacity int) int {
	if len(entries) <= capacity {
		return 0
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slices.SortStableFunc(keys, func(a, b string) int {
		ta, tb := entries[a].Timestamp, entries[b].Timestamp
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})

	removed := 0
	for _, k := range keys[capacity:] {
		delete(entries, k)
		removed++
	}
	return removed
}

// nextStamp returns a timestamp strictly greater than last.
func nextStamp(now, last int64) int64 {
	if now <= last {
		return last + 1
	}
	return now
}
