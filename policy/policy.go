// Package policy provides pure victim-selection functions for diskcache.
//
// Every variant shares one shape: sort a snapshot of entries by a
// policy-specific key, walk in "desirable" order accumulating size, and
// mark everything past the point where the running total would exceed
// capacity as a victim. This generalizes the sort-and-walk pruning the
// teacher's disk cache used for its own size-based eviction.
package policy

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidTTL is returned by the TTL policy constructors when ttl <= 0.
var ErrInvalidTTL = errors.New("policy: ttl must be positive")

// Entry is the read-only view a Policy operates over. diskcache.EntrySnapshot
// satisfies this shape structurally; policies are defined against the
// interface so this package has no dependency on the root module.
type Entry[K comparable] interface {
	CacheKey() K
	CacheSize() int64
	CacheCreatedAt() time.Time
	CacheLastAccessed() time.Time
	CacheAccessCount() uint64
}

// Policy selects, from a snapshot of currently-indexed entries, the subset
// that should be evicted so that the remainder fits within capacity.
//
// Implementations are pure: no side effects, no reference to engine state.
// capacity must be strictly positive.
type Policy[K comparable] interface {
	Expired(entries []Entry[K], capacity int64, now time.Time) []Entry[K]
}

// selectVictims is the shared sort-and-walk core every variant uses. less
// reports whether a is more desirable to keep than b (i.e. should sort
// first); unconditional reports whether an entry is a victim regardless of
// capacity (the TTL variants use this; other variants pass a func that
// always returns false).
func selectVictims[K comparable](entries []Entry[K], capacity int64, less func(a, b Entry[K]) bool, unconditional func(Entry[K]) bool) []Entry[K] {
	ordered := make([]Entry[K], len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	var victims []Entry[K]
	var kept int64
	overflowed := false
	for _, e := range ordered {
		switch {
		case unconditional(e):
			victims = append(victims, e)
		case e.CacheSize() > capacity:
			// A single oversized entry is always a victim, regardless of
			// where it falls in sort order.
			victims = append(victims, e)
		case overflowed || kept+e.CacheSize() > capacity:
			// Once the running total would exceed capacity, every entry
			// after that point is a victim, even one that would still fit.
			overflowed = true
			victims = append(victims, e)
		default:
			kept += e.CacheSize()
		}
	}
	return victims
}

func never[K comparable](Entry[K]) bool { return false }
