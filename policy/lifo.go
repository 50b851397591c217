package policy

import "time"

// lifo evicts the newest-created entries first, keeping the oldest.
type lifo[K comparable] struct{}

// LIFO evicts entries in reverse creation order, newest first: entries are
// kept oldest-CreatedAt-first.
func LIFO[K comparable]() Policy[K] {
	return lifo[K]{}
}

func (lifo[K]) Expired(entries []Entry[K], capacity int64, _ time.Time) []Entry[K] {
	return selectVictims(entries, capacity, func(a, b Entry[K]) bool {
		return a.CacheCreatedAt().Before(b.CacheCreatedAt())
	}, never[K])
}
