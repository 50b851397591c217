package policy

import "time"

// fifo evicts the oldest-created entries first, keeping the newest.
type fifo[K comparable] struct{}

// FIFO evicts entries in creation order, oldest first: entries are kept
// newest-CreatedAt-first.
func FIFO[K comparable]() Policy[K] {
	return fifo[K]{}
}

func (fifo[K]) Expired(entries []Entry[K], capacity int64, _ time.Time) []Entry[K] {
	return selectVictims(entries, capacity, func(a, b Entry[K]) bool {
		return a.CacheCreatedAt().After(b.CacheCreatedAt())
	}, never[K])
}
