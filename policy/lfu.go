package policy

import "time"

// lfu evicts the least-frequently-used entries first, keeping entries with
// the highest access counts.
type lfu[K comparable] struct{}

// LFU evicts the least-frequently-accessed entries first: entries are kept
// most-AccessCount-first.
func LFU[K comparable]() Policy[K] {
	return lfu[K]{}
}

func (lfu[K]) Expired(entries []Entry[K], capacity int64, _ time.Time) []Entry[K] {
	return selectVictims(entries, capacity, func(a, b Entry[K]) bool {
		return a.CacheAccessCount() > b.CacheAccessCount()
	}, never[K])
}
