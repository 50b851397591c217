package policy

import "time"

// mfu evicts the most-frequently-used entries first, keeping entries with
// the lowest access counts.
type mfu[K comparable] struct{}

// MFU evicts the most-frequently-accessed entries first: entries are kept
// fewest-AccessCount-first.
func MFU[K comparable]() Policy[K] {
	return mfu[K]{}
}

func (mfu[K]) Expired(entries []Entry[K], capacity int64, _ time.Time) []Entry[K] {
	return selectVictims(entries, capacity, func(a, b Entry[K]) bool {
		return a.CacheAccessCount() < b.CacheAccessCount()
	}, never[K])
}
