package policy

import "time"

// fixedTTL evicts entries whose total residency time exceeds ttl,
// regardless of capacity, and otherwise behaves like FIFO.
type fixedTTL[K comparable] struct {
	ttl time.Duration
}

// FixedTTL evicts any entry whose time since CreatedAt exceeds ttl,
// unconditionally; among the rest it behaves like [FIFO]. ttl must be > 0.
func FixedTTL[K comparable](ttl time.Duration) (Policy[K], error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return fixedTTL[K]{ttl: ttl}, nil
}

func (p fixedTTL[K]) Expired(entries []Entry[K], capacity int64, now time.Time) []Entry[K] {
	return selectVictims(entries, capacity, func(a, b Entry[K]) bool {
		return a.CacheCreatedAt().After(b.CacheCreatedAt())
	}, func(e Entry[K]) bool {
		return now.Sub(e.CacheCreatedAt()) > p.ttl
	})
}
