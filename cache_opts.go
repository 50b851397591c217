package diskcache

import (
	"time"

	"github.com/ambervale/diskcache/policy"
)

const defaultPollInterval = time.Minute

// Option configures a Cache at construction.
type Option[K comparable] func(*config[K])

type config[K comparable] struct {
	capacity     int64
	policy       policy.Policy[K]
	pollInterval time.Duration
	observers    []Observer[K]
	equalFn      func(K, K) bool
	clock        func() time.Time
}

func newConfig[K comparable]() *config[K] {
	return &config[K]{
		pollInterval: defaultPollInterval,
		clock:        time.Now,
	}
}

// WithCapacity sets the maximum total size, in bytes, of all cached
// content. Required; capacity must be strictly positive.
func WithCapacity[K comparable](n int64) Option[K] {
	return func(c *config[K]) {
		c.capacity = n
	}
}

// WithPolicy sets the eviction policy, one of the eight variants in the
// policy subpackage. Optional; defaults to LRU when unset.
func WithPolicy[K comparable](p policy.Policy[K]) Option[K] {
	return func(c *config[K]) {
		c.policy = p
	}
}

// WithPollInterval sets the period between background eviction passes.
// Must be strictly positive. Defaults to one minute.
func WithPollInterval[K comparable](d time.Duration) Option[K] {
	return func(c *config[K]) {
		c.pollInterval = d
	}
}

// WithObservers registers observers to be notified of EntryAdded,
// EntryUpdated, and EntryRemoved events, in registration order.
func WithObservers[K comparable](obs ...Observer[K]) Option[K] {
	return func(c *config[K]) {
		c.observers = append(c.observers, obs...)
	}
}

// WithKeyEqualityFunc overrides the natural (==) equality used to compare
// keys. When set, the Index falls back to a linear scan instead of a map
// lookup, trading lookup speed for custom equality semantics; most callers
// should leave this unset.
func WithKeyEqualityFunc[K comparable](fn func(K, K) bool) Option[K] {
	return func(c *config[K]) {
		c.equalFn = fn
	}
}

// withClock overrides the cache's time source. Exposed for deterministic
// tests; production callers should not need it.
func withClock[K comparable](fn func() time.Time) Option[K] {
	return func(c *config[K]) {
		c.clock = fn
	}
}
