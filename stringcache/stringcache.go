// Package stringcache is a thin convenience wrapper around diskcache for
// the common case of string keys, avoiding repeating the type parameter
// at every call site.
package stringcache

import (
	"time"

	"github.com/ambervale/diskcache"
	"github.com/ambervale/diskcache/policy"
)

// Cache is a diskcache.Cache keyed by string.
type Cache = diskcache.Cache[string]

// Option configures a Cache at construction.
type Option = diskcache.Option[string]

// New constructs a string-keyed Cache rooted at dir.
func New(dir string, opts ...Option) (*Cache, error) {
	return diskcache.New[string](dir, opts...)
}

// WithCapacity sets the maximum total size, in bytes, of all cached content.
func WithCapacity(n int64) Option {
	return diskcache.WithCapacity[string](n)
}

// WithPolicy sets the eviction policy.
func WithPolicy(p policy.Policy[string]) Option {
	return diskcache.WithPolicy[string](p)
}

// WithPollInterval sets the period between background eviction passes.
func WithPollInterval(d time.Duration) Option {
	return diskcache.WithPollInterval[string](d)
}

// WithObservers registers observers to be notified of entry events.
func WithObservers(obs ...diskcache.Observer[string]) Option {
	return diskcache.WithObservers[string](obs...)
}
