package diskcache

import (
	"sync/atomic"
	"time"
)

// Entry is the metadata record for one cached value.
//
// Key, Size, and CreatedAt are immutable once set. LastAccessed and
// AccessCount advance on every successful read; refresh is the only
// mutator and is safe for concurrent callers. A re-set replaces the Entry
// with a new one rather than mutating it.
type Entry[K comparable] struct {
	key         K
	size        int64
	createdAt   time.Time
	lastAccess  atomic.Int64 // unix nanoseconds
	accessCount atomic.Uint64
}

// newEntry constructs an Entry for key with the given size, using now as
// both the creation and initial last-accessed instant. size must be > 0.
func newEntry[K comparable](key K, size int64, now time.Time) (*Entry[K], error) {
	if size <= 0 {
		return nil, ErrInvalidArgument
	}
	e := &Entry[K]{
		key:       key,
		size:      size,
		createdAt: now,
	}
	e.lastAccess.Store(now.UnixNano())
	return e, nil
}

// Key returns the entry's key.
func (e *Entry[K]) Key() K { return e.key }

// Size returns the byte length of the stored content.
func (e *Entry[K]) Size() int64 { return e.size }

// CreatedAt returns the wall-clock instant the entry was created.
func (e *Entry[K]) CreatedAt() time.Time { return e.createdAt }

// LastAccessed returns the wall-clock instant of the most recent read or
// re-set. It is stored as wall-clock unix nanoseconds, not a monotonic
// reading, so a backward wall-clock step can place it before CreatedAt.
func (e *Entry[K]) LastAccessed() time.Time {
	return time.Unix(0, e.lastAccess.Load())
}

// AccessCount returns the number of successful reads since creation.
func (e *Entry[K]) AccessCount() uint64 { return e.accessCount.Load() }

// refresh atomically increments AccessCount and advances LastAccessed to now.
func (e *Entry[K]) refresh(now time.Time) {
	e.accessCount.Add(1)
	e.lastAccess.Store(now.UnixNano())
}

// EntrySnapshot is an immutable copy of an Entry's fields at a moment in
// time, handed to Policy and to Observer callbacks so neither can observe
// (or cause) further mutation.
type EntrySnapshot[K comparable] struct {
	Key          K
	Size         int64
	CreatedAt    time.Time
	LastAccessed time.Time
	AccessCount  uint64
}

// Snapshot returns an immutable copy of the entry's current fields.
func (e *Entry[K]) Snapshot() EntrySnapshot[K] {
	return EntrySnapshot[K]{
		Key:          e.key,
		Size:         e.size,
		CreatedAt:    e.createdAt,
		LastAccessed: e.LastAccessed(),
		AccessCount:  e.AccessCount(),
	}
}

// The CacheXxx methods satisfy policy.Entry[K] structurally, so
// EntrySnapshot can be passed directly to a Policy without this package
// importing policy (which would create an import cycle the other way).
func (s EntrySnapshot[K]) CacheKey() K                 { return s.Key }
func (s EntrySnapshot[K]) CacheSize() int64             { return s.Size }
func (s EntrySnapshot[K]) CacheCreatedAt() time.Time    { return s.CreatedAt }
func (s EntrySnapshot[K]) CacheLastAccessed() time.Time { return s.LastAccessed }
func (s EntrySnapshot[K]) CacheAccessCount() uint64     { return s.AccessCount }
