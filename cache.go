package diskcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ambervale/diskcache/internal/index"
	"github.com/ambervale/diskcache/internal/store"
	"github.com/ambervale/diskcache/policy"
)

const (
	ingestBufferSize = 4 << 10 // 4 KiB, per the streaming ingest contract
	clearRetryDelay  = 100 * time.Millisecond
)

// Cache is a disk-backed, content-addressed cache of byte streams keyed
// by K, with eviction driven by a configured Policy.
//
// All methods are safe for concurrent use. A Cache must be disposed with
// Dispose when no longer needed, to stop its background eviction loop and
// release its on-disk content.
type Cache[K comparable] struct {
	root         string
	store        *store.Store
	idx          *index.Index[K, *Entry[K]]
	policy       policy.Policy[K]
	capacity     int64
	pollInterval time.Duration
	observer     Observer[K]
	equalFn      func(K, K) bool
	clock        func() time.Time

	// notifyMu serializes every "mutate the Index, then notify observers"
	// critical section (ingest's Put, evictOnce's and Clear's Remove), so
	// the order observers see EntryAdded/EntryUpdated/EntryRemoved events
	// always matches the linearization order of the Index mutations that
	// triggered them, even though idx itself unlocks before the matching
	// observer callback runs.
	notifyMu sync.Mutex

	cancel    context.CancelFunc
	loop      *errgroup.Group
	disposed  atomic.Bool
	closeOnce sync.Once
}

// New constructs a Cache rooted at dir. dir must already exist and be
// writable; New fails with ErrRootMissing if dir does not exist or is not a
// directory (writability is not checked up front). At construction, the
// root directory is purged of all subdirectories and files, since the
// cache has no durable manifest to reconcile them against (see package
// doc).
//
// WithCapacity is effectively required: capacity defaults to 0 (invalid).
// WithPolicy is optional: an unset policy defaults to LRU.
func New[K comparable](dir string, opts ...Option[K]) (*Cache[K], error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, ErrRootMissing
	}

	cfg := newConfig[K]()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	if cfg.pollInterval <= 0 {
		return nil, ErrInvalidArgument
	}
	if cfg.policy == nil {
		cfg.policy = policy.LRU[K]()
	}

	if err := purgeDir(dir); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	loop, loopCtx := errgroup.WithContext(ctx)

	c := &Cache[K]{
		root:         dir,
		store:        store.New(dir),
		idx:          index.New[K, *Entry[K]](),
		policy:       cfg.policy,
		capacity:     cfg.capacity,
		pollInterval: cfg.pollInterval,
		observer:     multiObserver[K](cfg.observers),
		equalFn:      cfg.equalFn,
		clock:        cfg.clock,
		cancel:       cancel,
		loop:         loop,
	}

	loop.Go(func() error {
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return nil
			case <-ticker.C:
				c.evictOnce()
			}
		}
	})

	return c, nil
}

// purgeDir removes every entry directly under dir, leaving dir itself in
// place.
func purgeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Stats describes the cache's current occupancy.
type Stats struct {
	Count      int
	TotalBytes int64
}

// Stats returns the current entry count and total bytes cached.
func (c *Cache[K]) Stats() Stats {
	entries := c.idx.Snapshot()
	stats := Stats{Count: len(entries)}
	for _, e := range entries {
		stats.TotalBytes += e.Size()
	}
	return stats
}

// resolveKey finds the map key that should be used to address key,
// honoring a custom key-equality function if one was configured. Absent a
// custom equality function this is the identity: Go's map already uses ==.
func (c *Cache[K]) resolveKey(key K) (K, bool) {
	if c.equalFn == nil {
		return key, c.idx.Contains(key)
	}
	found, _, ok := c.idx.Find(func(k K) bool { return c.equalFn(k, key) })
	if !ok {
		return key, false
	}
	return found, true
}

// Contains reports whether key is present.
func (c *Cache[K]) Contains(key K) (bool, error) {
	return c.ContainsContext(context.Background(), key)
}

// ContainsContext is the context-aware counterpart of Contains.
func (c *Cache[K]) ContainsContext(ctx context.Context, key K) (bool, error) {
	if c.disposed.Load() {
		return false, ErrDisposed
	}
	if isZero(key) {
		return false, ErrInvalidArgument
	}
	_, found := c.resolveKey(key)
	return found, nil
}

// Get returns a read-only stream of the value stored under key.
//
// It fails with ErrNotFound if key is absent, or ErrCorrupted if key is
// indexed but its content file is missing or unreadable. The caller owns
// the returned stream and must Close it.
func (c *Cache[K]) Get(key K) (io.ReadCloser, error) {
	return c.GetContext(context.Background(), key)
}

// GetContext is the context-aware counterpart of Get.
func (c *Cache[K]) GetContext(ctx context.Context, key K) (io.ReadCloser, error) {
	found, stream, err := c.TryGetContext(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return stream, nil
}

// TryGet is Get without an error for the absent case: it returns
// (false, nil, nil) if key is not present.
func (c *Cache[K]) TryGet(key K) (bool, io.ReadCloser, error) {
	return c.TryGetContext(context.Background(), key)
}

// TryGetContext is the context-aware counterpart of TryGet.
func (c *Cache[K]) TryGetContext(ctx context.Context, key K) (bool, io.ReadCloser, error) {
	if c.disposed.Load() {
		return false, nil, ErrDisposed
	}
	if isZero(key) {
		return false, nil, ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	resolved, found := c.resolveKey(key)
	if !found {
		return false, nil, nil
	}
	rec, ok := c.idx.Get(resolved)
	if !ok {
		return false, nil, nil
	}

	size, exists, err := store.Stat(rec.Path)
	if err != nil {
		return false, nil, err
	}
	if !exists || size != rec.Value.Size() {
		return false, nil, ErrCorrupted
	}

	f, err := store.Open(rec.Path)
	if err != nil {
		return false, nil, ErrCorrupted
	}
	rec.Value.refresh(c.clock())
	return true, f, nil
}

// Set streams src into the cache under key, replacing any prior value.
//
// It fails with ErrInvalidArgument if key is the zero value, src is nil,
// or src's byte count exceeds the configured capacity.
func (c *Cache[K]) Set(key K, src io.Reader) error {
	return c.SetContext(context.Background(), key, src)
}

// SetContext is the context-aware counterpart of Set.
func (c *Cache[K]) SetContext(ctx context.Context, key K, src io.Reader) error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if isZero(key) || src == nil {
		return ErrInvalidArgument
	}

	overflowed, err := c.ingest(ctx, key, src)
	if err != nil {
		return err
	}
	if overflowed {
		return fmt.Errorf("%w: exceeds capacity", ErrInvalidArgument)
	}
	return nil
}

// TrySet is Set without an error for the quota-overflow case: it returns
// false instead of failing when src exceeds capacity.
func (c *Cache[K]) TrySet(key K, src io.Reader) (bool, error) {
	return c.TrySetContext(context.Background(), key, src)
}

// TrySetContext is the context-aware counterpart of TrySet.
func (c *Cache[K]) TrySetContext(ctx context.Context, key K, src io.Reader) (bool, error) {
	if c.disposed.Load() {
		return false, ErrDisposed
	}
	if isZero(key) || src == nil {
		return false, ErrInvalidArgument
	}

	overflowed, err := c.ingest(ctx, key, src)
	if err != nil {
		return false, err
	}
	return !overflowed, nil
}

// ingest runs the streaming read/hash/write/quota-guard pass described in
// the engine's design: a single pass over src that simultaneously feeds a
// SHA-256 digest and a scratch file, aborting if the byte count exceeds
// capacity. Following the teacher's own streaming pipeline
// (internal/write.File), the hash is fed as the side effect of an
// io.TeeReader rather than a dedicated wrapper type: each chunk read from
// src is written to the digest as it is read, then written on to the
// scratch file by this loop.
func (c *Cache[K]) ingest(ctx context.Context, key K, src io.Reader) (overflowed bool, err error) {
	scratch, err := c.store.ScratchFile()
	if err != nil {
		return false, err
	}

	hasher := sha256.New()
	tee := io.TeeReader(src, hasher)
	buf := make([]byte, ingestBufferSize)
	var n int64

	for {
		if err := ctx.Err(); err != nil {
			_ = store.DiscardScratch(scratch)
			return false, err
		}

		nr, rerr := tee.Read(buf)
		if nr > 0 {
			if _, werr := scratch.Write(buf[:nr]); werr != nil {
				_ = store.DiscardScratch(scratch)
				return false, werr
			}
			n += int64(nr)
			if n > c.capacity {
				_ = store.DiscardScratch(scratch)
				return true, nil
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			_ = store.DiscardScratch(scratch)
			return false, rerr
		}
	}

	digest := hex.EncodeToString(hasher.Sum(nil))
	path, err := c.store.Commit(scratch, digest)
	if err != nil {
		return false, err
	}

	// Use the map key the Index will actually store this under, so a
	// later eviction pass (which looks keys up by CacheKey()) can find it
	// even under a custom key-equality function where resolved != key.
	resolved, _ := c.resolveKey(key)
	entry, err := newEntry[K](resolved, n, c.clock())
	if err != nil {
		_, _ = store.Remove(path)
		return false, err
	}

	// Put and its observer notification must appear atomic to any other
	// goroutine calling ingest/evictOnce/Clear, or two racing mutations
	// could linearize in one order while their unlocked notifications fire
	// in the other.
	c.notifyMu.Lock()
	prior, existed := c.idx.Put(resolved, entry, path)
	snapshot := entry.Snapshot()
	if existed {
		c.observer.OnEntryUpdated(snapshot)
	} else {
		c.observer.OnEntryAdded(snapshot)
	}
	c.notifyMu.Unlock()

	if existed && prior.Path != "" && prior.Path != path {
		_, _ = store.Remove(prior.Path)
	}

	c.evictOnce()
	return false, nil
}

// evictOnce runs one eviction pass: snapshot the Index, ask the Policy for
// victims, and delete them. File-lock conflicts are absorbed and retried
// on the next pass.
func (c *Cache[K]) evictOnce() {
	entries := c.idx.Snapshot()
	if len(entries) == 0 {
		return
	}
	view := make([]policy.Entry[K], len(entries))
	for i, e := range entries {
		view[i] = e.Snapshot()
	}

	victims := c.policy.Expired(view, c.capacity, c.clock())
	for _, v := range victims {
		key := v.CacheKey()
		rec, ok := c.idx.Get(key)
		if !ok {
			continue
		}
		removed, err := store.Remove(rec.Path)
		if err != nil || !removed {
			continue // locked or unexpected error: leave in place, retry next pass
		}

		c.notifyMu.Lock()
		_, ok = c.idx.Remove(key)
		if ok {
			c.observer.OnEntryRemoved(rec.Value.Snapshot())
		}
		c.notifyMu.Unlock()
	}
}

// Clear removes every cached entry and its content file. It retries files
// that are locked by an external reader until they clear, sleeping a
// small fixed quantum between passes.
func (c *Cache[K]) Clear() error {
	return c.ClearContext(context.Background())
}

// ClearContext is the context-aware counterpart of Clear.
func (c *Cache[K]) ClearContext(ctx context.Context) error {
	if c.disposed.Load() {
		return ErrDisposed
	}

	for c.idx.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		progressed := false
		for _, e := range c.idx.Snapshot() {
			rec, ok := c.idx.Get(e.Key())
			if !ok {
				continue
			}
			removed, err := store.Remove(rec.Path)
			if err != nil || !removed {
				continue
			}

			c.notifyMu.Lock()
			_, ok = c.idx.Remove(e.Key())
			if ok {
				progressed = true
				c.observer.OnEntryRemoved(rec.Value.Snapshot())
			}
			c.notifyMu.Unlock()
		}
		if !progressed && c.idx.Len() > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(clearRetryDelay):
			}
		}
	}

	return purgeDir(c.root)
}

// Dispose stops the background eviction loop and calls Clear. Operations
// on a disposed Cache return ErrDisposed.
func (c *Cache[K]) Dispose() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.loop.Wait()
		err = c.Clear()
		c.disposed.Store(true)
	})
	return err
}

func isZero[K comparable](k K) bool {
	var zero K
	return k == zero
}
