package policy

import (
	"testing"
	"time"
)

// testEntry is a minimal Entry[string] implementation for table-driven
// policy tests.
type testEntry struct {
	key          string
	size         int64
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  uint64
}

func (e testEntry) CacheKey() string            { return e.key }
func (e testEntry) CacheSize() int64             { return e.size }
func (e testEntry) CacheCreatedAt() time.Time    { return e.createdAt }
func (e testEntry) CacheLastAccessed() time.Time { return e.lastAccessed }
func (e testEntry) CacheAccessCount() uint64     { return e.accessCount }

func victimKeys(victims []Entry[string]) map[string]bool {
	out := make(map[string]bool, len(victims))
	for _, v := range victims {
		out[v.CacheKey()] = true
	}
	return out
}

func TestLFUVictimSelection(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 5, createdAt: base, lastAccessed: base, accessCount: 1},
		testEntry{key: "b", size: 5, createdAt: base, lastAccessed: base, accessCount: 5},
		testEntry{key: "c", size: 5, createdAt: base, lastAccessed: base, accessCount: 3},
	}

	victims := victimKeys(LFU[string]().Expired(entries, 12, base))
	if len(victims) != 1 || !victims["a"] {
		t.Fatalf("Expired() victims = %v, want {a}", victims)
	}
}

func TestFIFOVictimSelection(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 5, createdAt: base},
		testEntry{key: "b", size: 5, createdAt: base.Add(24 * time.Hour)},
		testEntry{key: "c", size: 5, createdAt: base.Add(48 * time.Hour)},
	}

	victims := victimKeys(FIFO[string]().Expired(entries, 12, base))
	if len(victims) != 1 || !victims["a"] {
		t.Fatalf("Expired() victims = %v, want {a}", victims)
	}
}

func TestLIFOVictimSelection(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 5, createdAt: base},
		testEntry{key: "b", size: 5, createdAt: base.Add(24 * time.Hour)},
		testEntry{key: "c", size: 5, createdAt: base.Add(48 * time.Hour)},
	}

	victims := victimKeys(LIFO[string]().Expired(entries, 12, base))
	if len(victims) != 1 || !victims["c"] {
		t.Fatalf("Expired() victims = %v, want {c}", victims)
	}
}

func TestLRUAndMRUAreMirrored(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "oldest", size: 5, lastAccessed: base},
		testEntry{key: "middle", size: 5, lastAccessed: base.Add(time.Minute)},
		testEntry{key: "newest", size: 5, lastAccessed: base.Add(2 * time.Minute)},
	}

	lruVictims := victimKeys(LRU[string]().Expired(entries, 12, base))
	if len(lruVictims) != 1 || !lruVictims["oldest"] {
		t.Fatalf("LRU Expired() victims = %v, want {oldest}", lruVictims)
	}

	mruVictims := victimKeys(MRU[string]().Expired(entries, 12, base))
	if len(mruVictims) != 1 || !mruVictims["newest"] {
		t.Fatalf("MRU Expired() victims = %v, want {newest}", mruVictims)
	}
}

func TestMFUIsMirrorOfLFU(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 5, accessCount: 1},
		testEntry{key: "b", size: 5, accessCount: 5},
		testEntry{key: "c", size: 5, accessCount: 3},
	}

	victims := victimKeys(MFU[string]().Expired(entries, 12, base))
	if len(victims) != 1 || !victims["b"] {
		t.Fatalf("Expired() victims = %v, want {b}", victims)
	}
}

func TestOversizedEntryAlwaysEvicted(t *testing.T) {
	t.Parallel()

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "huge", size: 100, createdAt: base, lastAccessed: base},
	}

	victims := victimKeys(LRU[string]().Expired(entries, 10, base))
	if len(victims) != 1 || !victims["huge"] {
		t.Fatalf("Expired() victims = %v, want {huge}", victims)
	}
}

func TestSlidingTTLExpiresRegardlessOfCapacity(t *testing.T) {
	t.Parallel()

	p, err := SlidingTTL[string](time.Millisecond)
	if err != nil {
		t.Fatalf("SlidingTTL() error = %v", err)
	}

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 1, lastAccessed: base},
	}

	victims := victimKeys(p.Expired(entries, 1<<30, base.Add(time.Second)))
	if len(victims) != 1 || !victims["a"] {
		t.Fatalf("Expired() victims = %v, want {a}", victims)
	}
}

func TestFixedTTLExpiresRegardlessOfCapacity(t *testing.T) {
	t.Parallel()

	p, err := FixedTTL[string](time.Millisecond)
	if err != nil {
		t.Fatalf("FixedTTL() error = %v", err)
	}

	base := time.Now()
	entries := []Entry[string]{
		testEntry{key: "a", size: 1, createdAt: base},
	}

	victims := victimKeys(p.Expired(entries, 1<<30, base.Add(time.Second)))
	if len(victims) != 1 || !victims["a"] {
		t.Fatalf("Expired() victims = %v, want {a}", victims)
	}
}

func TestTTLConstructorsRejectNonPositive(t *testing.T) {
	t.Parallel()

	if _, err := SlidingTTL[string](0); err != ErrInvalidTTL {
		t.Fatalf("SlidingTTL(0) error = %v, want ErrInvalidTTL", err)
	}
	if _, err := FixedTTL[string](-1); err != ErrInvalidTTL {
		t.Fatalf("FixedTTL(-1) error = %v, want ErrInvalidTTL", err)
	}
}
