// Package diskcache provides a disk-backed, content-addressed cache for
// opaque byte streams, with pluggable eviction policies.
//
// Callers associate keys with byte streams via [Cache.Set]; the cache
// streams the bytes to disk while computing their SHA-256 digest, and
// later retrievals are served from the content-addressed file the digest
// names. A background loop periodically asks the configured [policy.Policy] which
// entries to evict, bounding total on-disk size to a configured capacity.
//
// # Quick Start
//
//	c, err := diskcache.New[string]("/var/cache/blobs",
//	    diskcache.WithCapacity[string](1<<30),
//	    diskcache.WithPolicy[string](policy.LRU[string]()),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Dispose()
//
//	if err := c.Set("artifact-1", bytes.NewReader(payload)); err != nil {
//	    return err
//	}
//	r, err := c.Get("artifact-1")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// # Durability
//
// The cache treats its root directory as disposable: construction purges
// it, and nothing survives a process restart. See [New] for details.
//
// # Observers
//
// [Observer] implementations are notified of EntryAdded, EntryUpdated, and
// EntryRemoved events. The observer/logobserver and observer/promobserver
// subpackages provide ready-made logging and Prometheus-metrics observers;
// neither is required — the engine has no opinion on what, if anything,
// consumes its events.
package diskcache
