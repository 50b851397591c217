// Package promobserver is a diskcache.Observer that exports entry
// lifecycle counters and an occupancy gauge to Prometheus, following the
// promauto registration idiom used throughout the reference pool server's
// metrics collection.
package promobserver

import (
	"sync/atomic"

	"github.com/ambervale/diskcache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer exports counters for added/updated/removed events and a gauge
// tracking the running total of bytes added minus bytes removed.
//
// A single process must construct at most one Observer per distinct
// namespace, since metric names are registered globally with the default
// registerer.
type Observer[K comparable] struct {
	added       prometheus.Counter
	updated     prometheus.Counter
	removed     prometheus.Counter
	occupied    prometheus.Gauge
	occupiedVal atomic.Int64
}

// New registers and returns an Observer. namespace prefixes every metric
// name, e.g. "diskcache" produces "diskcache_entries_added_total".
func New[K comparable](namespace string) *Observer[K] {
	return &Observer[K]{
		added: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_added_total",
			Help:      "The total number of entries added to the cache.",
		}),
		updated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_updated_total",
			Help:      "The total number of entries replaced by a new value.",
		}),
		removed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_removed_total",
			Help:      "The total number of entries evicted or cleared.",
		}),
		occupied: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "occupied_bytes",
			Help:      "Bytes reported by entry-added events minus bytes reported by entry-removed events.",
		}),
	}
}

// OnEntryAdded increments the added counter and the occupancy gauge.
func (o *Observer[K]) OnEntryAdded(e diskcache.EntrySnapshot[K]) {
	o.added.Inc()
	o.occupied.Set(float64(o.occupiedVal.Add(e.Size)))
}

// OnEntryUpdated increments the updated counter. The occupancy gauge is
// left to OnEntryAdded/OnEntryRemoved accounting, since an update's net
// size delta is not observable from the snapshot alone.
func (o *Observer[K]) OnEntryUpdated(e diskcache.EntrySnapshot[K]) {
	o.updated.Inc()
}

// OnEntryRemoved increments the removed counter and decrements the
// occupancy gauge.
func (o *Observer[K]) OnEntryRemoved(e diskcache.EntrySnapshot[K]) {
	o.removed.Inc()
	o.occupied.Set(float64(o.occupiedVal.Add(-e.Size)))
}
