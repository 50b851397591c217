// Package logobserver is a diskcache.Observer that writes structured log
// entries for every entry event, using the same WithFields idiom as the
// rest of the reference pool's logrus usage.
package logobserver

import (
	"github.com/ambervale/diskcache"
	log "github.com/sirupsen/logrus"
)

// Observer logs entry lifecycle events: additions and updates at info
// level, removals at debug level.
type Observer[K comparable] struct {
	logger *log.Entry
}

// New returns an Observer that logs through logger, or through the
// logrus standard logger if logger is nil.
func New[K comparable](logger *log.Logger) *Observer[K] {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Observer[K]{
		logger: logger.WithFields(log.Fields{
			"package": "logobserver",
			"struct":  "Observer",
		}),
	}
}

func (o *Observer[K]) fields(e diskcache.EntrySnapshot[K]) log.Fields {
	return log.Fields{
		"key":          e.Key,
		"size":         e.Size,
		"accessCount":  e.AccessCount,
		"lastAccessed": e.LastAccessed,
	}
}

// OnEntryAdded logs at info level.
func (o *Observer[K]) OnEntryAdded(e diskcache.EntrySnapshot[K]) {
	o.logger.WithFields(o.fields(e)).Info("entry added")
}

// OnEntryUpdated logs at info level.
func (o *Observer[K]) OnEntryUpdated(e diskcache.EntrySnapshot[K]) {
	o.logger.WithFields(o.fields(e)).Info("entry updated")
}

// OnEntryRemoved logs at debug level, since removals are frequent under
// normal eviction pressure and rarely actionable on their own.
func (o *Observer[K]) OnEntryRemoved(e diskcache.EntrySnapshot[K]) {
	o.logger.WithFields(o.fields(e)).Debug("entry removed")
}
