package diskcache

import "errors"

// Sentinel errors returned by Cache operations.
var (
	// ErrInvalidArgument is returned for a zero-value key, a nil source
	// stream, a non-positive capacity or poll interval, or a stream that
	// exceeds the configured capacity. A read error from the source stream
	// is returned as is, not as ErrInvalidArgument.
	ErrInvalidArgument = errors.New("diskcache: invalid argument")

	// ErrNotFound is returned by Get when the key is not present.
	ErrNotFound = errors.New("diskcache: not found")

	// ErrCorrupted is returned when an indexed key's content file is
	// missing or unreadable at retrieval time.
	ErrCorrupted = errors.New("diskcache: corrupted entry")

	// ErrRootMissing is returned at construction when root_dir does not exist.
	ErrRootMissing = errors.New("diskcache: root directory does not exist")

	// ErrDisposed is returned by operations on a disposed Cache.
	ErrDisposed = errors.New("diskcache: cache disposed")
)
