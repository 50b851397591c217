//go:build windows

package store

import (
	"errors"
	"os"
)

// isLockedErr reports whether err indicates another process holds an open
// handle on the file, preventing deletion. Windows refuses to unlink a
// file with an open handle; the eviction loop treats that as "skip, retry
// next pass" rather than a hard failure.
func isLockedErr(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
