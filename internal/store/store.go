// Package store implements the on-disk, content-addressed file layout
// used by the cache engine: two-level hex fan-out by digest, atomic
// scratch-to-final placement, and best-effort delete-skip-on-lock.
package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	digestLen  = 64 // hex characters in a SHA-256 digest
	shardLevel = 2  // hex characters per fan-out directory level
	dirPerm    = 0o700
	filePerm   = 0o600
)

// ErrInvalidDigest is returned when a candidate digest is not exactly 64
// lowercase hex characters.
var ErrInvalidDigest = errors.New("store: digest must be 64 lowercase hex characters")

// Store derives content-addressed paths under root and manages scratch
// files used during ingest.
type Store struct {
	root string
}

// New returns a Store rooted at dir. dir must already exist; New does not
// create it (directory creation is the caller's responsibility, per the
// cache engine's construction contract).
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Path derives the absolute content path for digest: root/H[0:2]/H[2:4]/H.
func (s *Store) Path(digest string) (string, error) {
	if !isValidDigest(digest) {
		return "", ErrInvalidDigest
	}
	return filepath.Join(s.root, digest[:shardLevel], digest[shardLevel:2*shardLevel], digest), nil
}

func isValidDigest(digest string) bool {
	if len(digest) != digestLen {
		return false
	}
	for _, c := range digest {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// ScratchFile opens a new, uniquely-named scratch file at root/<uuid> for
// writing, per the engine's ingest protocol.
func (s *Store) ScratchFile() (*os.File, error) {
	path := filepath.Join(s.root, uuid.NewString())
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
}

// DiscardScratch closes (if open) and removes a scratch file. Used when
// ingest aborts due to quota overflow, a read error, or cancellation.
func DiscardScratch(f *os.File) error {
	name := f.Name()
	closeErr := f.Close()
	removeErr := os.Remove(name)
	if closeErr != nil {
		return closeErr
	}
	if removeErr != nil && !os.IsNotExist(removeErr) {
		return removeErr
	}
	return nil
}

// Commit closes f and renames it into its content-addressed path,
// creating intermediate fan-out directories on demand. The rename is
// atomic at the directory-entry level on a single filesystem.
func (s *Store) Commit(f *os.File, digest string) (string, error) {
	path, err := s.Path(digest)
	if err != nil {
		_ = DiscardScratch(f)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return path, nil
}

// Remove deletes the content file at path. A missing file is not an
// error. A locked file (one an external reader holds open on a platform
// that forbids unlinking open files) is reported via the returned bool so
// the eviction loop can skip it and retry on the next pass; this package
// never blocks waiting for a lock to clear.
func Remove(path string) (removed bool, err error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		if isLockedErr(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Open opens path for read-only sequential access.
func Open(path string) (*os.File, error) {
	return os.Open(path) //nolint:gosec // path is derived from a digest, not user input
}

// Stat reports whether path exists and, if so, its size.
func Stat(path string) (size int64, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return info.Size(), true, nil
}
