package topology

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// Lock is a cross-process exclusive lock on one project's topology
type Lock struct {
	path  string
	flock *flock.Flock
}

// AcquireLock blocks until the lock file at path is held or ctx ends.
// The lock file's directory is created if needed.
func AcquireLock(ctx context.Context, path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLock, "failed to create lock directory for %s", path)
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLock, "failed to lock %s", path)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrLock, "could not lock %s", path)
	}
	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return errors.Wrapf(err, errors.ErrLock, "failed to unlock %s", l.path)
	}
	return nil
}
