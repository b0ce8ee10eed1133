package reconcile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when another pass holds the sync lock.
var ErrRunInProgress = errors.New("another sync is already running")

// Lock is an exclusive file lock held for the duration of one pass.
// Existence checks and writes are not atomic on the wiki side, so two passes
// racing would double-insert list and panel entries.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the lock at path without blocking. An empty path disables locking.
func AcquireLock(path string) (*Lock, error) {
	if path == "" {
		return &Lock{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Release frees the lock. It is safe to call on a disabled lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
