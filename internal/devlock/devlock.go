// Package devlock provides advisory per-target locks so two mkbtrfs
// processes do not format the same device or file concurrently.
//
// Locks are cooperative: they only guard against other mkbtrfs processes,
// not against arbitrary writers. The lock file lives in the system temp
// directory because the target itself may be a block device that cannot
// carry a sibling lock file.
package devlock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// TargetLock wraps a flock file lock derived from a format target path.
type TargetLock struct {
	flock *flock.Flock
	path  string
}

// LockPath returns the lock file path used for the given target. Targets
// resolving to the same absolute path share one lock file.
func LockPath(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	name := strings.NewReplacer("/", "-", "\\", "-", ":", "-").Replace(abs)
	return filepath.Join(os.TempDir(), "mkbtrfs"+name+".lock")
}

// New creates an advisory lock for the given format target.
func New(target string) *TargetLock {
	path := LockPath(target)
	return &TargetLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (tl *TargetLock) Path() string {
	return tl.path
}

// Lock acquires the lock, blocking until it is available.
func (tl *TargetLock) Lock() error {
	if err := tl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", tl.path, err)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if it is held elsewhere.
func (tl *TargetLock) TryLock() (bool, error) {
	acquired, err := tl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", tl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (tl *TargetLock) Unlock() error {
	if err := tl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", tl.path, err)
	}
	return nil
}
