package instancelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// flockOutcome is the three-way result of a single non-blocking lock attempt.
// Held and unsupported are deliberately distinct: the coordinator falls back
// to the PID-file strategy on unsupported, but reports a conflict on held.
type flockOutcome int

const (
	flockAcquired flockOutcome = iota
	flockHeld
	flockUnsupported
)

// fileLock wraps a single-attempt, non-blocking exclusive OS record lock on
// the lock file. The kernel releases the lock automatically when the holding
// process terminates for any reason; nothing here re-implements that with an
// application-level flag, since that would defeat crash recovery.
type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(path string) *fileLock {
	return &fileLock{path: path}
}

// tryAcquire opens (creating if needed) the lock file and attempts a single
// non-blocking exclusive lock. On success it records pid in the file for
// diagnostics; the byte content of the lock file is otherwise unspecified.
// A permission failure opening the file is fatal for the attempt, never
// interpreted as "lock available".
func (l *fileLock) tryAcquire(pid int) (flockOutcome, error) {
	if l.f != nil {
		return flockAcquired, nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY, 0600)
	if os.IsNotExist(err) {
		// State directory vanished since ResolvePaths. Recreate or fail.
		if mkErr := os.MkdirAll(filepath.Dir(l.path), 0700); mkErr != nil {
			return flockUnsupported, errors.NewLockFileError("create state directory", filepath.Dir(l.path), mkErr)
		}
		f, err = os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY, 0600)
	}
	if err != nil {
		if os.IsPermission(err) {
			return flockUnsupported, errors.NewLockFileError("open lock file", l.path, err)
		}
		return flockUnsupported, nil
	}

	switch outcome := flockExclusive(f); outcome {
	case flockAcquired:
		l.f = f
		// Best-effort diagnostics only; the record lock is the signal.
		_ = f.Truncate(0)
		_, _ = f.WriteAt([]byte(fmt.Sprintf("%d\n", pid)), 0)
		return flockAcquired, nil
	default:
		_ = f.Close()
		return outcome, nil
	}
}

// release unlocks and closes the descriptor. Idempotent: a second call is a
// no-op and never fails.
func (l *fileLock) release() {
	if l.f == nil {
		return
	}
	flockUnlock(l.f)
	_ = l.f.Close()
	l.f = nil
}

// held reports whether this process currently holds the record lock.
func (l *fileLock) held() bool {
	return l.f != nil
}

// probe opens the lock file read-only and trial-acquires the record lock,
// releasing it immediately on success. It never mutates lock state owned by
// this process and is only meaningful when the caller does not hold the lock.
func (l *fileLock) probe() flockOutcome {
	f, err := os.Open(l.path)
	if err != nil {
		// No lock file (or unreadable) means nothing is holding it.
		return flockAcquired
	}
	defer f.Close()

	outcome := flockExclusive(f)
	if outcome == flockAcquired {
		flockUnlock(f)
	}
	return outcome
}
