//go:build unix

package instancelock

import (
	"os"

	"golang.org/x/sys/unix"
)

// flockExclusive attempts a non-blocking exclusive flock on f.
func flockExclusive(f *os.File) flockOutcome {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return flockAcquired
	}
	switch err {
	// EWOULDBLOCK aliases EAGAIN on all x/sys unix targets; NFS mounts
	// surface contention as EACCES. All mean "held elsewhere".
	case unix.EWOULDBLOCK, unix.EACCES:
		return flockHeld
	default:
		// ENOLCK, ENOTSUP and friends: no working record locks here.
		return flockUnsupported
	}
}

// flockUnlock releases the flock on f. Errors are ignored; closing the
// descriptor releases the lock regardless.
func flockUnlock(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
