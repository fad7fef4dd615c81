package instancelock

import (
	"fmt"
	"os"
	"time"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// ConflictPolicy selects what WithInstanceLock does when another live
// instance holds the lock. The choice always belongs to the caller; the
// locking core never decides to terminate a process on its own.
type ConflictPolicy int

const (
	// RaiseOnConflict returns a *errors.ConflictError to the caller.
	RaiseOnConflict ConflictPolicy = iota
	// TerminateOnConflict prints a diagnostic and exits the process.
	TerminateOnConflict
)

// osExit is swapped out in tests.
var osExit = os.Exit

// WithInstanceLock runs body under the instance lock, guaranteeing release
// on every exit path: normal completion, returned error, or panic. On
// conflict it either returns a *errors.ConflictError or terminates the
// process, per policy. Setup failures are returned as *errors.LockFileError
// regardless of policy.
func (c *Coordinator) WithInstanceLock(policy ConflictPolicy, timeout time.Duration, body func() error) error {
	acquired, err := c.Acquire(timeout)
	if err != nil {
		return err
	}
	if !acquired {
		conflict := errors.NewConflictError(c.Status().HolderPID).WithTimedOut(timeout > 0)
		if c.logger != nil {
			c.logger.Warn("instance lock conflict",
				"holder_pid", conflict.HolderPID,
				"timed_out", conflict.TimedOut,
			)
		}
		if policy == TerminateOnConflict {
			c.printConflict(conflict)
			osExit(1)
		}
		return conflict
	}

	defer c.Release()
	return body()
}

// printConflict writes a human-readable conflict diagnostic to stderr,
// including enough detail to find and kill the other instance.
func (c *Coordinator) printConflict(conflict *errors.ConflictError) {
	fmt.Fprintln(os.Stderr, "another tmuxdash instance is already running")
	fmt.Fprintf(os.Stderr, "  lock file: %s\n", c.paths.LockFile)
	fmt.Fprintf(os.Stderr, "  pid file:  %s\n", c.paths.PIDFile)
	if conflict.HolderPID > 0 {
		fmt.Fprintf(os.Stderr, "  holder:    pid %d\n", conflict.HolderPID)
		fmt.Fprintf(os.Stderr, "\nto stop it: kill %d\n", conflict.HolderPID)
	}
}
