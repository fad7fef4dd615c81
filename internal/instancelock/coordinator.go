package instancelock

import (
	"os"
	"sync"
	"time"

	"github.com/tmuxdash/tmuxdash/internal/logging"
)

// pollInterval is how often a blocked Acquire re-attempts both strategies.
const pollInterval = 50 * time.Millisecond

// Strategy identifies which locking mechanism produced a Handle.
type Strategy string

const (
	// StrategyFileLock means the OS record lock is held.
	StrategyFileLock Strategy = "filelock"
	// StrategyPIDFile means only the PID-file fallback is in effect.
	StrategyPIDFile Strategy = "pidfile"
)

// Handle describes a successful acquisition. It exists only between a
// successful Acquire and the matching Release and is never mutated.
type Handle struct {
	OwnerPID   int
	Strategy   Strategy
	AcquiredAt time.Time
}

// lockState is the coordinator's three-state machine. ACQUIRING never leaks:
// every Acquire ends in LOCKED or back in UNLOCKED.
type lockState int

const (
	stateUnlocked lockState = iota
	stateAcquiring
	stateLocked
)

// Coordinator composes the file-lock and PID-file strategies behind one
// acquire/release contract. All public entry points are serialized by an
// internal mutex, so concurrent goroutines in one process never race each
// other to flip UNLOCKED to LOCKED; cross-process contention is resolved by
// the OS record lock itself.
type Coordinator struct {
	mu     sync.Mutex
	paths  Paths
	flock  *fileLock
	state  lockState
	handle *Handle
	logger *logging.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger attaches a logger used for acquisition diagnostics.
// The coordinator works without one.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// New creates a Coordinator over the given resolved paths.
func New(paths Paths, opts ...Option) *Coordinator {
	c := &Coordinator{
		paths: paths,
		flock: newFileLock(paths.LockFile),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault creates a Coordinator over the default (or environment
// overridden) state directory paths.
func NewDefault(opts ...Option) (*Coordinator, error) {
	paths, err := ResolvePaths("", "")
	if err != nil {
		return nil, err
	}
	return New(paths, opts...), nil
}

// Paths returns the resolved lock file locations.
func (c *Coordinator) Paths() Paths {
	return c.paths
}

// Acquire attempts to take the instance lock, polling for up to timeout when
// another live process holds it. It returns (true, nil) on success,
// (false, nil) when the lock stayed held through the timeout window, and a
// *errors.LockFileError for setup failures. A zero timeout never blocks. A
// caller that already holds the lock gets true immediately with no
// additional side effects.
func (c *Coordinator) Acquire(timeout time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateLocked {
		return true, nil
	}

	c.state = stateAcquiring
	deadline := time.Now().Add(timeout)

	for {
		acquired, err := c.tryOnce()
		if err != nil {
			c.state = stateUnlocked
			return false, err
		}
		if acquired {
			c.state = stateLocked
			if c.logger != nil {
				c.logger.Info("instance lock acquired",
					"pid", c.handle.OwnerPID,
					"strategy", string(c.handle.Strategy),
				)
			}
			return true, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.state = stateUnlocked
			return false, nil
		}
		time.Sleep(min(pollInterval, remaining))
	}
}

// tryOnce runs one pass over both strategies: flock first, PID-file fallback
// when record locks are unusable. Returns (false, nil) on conflict with a
// live holder.
func (c *Coordinator) tryOnce() (bool, error) {
	pid := os.Getpid()

	outcome, err := c.flock.tryAcquire(pid)
	if err != nil {
		return false, err
	}

	switch outcome {
	case flockAcquired:
		// The record lock is the source of truth; the PID record is
		// best-effort diagnostics and its failure does not void the lock.
		if err := writePIDRecord(c.paths.PIDFile, pid, identityToken()); err != nil && c.logger != nil {
			c.logger.Warn("pid record write failed", "error", err)
		}
		c.handle = &Handle{OwnerPID: pid, Strategy: StrategyFileLock, AcquiredAt: time.Now()}
		return true, nil

	case flockHeld:
		return false, nil

	default: // flockUnsupported: fall back entirely to the PID file.
		return c.tryPIDFile(pid)
	}
}

// tryPIDFile is the fallback strategy for filesystems without working record
// locks: a live, identity-matching record is a conflict; a stale one is
// reaped and replaced.
func (c *Coordinator) tryPIDFile(pid int) (bool, error) {
	if rec, ok := readPIDRecord(c.paths.PIDFile); ok {
		if rec.PID != pid && recordAlive(rec) {
			return false, nil
		}
		// Dead, foreign, or our own leftover record: reap it.
		_ = os.Remove(c.paths.PIDFile)
		if c.logger != nil && rec.PID != pid {
			c.logger.Warn("stale pid record reaped", "old_pid", rec.PID)
		}
	}

	if err := writePIDRecord(c.paths.PIDFile, pid, identityToken()); err != nil {
		return false, err
	}
	c.handle = &Handle{OwnerPID: pid, Strategy: StrategyPIDFile, AcquiredAt: time.Now()}
	return true, nil
}

// Release clears the record lock and removes this process's own PID record.
// Safe to call when the lock was never acquired: that is a no-op.
func (c *Coordinator) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flock.release()
	removeOwnPIDRecord(c.paths.PIDFile, os.Getpid())

	if c.state == stateLocked && c.logger != nil {
		c.logger.Info("instance lock released", "pid", os.Getpid())
	}
	c.state = stateUnlocked
	c.handle = nil
}
