package instancelock

import "os"

// Status is a point-in-time snapshot of the lock state. It is computed on
// demand and never cached across calls.
type Status struct {
	Locked    bool
	LockFile  string
	PIDFile   string
	OurPID    int
	HolderPID int
}

// IsLocked reports whether any process currently holds the instance lock.
// The probe is advisory and eventually consistent: it combines a liveness
// check of the PID record with, when that is inconclusive, a trial
// acquisition that is released immediately if it succeeds. A true atomic
// check without side effects is not possible with cooperative locks.
func (c *Coordinator) IsLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLockedLocked()
}

func (c *Coordinator) isLockedLocked() bool {
	if c.state == stateLocked {
		return true
	}

	if rec, ok := readPIDRecord(c.paths.PIDFile); ok && recordAlive(rec) {
		return true
	}

	return c.flock.probe() == flockHeld
}

// Status returns a snapshot of the lock state, including the holder's PID
// when it can be determined from the PID record or the lock file content.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		LockFile: c.paths.LockFile,
		PIDFile:  c.paths.PIDFile,
		OurPID:   os.Getpid(),
		Locked:   c.isLockedLocked(),
	}
	s.HolderPID = c.holderPIDLocked()
	return s
}

// holderPIDLocked extracts the locking PID for diagnostics: ours when we
// hold the lock, otherwise whatever the PID record or lock file names.
// Returns 0 when no holder can be identified.
func (c *Coordinator) holderPIDLocked() int {
	if c.state == stateLocked && c.handle != nil {
		return c.handle.OwnerPID
	}
	if rec, ok := readPIDRecord(c.paths.PIDFile); ok {
		return rec.PID
	}
	// The lock file carries the holder's PID as best-effort diagnostics.
	if rec, ok := readPIDRecord(c.paths.LockFile); ok {
		return rec.PID
	}
	return 0
}
