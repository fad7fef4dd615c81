package instancelock

import "os"

// CleanupStale removes leftovers from crashed instances: a PID record naming
// a dead or foreign process, and an advisory lock file nobody holds anymore.
// It reports whether anything was cleaned and never errors on "nothing to
// clean". Records owned by live processes are left alone.
func (c *Coordinator) CleanupStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := false

	if rec, ok := readPIDRecord(c.paths.PIDFile); ok {
		if rec.PID != os.Getpid() && !recordAlive(rec) {
			if err := os.Remove(c.paths.PIDFile); err == nil {
				cleaned = true
				if c.logger != nil {
					c.logger.Info("stale pid file removed",
						"path", c.paths.PIDFile,
						"old_pid", rec.PID,
					)
				}
			}
		}
	}

	// A lock file we can trial-acquire is held by nobody: the kernel dropped
	// the record lock when its owner died. Skip this while we hold the lock
	// ourselves, since our own file is not stale.
	if !c.flock.held() {
		if _, err := os.Stat(c.paths.LockFile); err == nil {
			if c.flock.probe() == flockAcquired {
				if err := os.Remove(c.paths.LockFile); err == nil {
					cleaned = true
					if c.logger != nil {
						c.logger.Info("stale lock file removed", "path", c.paths.LockFile)
					}
				}
			}
		}
	}

	return cleaned
}
