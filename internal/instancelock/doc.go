// Package instancelock guarantees that at most one privileged tmuxdash
// instance runs per host.
//
// The lock is advisory and cooperative: every participant is expected to go
// through a [Coordinator] keyed on the same pair of on-disk paths. Two
// strategies are composed behind one acquire/release contract:
//
//   - An exclusive, non-blocking OS record lock (flock) on the lock file.
//     This is the source of truth where available: the kernel releases it
//     automatically when the holding process dies, however it dies.
//   - A PID file fallback for filesystems without working record locks.
//     The PID file names the holder and an identity token; a record naming
//     a dead or foreign process is stale and treated as absent.
//
// # Basic Usage
//
//	paths, err := instancelock.ResolvePaths("", "")
//	coord := instancelock.New(paths)
//
//	err = coord.WithInstanceLock(instancelock.RaiseOnConflict, 5*time.Second, func() error {
//	    return runDashboard()
//	})
//
// # Concurrency
//
// Contention between processes is resolved by the OS record lock; contention
// between goroutines of one process is serialized by an internal mutex, and a
// holder that calls Acquire again gets true immediately with no side effects.
// Acquire blocks the caller for at most its timeout; a zero timeout never
// blocks. There is no external cancel signal: release-on-termination is
// guaranteed by the OS for the file-lock strategy, so a caller needing early
// abort can run Acquire on a discardable goroutine.
package instancelock
