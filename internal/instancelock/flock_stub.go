//go:build !unix

package instancelock

import "os"

// flockExclusive reports record locks as unavailable on platforms without
// flock, steering the coordinator to the PID-file strategy.
func flockExclusive(_ *os.File) flockOutcome {
	return flockUnsupported
}

func flockUnlock(_ *os.File) {}
