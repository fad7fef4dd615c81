package instancelock

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// processAlive checks whether a process with the given PID exists.
// Signal 0 probes for existence without affecting the target; EPERM means
// the process exists but belongs to someone else, which still counts.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return err == syscall.EPERM
}

// processIdentity returns the command line of the process with the given
// PID, or "" when it cannot be determined. Used only to reduce false
// positives from PID reuse, so "unknown" is always an acceptable answer.
func processIdentity(pid int) string {
	if pid <= 0 {
		return ""
	}

	// procfs first: cheap and race-free where available.
	if data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "cmdline")); err == nil {
		args := strings.Split(string(data), "\x00")
		cleaned := make([]string, 0, len(args))
		for _, a := range args {
			if a != "" {
				cleaned = append(cleaned, a)
			}
		}
		if len(cleaned) > 0 {
			return strings.Join(cleaned, " ")
		}
	}

	// ps fallback for platforms without procfs (macOS, BSDs). Bounded so a
	// wedged ps never stalls acquisition.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "ps", "-p", strconv.Itoa(pid), "-o", "args=").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
