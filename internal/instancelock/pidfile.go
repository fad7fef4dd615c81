package instancelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// pidRecord is the persisted fallback record: the holder's PID plus an
// optional identity token used to reduce false positives from PID reuse.
type pidRecord struct {
	PID      int
	Identity string
}

// writePIDRecord atomically writes the PID file with owner-only permissions.
// The format is a newline-terminated decimal PID, optionally followed by an
// identity token line.
func writePIDRecord(path string, pid int, identity string) error {
	content := fmt.Sprintf("%d\n", pid)
	if identity != "" {
		content += identity + "\n"
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pid-*")
	if err != nil {
		return errors.NewLockFileError("create pid file", path, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.NewLockFileError("restrict pid file permissions", path, err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.NewLockFileError("write pid file", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewLockFileError("close pid file", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewLockFileError("replace pid file", path, err)
	}
	return nil
}

// readPIDRecord reads the PID file. Missing or unparsable content is
// reported as absent, not as an error; a corrupted record is for the caller
// to reap, never to trip over.
func readPIDRecord(path string) (pidRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pidRecord{}, false
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) == 0 {
		return pidRecord{}, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || pid <= 0 {
		return pidRecord{}, false
	}

	rec := pidRecord{PID: pid}
	if len(lines) > 1 {
		rec.Identity = strings.TrimSpace(lines[1])
	}
	return rec, true
}

// removeOwnPIDRecord deletes the PID file only if it currently records pid,
// so a racing process never deletes another live holder's record.
func removeOwnPIDRecord(path string, pid int) {
	rec, ok := readPIDRecord(path)
	if !ok || rec.PID != pid {
		return
	}
	_ = os.Remove(path)
}

// identityToken returns the identity string recorded alongside our PID:
// the base name of the running executable.
func identityToken() string {
	exe, err := os.Executable()
	if err != nil {
		if len(os.Args) > 0 {
			return filepath.Base(os.Args[0])
		}
		return ""
	}
	return filepath.Base(exe)
}

// recordAlive reports whether rec names a live process that still looks like
// the one that wrote the record. An identity mismatch degrades the verdict
// toward "not ours"; it never upgrades a dead PID to alive.
func recordAlive(rec pidRecord) bool {
	if !processAlive(rec.PID) {
		return false
	}
	if rec.Identity == "" {
		return true
	}
	current := processIdentity(rec.PID)
	if current == "" {
		// Inconclusive: keep the conservative "alive" verdict.
		return true
	}
	return strings.Contains(current, rec.Identity)
}
