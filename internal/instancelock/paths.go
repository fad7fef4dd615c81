package instancelock

import (
	"os"
	"path/filepath"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// StateDirEnv overrides the directory holding the lock and PID files.
const StateDirEnv = "TMUXDASH_STATE_DIR"

const (
	lockFileName = "lock"
	pidFileName  = "pid"
)

// Paths holds the two filesystem locations the lock subsystem coordinates
// on. Resolved once and immutable for the coordinator's lifetime.
type Paths struct {
	LockFile string
	PIDFile  string
}

// ResolvePaths resolves the lock and PID file locations and ensures their
// parent directories exist with owner-only permissions. Explicit arguments
// win over the TMUXDASH_STATE_DIR environment override, which wins over the
// default per-user state directory. A directory that cannot be created is a
// *errors.LockFileError; the lock subsystem never proceeds silently unlocked.
func ResolvePaths(lockFile, pidFile string) (Paths, error) {
	dir := DefaultStateDir()
	if env := os.Getenv(StateDirEnv); env != "" {
		dir = env
	}

	if lockFile == "" {
		lockFile = filepath.Join(dir, lockFileName)
	}
	if pidFile == "" {
		pidFile = filepath.Join(dir, pidFileName)
	}

	p := Paths{LockFile: lockFile, PIDFile: pidFile}
	for _, parent := range p.parents() {
		if err := os.MkdirAll(parent, 0700); err != nil {
			return Paths{}, errors.NewLockFileError("create state directory", parent, err)
		}
	}
	return p, nil
}

// parents returns the unique parent directories of the two paths.
func (p Paths) parents() []string {
	lockDir := filepath.Dir(p.LockFile)
	pidDir := filepath.Dir(p.PIDFile)
	if lockDir == pidDir {
		return []string{lockDir}
	}
	return []string{lockDir, pidDir}
}

// DefaultStateDir returns the per-user state directory for tmuxdash,
// honoring XDG_STATE_HOME and falling back to ~/.local/state/tmuxdash.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tmuxdash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tmuxdash"
	}
	return filepath.Join(home, ".local", "state", "tmuxdash")
}
