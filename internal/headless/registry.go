package headless

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// safeNameRe matches characters that must not appear in a metadata filename.
var safeNameRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// safeFilename maps a session name onto a filesystem-safe stem.
func safeFilename(name string) string {
	return safeNameRe.ReplaceAllString(name, "_")
}

// Registry persists headless run metadata as one JSON file per session and
// reserves a JSONL output file next to it. Corrupt or foreign files in the
// state directory are skipped, never deleted.
type Registry struct {
	stateDir  string
	outputDir string
}

// NewRegistry creates a Registry over the given directories. The
// directories are created lazily on the first Record.
func NewRegistry(stateDir, outputDir string) *Registry {
	return &Registry{stateDir: stateDir, outputDir: outputDir}
}

// MetadataPath returns the metadata file path for a session name.
func (r *Registry) MetadataPath(name string) string {
	return filepath.Join(r.stateDir, safeFilename(name)+".json")
}

// OutputPath returns the JSONL output file path for a session name.
func (r *Registry) OutputPath(name string) string {
	return filepath.Join(r.outputDir, safeFilename(name)+".jsonl")
}

// Record writes the session's metadata and makes sure its output file
// exists, so readers can tail it before the agent produces anything.
func (r *Registry) Record(s *Session) error {
	if err := os.MkdirAll(r.stateDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create headless state directory")
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create headless output directory")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode headless metadata")
	}
	if err := os.WriteFile(r.MetadataPath(s.Name), append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write metadata for %q", s.Name)
	}

	if s.OutputPath != "" {
		f, err := os.OpenFile(s.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrapf(err, "failed to create output file for %q", s.Name)
		}
		_ = f.Close()
	}
	return nil
}

// LoadAll returns every readable session record keyed by session name.
func (r *Registry) LoadAll() map[string]*Session {
	sessions := make(map[string]*Session)
	entries, err := os.ReadDir(r.stateDir)
	if err != nil {
		return sessions
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if s := readSession(filepath.Join(r.stateDir, entry.Name())); s != nil {
			sessions[s.Name] = s
		}
	}
	return sessions
}

// Get returns the record for a session name, or nil when there is none.
func (r *Registry) Get(name string) *Session {
	return readSession(r.MetadataPath(name))
}

// Forget removes the metadata for a session. The output file is kept so
// a finished run's transcript survives cleanup.
func (r *Registry) Forget(name string) error {
	err := os.Remove(r.MetadataPath(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to forget headless session %q", name)
	}
	return nil
}

// readSession parses a metadata file, returning nil for anything
// unreadable or missing required fields.
func readSession(path string) *Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if s.Name == "" || s.Agent == "" || s.Workdir == "" || s.OutputPath == "" {
		return nil
	}
	return &s
}
