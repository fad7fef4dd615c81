package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tmuxdash/tmuxdash/internal/errors"
	"github.com/tmuxdash/tmuxdash/internal/logging"
	"github.com/tmuxdash/tmuxdash/internal/tmux"
)

const defaultCommandTimeout = 5 * time.Second

// fieldSep separates tmux format fields. Session names can contain single
// colons, so a two-character separator avoids ambiguity.
const fieldSep = "::"

// Manager lists and manipulates tmux sessions.
type Manager struct {
	runner  Runner
	logger  *logging.Logger
	timeout time.Duration
	dryRun  bool

	cachedProjectName string
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner substitutes the tmux command runner. Used by tests.
func WithRunner(r Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithLogger attaches a logger for command tracing.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTimeout bounds each tmux invocation.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithDryRun logs mutating commands instead of executing them.
// Read-only commands still run so the dashboard can render real data.
func WithDryRun(enabled bool) Option {
	return func(m *Manager) { m.dryRun = enabled }
}

// NewManager creates a Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		runner:  NewRunner(),
		logger:  logging.NopLogger(),
		timeout: defaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// run executes a mutating tmux command, honoring dry-run mode.
func (m *Manager) run(args ...string) error {
	if m.dryRun {
		m.logger.Info("dry run: skipping tmux command", "args", strings.Join(args, " "))
		return nil
	}

	ctx, cancel := m.ctx()
	defer cancel()
	_, err := m.runner.Output(ctx, args...)
	return err
}

// List returns all sessions on the server, sorted according to mode.
// A missing tmux server is not an error: it returns an empty list.
func (m *Manager) List(mode SortMode) ([]Info, error) {
	ctx, cancel := m.ctx()
	defer cancel()

	out, err := m.runner.Output(ctx, "list-sessions", "-F",
		"#{session_name}"+fieldSep+"#{session_attached}"+fieldSep+
			"#{session_windows}"+fieldSep+"#{session_activity}")
	if err != nil {
		if errors.Is(err, errors.ErrNoServer) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	var sessions []Info
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 4)
		if len(parts) < 3 {
			continue
		}

		info := Info{
			Name:     parts[0],
			Attached: parseAttached(parts[1]),
			Windows:  parseCount(parts[2]),
		}
		if len(parts) == 4 {
			info.Activity, _ = strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
		}
		info.IsAgentSession, info.Agent = detectAgent(info.Name, m.paneCommands(info.Name))
		sessions = append(sessions, info)
	}

	sortSessions(sessions, mode)
	return sessions, nil
}

// MostRecent returns the most recently active session, or nil when the
// server has none.
func (m *Manager) MostRecent() (*Info, error) {
	ctx, cancel := m.ctx()
	defer cancel()

	out, err := m.runner.Output(ctx, "list-sessions", "-F",
		"#{session_name}"+fieldSep+"#{session_attached}"+fieldSep+"#{session_windows}"+
			fieldSep+"#{session_activity}"+fieldSep+"#{session_last_attached}")
	if err != nil {
		if errors.Is(err, errors.ErrNoServer) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	var best *Info
	bestScore := int64(-1)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 5)
		if len(parts) < 5 {
			continue
		}

		activity, _ := strconv.ParseInt(parts[3], 10, 64)
		lastAttached, _ := strconv.ParseInt(parts[4], 10, 64)
		score := max(activity, lastAttached)
		if score > bestScore {
			bestScore = score
			best = &Info{
				Name:     parts[0],
				Attached: parseAttached(parts[1]),
				Windows:  parseCount(parts[2]),
			}
		}
	}
	return best, nil
}

// paneCommands returns the current command of every pane in the session.
// Failures degrade to an empty list; agent detection falls back to the name.
func (m *Manager) paneCommands(sessionName string) []string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := m.runner.Output(ctx, "list-panes", "-t", sessionName, "-F", "#{pane_current_command}")
	if err != nil {
		return nil
	}

	var commands []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			commands = append(commands, line)
		}
	}
	return commands
}

// Create creates a detached session with the given name.
func (m *Manager) Create(name string) error {
	if name == "" {
		return errors.NewValidationError("session name cannot be empty")
	}
	if err := m.run("new-session", "-d", "-s", name); err != nil {
		if errors.Is(err, errors.ErrSessionExists) {
			return errors.Wrapf(errors.ErrSessionExists, "session %q", name)
		}
		return errors.Wrapf(err, "failed to create session %q", name)
	}
	m.logger.Info("session created", "session", name)
	return nil
}

// CreateWithDir creates a detached session starting in dir. An empty dir
// uses the current working directory. The first window is renamed to match
// the session and cleared.
func (m *Manager) CreateWithDir(name, dir string) error {
	if name == "" {
		return errors.NewValidationError("session name cannot be empty")
	}
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}

	if err := m.run("new-session", "-d", "-s", name, "-c", dir); err != nil {
		if errors.Is(err, errors.ErrSessionExists) {
			return errors.Wrapf(errors.ErrSessionExists, "session %q", name)
		}
		return errors.Wrapf(err, "failed to create session %q", name)
	}

	// Cosmetic follow-ups: ignore failures.
	_ = m.run("rename-window", "-t", name, name)
	_ = m.run("send-keys", "-t", name+":0", "clear", "Enter")

	m.logger.Info("session created", "session", name, "dir", dir)
	return nil
}

// CreateWithCommand creates a detached session running command in its first
// window, starting in dir (or the current working directory when empty).
func (m *Manager) CreateWithCommand(name string, command []string, dir string) error {
	if name == "" {
		return errors.NewValidationError("session name cannot be empty")
	}
	if len(command) == 0 {
		return errors.NewValidationError("session command cannot be empty")
	}
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}

	args := append([]string{"new-session", "-d", "-s", name, "-c", dir}, command...)
	if err := m.run(args...); err != nil {
		if errors.Is(err, errors.ErrSessionExists) {
			return errors.Wrapf(errors.ErrSessionExists, "session %q", name)
		}
		return errors.Wrapf(err, "failed to create session %q", name)
	}
	_ = m.run("rename-window", "-t", name, name)

	m.logger.Info("session created", "session", name, "command", strings.Join(command, " "))
	return nil
}

// AttachCommand returns the argv to attach the current terminal to a session.
// Inside tmux, attaching would nest clients, so switch-client is used instead.
func (m *Manager) AttachCommand(name string) []string {
	if tmux.InsideTmux() {
		return tmux.CommandArgs("switch-client", "-t", name)
	}
	return tmux.CommandArgs("attach-session", "-t", name)
}

// Kill terminates a session.
func (m *Manager) Kill(name string) error {
	if err := m.run("kill-session", "-t", name); err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return errors.Wrapf(errors.ErrSessionNotFound, "session %q", name)
		}
		return errors.Wrapf(err, "failed to kill session %q", name)
	}
	m.logger.Info("session killed", "session", name)
	return nil
}

// Rename renames a session and keeps its first window name in sync.
func (m *Manager) Rename(oldName, newName string) error {
	if newName == "" {
		return errors.NewValidationError("session name cannot be empty")
	}
	if err := m.run("rename-session", "-t", oldName, newName); err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return errors.Wrapf(errors.ErrSessionNotFound, "session %q", oldName)
		}
		return errors.Wrapf(err, "failed to rename session %q", oldName)
	}
	_ = m.run("rename-window", "-t", newName, newName)

	m.logger.Info("session renamed", "session", oldName, "new_name", newName)
	return nil
}

// RenameToProject renames a session after the directory its active pane is
// in. Returns the new name, or "" when no rename happened (already named
// after the directory, or the path could not be determined).
func (m *Manager) RenameToProject(sessionName string) (string, error) {
	path := m.activePanePath(sessionName)
	newName := projectNameFromPath(path)
	if newName == "" {
		return "", nil
	}

	if sessionName == newName {
		_ = m.run("rename-window", "-t", sessionName, newName)
		return "", nil
	}

	if err := m.Rename(sessionName, newName); err != nil {
		return "", err
	}
	return newName, nil
}

// activePanePath returns the current path of the session's active pane,
// falling back to the first pane that reports one.
func (m *Manager) activePanePath(sessionName string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := m.runner.Output(ctx, "list-panes", "-t", sessionName, "-F",
		"#{window_active}"+fieldSep+"#{pane_active}"+fieldSep+"#{pane_current_path}")
	if err != nil {
		return ""
	}

	fallback := ""
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 3)
		if len(parts) < 3 || parts[2] == "" {
			continue
		}
		if parts[0] == "1" && parts[1] == "1" {
			return parts[2]
		}
		if fallback == "" {
			fallback = parts[2]
		}
	}
	return fallback
}

// SendKeys sends literal keys to the session's first window, optionally
// followed by Enter.
func (m *Manager) SendKeys(sessionName string, keys []string, enter bool) error {
	if len(keys) == 0 && !enter {
		return nil
	}

	args := append([]string{"send-keys", "-t", sessionName + ":0"}, keys...)
	if enter {
		args = append(args, "Enter")
	}
	if err := m.run(args...); err != nil {
		return errors.Wrapf(err, "failed to send keys to session %q", sessionName)
	}
	return nil
}

// CapturePane returns the last maxLines lines of the session's active pane
// for the preview panel. Failures return nil: a blank preview, not an error.
func (m *Manager) CapturePane(sessionName string, maxLines int) []string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := m.runner.Output(ctx, "capture-pane", "-t", sessionName, "-p")
	if err != nil {
		return nil
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Status reports whether a session still exists and whether any of its
// panes are running.
func (m *Manager) Status(sessionName string) RuntimeStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := m.runner.Output(ctx, "list-panes", "-t", sessionName, "-F",
		"#{pane_dead}"+fieldSep+"#{pane_exit_status}")
	if err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return RuntimeStatus{}
		}
		return RuntimeStatus{Exists: true}
	}

	status := RuntimeStatus{Exists: true}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 2)
		if parts[0] == "0" {
			status.Running = true
		}
		if len(parts) == 2 {
			if code, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				if !status.HasExitCode || code > status.ExitCode {
					status.ExitCode = code
					status.HasExitCode = true
				}
			}
		}
	}
	return status
}

// DetectProjectName returns the basename of the current working directory,
// or "default" at the filesystem root. The result is cached.
func (m *Manager) DetectProjectName() string {
	if m.cachedProjectName != "" {
		return m.cachedProjectName
	}

	name := "default"
	if cwd, err := os.Getwd(); err == nil {
		if base := filepath.Base(cwd); base != "/" && base != "." {
			name = base
		}
	}
	m.cachedProjectName = name
	return name
}

// GenerateName returns a session name based on the project directory that
// does not collide with any existing session. Collisions get a numeric
// suffix; a timestamp is the last resort.
func (m *Manager) GenerateName(existing []Info) string {
	base := m.DetectProjectName()

	names := make(map[string]bool, len(existing))
	for _, s := range existing {
		names[s.Name] = true
	}

	if !names[base] {
		return base
	}
	for i := 2; i < 100; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !names[candidate] {
			return candidate
		}
	}
	return fmt.Sprintf("%s-%s", base, time.Now().Format("20060102-150405"))
}

// sortSessions orders sessions in place according to mode. All modes use
// the lowercased name as a tiebreaker for stable, predictable output.
func sortSessions(sessions []Info, mode SortMode) {
	byName := func(a, b Info) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		switch mode {
		case SortName:
			return byName(a, b)
		case SortActivity:
			if a.Attached != b.Attached {
				return a.Attached
			}
			if a.Activity != b.Activity {
				return a.Activity > b.Activity
			}
			return byName(a, b)
		case SortWindows:
			if a.Windows != b.Windows {
				return a.Windows > b.Windows
			}
			return byName(a, b)
		default: // SortAgents
			if a.IsAgentSession != b.IsAgentSession {
				return a.IsAgentSession
			}
			return byName(a, b)
		}
	})
}

func parseAttached(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		v := strings.ToLower(strings.TrimSpace(s))
		return v == "true" || v == "yes" || v == "y"
	}
	return n > 0
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func projectNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
