package session

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/tmuxdash/tmuxdash/internal/errors"
)

// fakeRunner returns canned output per tmux subcommand and records every
// invocation.
type fakeRunner struct {
	outputs map[string]string // subcommand -> stdout
	errs    map[string]error  // subcommand -> error
	calls   [][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) Output(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}
	if err, ok := f.errs[sub]; ok {
		return "", err
	}
	return f.outputs[sub], nil
}

func (f *fakeRunner) called(subcommand string) bool {
	for _, call := range f.calls {
		if len(call) > 0 && call[0] == subcommand {
			return true
		}
	}
	return false
}

func (f *fakeRunner) lastCall(subcommand string) []string {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if len(f.calls[i]) > 0 && f.calls[i][0] == subcommand {
			return f.calls[i]
		}
	}
	return nil
}

func tmuxErr(command, stderr string) error {
	return wrapTmuxFailure(command, errors.New("exit status 1"), stderr)
}

func newTestManager(f *fakeRunner) *Manager {
	return NewManager(WithRunner(f))
}

func TestListParsesSessions(t *testing.T) {
	f := newFakeRunner()
	f.outputs["list-sessions"] = "api-server::1::3::1700000300\nscratch::0::1::1700000100\n"

	sessions, err := newTestManager(f).List(SortName)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}

	api := sessions[0]
	if api.Name != "api-server" || !api.Attached || api.Windows != 3 || api.Activity != 1700000300 {
		t.Errorf("first session = %+v", api)
	}
	scratch := sessions[1]
	if scratch.Name != "scratch" || scratch.Attached || scratch.Windows != 1 {
		t.Errorf("second session = %+v", scratch)
	}
}

func TestListNoServerIsEmpty(t *testing.T) {
	f := newFakeRunner()
	f.errs["list-sessions"] = tmuxErr("tmux list-sessions", "no server running on /tmp/tmux-1000/default")

	sessions, err := newTestManager(f).List(SortName)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(sessions))
	}
}

func TestListOtherErrorPropagates(t *testing.T) {
	f := newFakeRunner()
	f.errs["list-sessions"] = tmuxErr("tmux list-sessions", "server exited unexpectedly")

	if _, err := newTestManager(f).List(SortName); err == nil {
		t.Fatal("List() = nil error for a failing server")
	}
}

func TestListDetectsAgents(t *testing.T) {
	f := newFakeRunner()
	f.outputs["list-sessions"] = "build::0::1\nclaude-work::0::1\n"
	// Pane command detection is exercised via list-panes; the fake returns
	// the same output for every session, so use the name-based path here.
	f.errs["list-panes"] = tmuxErr("tmux list-panes", "can't find session")

	sessions, err := newTestManager(f).List(SortName)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	byName := make(map[string]Info)
	for _, s := range sessions {
		byName[s.Name] = s
	}
	if byName["build"].IsAgentSession {
		t.Error("build marked as an agent session")
	}
	if !byName["claude-work"].IsAgentSession {
		t.Error("claude-work not marked as an agent session")
	}
}

func TestListAgentFromPaneCommand(t *testing.T) {
	f := newFakeRunner()
	f.outputs["list-sessions"] = "work::0::1\n"
	f.outputs["list-panes"] = "codex\n"

	sessions, err := newTestManager(f).List(SortName)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if !sessions[0].IsAgentSession || sessions[0].Agent != "codex" {
		t.Errorf("session = %+v, want codex agent", sessions[0])
	}
}

func TestSortModes(t *testing.T) {
	sessions := []Info{
		{Name: "zeta", Attached: false, Windows: 1, Activity: 300},
		{Name: "alpha", Attached: false, Windows: 5, Activity: 100},
		{Name: "mid", Attached: true, Windows: 2, Activity: 200, IsAgentSession: true},
	}

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortName, []string{"alpha", "mid", "zeta"}},
		// Attached first, then most recent activity.
		{SortActivity, []string{"mid", "zeta", "alpha"}},
		{SortAgents, []string{"mid", "alpha", "zeta"}},
		{SortWindows, []string{"alpha", "mid", "zeta"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := make([]Info, len(sessions))
			copy(got, sessions)
			sortSessions(got, tt.mode)
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("position %d = %q, want %q (order: %v)", i, got[i].Name, name, got)
					break
				}
			}
		})
	}
}

func TestMostRecent(t *testing.T) {
	f := newFakeRunner()
	f.outputs["list-sessions"] = strings.Join([]string{
		"old::0::1::100::50",
		"newest::0::2::300::200",
		"mid::1::1::150::250",
	}, "\n")

	got, err := newTestManager(f).MostRecent()
	if err != nil {
		t.Fatalf("MostRecent() error = %v", err)
	}
	if got == nil || got.Name != "newest" {
		t.Errorf("MostRecent() = %+v, want newest", got)
	}
}

func TestMostRecentNoServer(t *testing.T) {
	f := newFakeRunner()
	f.errs["list-sessions"] = tmuxErr("tmux list-sessions", "no server running")

	got, err := newTestManager(f).MostRecent()
	if err != nil {
		t.Fatalf("MostRecent() error = %v", err)
	}
	if got != nil {
		t.Errorf("MostRecent() = %+v, want nil", got)
	}
}

func TestCreate(t *testing.T) {
	t.Run("runs new-session detached", func(t *testing.T) {
		f := newFakeRunner()
		if err := newTestManager(f).Create("work"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		call := f.lastCall("new-session")
		want := []string{"new-session", "-d", "-s", "work"}
		if len(call) != len(want) {
			t.Fatalf("new-session args = %v, want %v", call, want)
		}
	})

	t.Run("duplicate maps to ErrSessionExists", func(t *testing.T) {
		f := newFakeRunner()
		f.errs["new-session"] = tmuxErr("tmux new-session", "duplicate session: work")

		err := newTestManager(f).Create("work")
		if !errors.Is(err, errors.ErrSessionExists) {
			t.Errorf("Create() error = %v, want ErrSessionExists", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		f := newFakeRunner()
		if err := newTestManager(f).Create(""); err == nil {
			t.Error("Create(\"\") = nil error")
		}
		if len(f.calls) != 0 {
			t.Error("tmux was invoked for an empty name")
		}
	})
}

func TestCreateWithDir(t *testing.T) {
	f := newFakeRunner()
	if err := newTestManager(f).CreateWithDir("work", "/tmp/project"); err != nil {
		t.Fatalf("CreateWithDir() error = %v", err)
	}

	call := f.lastCall("new-session")
	joined := strings.Join(call, " ")
	if !strings.Contains(joined, "-c /tmp/project") {
		t.Errorf("new-session args %v missing -c /tmp/project", call)
	}
	if !f.called("rename-window") {
		t.Error("first window was not renamed")
	}
	if !f.called("send-keys") {
		t.Error("clear was not sent to the first window")
	}
}

func TestCreateWithCommand(t *testing.T) {
	f := newFakeRunner()
	m := newTestManager(f)

	if err := m.CreateWithCommand("runner", []string{"htop"}, "/tmp"); err != nil {
		t.Fatalf("CreateWithCommand() error = %v", err)
	}
	call := f.lastCall("new-session")
	if call[len(call)-1] != "htop" {
		t.Errorf("new-session args %v do not end with the command", call)
	}

	if err := m.CreateWithCommand("runner", nil, ""); err == nil {
		t.Error("CreateWithCommand() with no command = nil error")
	}
}

func TestAttachCommand(t *testing.T) {
	m := newTestManager(newFakeRunner())

	t.Setenv("TMUX", "")
	got := m.AttachCommand("work")
	if got[1] != "attach-session" {
		t.Errorf("outside tmux: argv = %v, want attach-session", got)
	}

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	got = m.AttachCommand("work")
	if got[1] != "switch-client" {
		t.Errorf("inside tmux: argv = %v, want switch-client", got)
	}
}

func TestKill(t *testing.T) {
	t.Run("kills the session", func(t *testing.T) {
		f := newFakeRunner()
		if err := newTestManager(f).Kill("work"); err != nil {
			t.Fatalf("Kill() error = %v", err)
		}
		call := f.lastCall("kill-session")
		if call == nil || call[2] != "work" {
			t.Errorf("kill-session args = %v", call)
		}
	})

	t.Run("missing maps to ErrSessionNotFound", func(t *testing.T) {
		f := newFakeRunner()
		f.errs["kill-session"] = tmuxErr("tmux kill-session", "can't find session: work")

		err := newTestManager(f).Kill("work")
		if !errors.Is(err, errors.ErrSessionNotFound) {
			t.Errorf("Kill() error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestRename(t *testing.T) {
	f := newFakeRunner()
	if err := newTestManager(f).Rename("old", "new"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	if call := f.lastCall("rename-session"); call == nil || call[3] != "new" {
		t.Errorf("rename-session args = %v", f.lastCall("rename-session"))
	}
	// The first window follows the session name.
	if call := f.lastCall("rename-window"); call == nil || call[3] != "new" {
		t.Errorf("rename-window args = %v", f.lastCall("rename-window"))
	}
}

func TestRenameToProject(t *testing.T) {
	t.Run("renames to pane directory basename", func(t *testing.T) {
		f := newFakeRunner()
		f.outputs["list-panes"] = "1::1::/home/user/projects/webapp\n"

		newName, err := newTestManager(f).RenameToProject("work")
		if err != nil {
			t.Fatalf("RenameToProject() error = %v", err)
		}
		if newName != "webapp" {
			t.Errorf("newName = %q, want webapp", newName)
		}
	})

	t.Run("no-op when already named after directory", func(t *testing.T) {
		f := newFakeRunner()
		f.outputs["list-panes"] = "1::1::/home/user/projects/work\n"

		newName, err := newTestManager(f).RenameToProject("work")
		if err != nil {
			t.Fatalf("RenameToProject() error = %v", err)
		}
		if newName != "" {
			t.Errorf("newName = %q, want empty", newName)
		}
		if f.called("rename-session") {
			t.Error("rename-session was run for an already-correct name")
		}
	})

	t.Run("falls back to first pane path", func(t *testing.T) {
		f := newFakeRunner()
		f.outputs["list-panes"] = "0::0::/srv/first\n0::1::/srv/second\n"

		newName, err := newTestManager(f).RenameToProject("work")
		if err != nil {
			t.Fatalf("RenameToProject() error = %v", err)
		}
		if newName != "first" {
			t.Errorf("newName = %q, want first", newName)
		}
	})

	t.Run("no path means no rename", func(t *testing.T) {
		f := newFakeRunner()
		f.errs["list-panes"] = tmuxErr("tmux list-panes", "can't find session")

		newName, err := newTestManager(f).RenameToProject("work")
		if err != nil || newName != "" {
			t.Errorf("RenameToProject() = (%q, %v), want (\"\", nil)", newName, err)
		}
	})
}

func TestSendKeys(t *testing.T) {
	f := newFakeRunner()
	m := newTestManager(f)

	if err := m.SendKeys("work", []string{"ls -la"}, true); err != nil {
		t.Fatalf("SendKeys() error = %v", err)
	}
	call := f.lastCall("send-keys")
	if call[2] != "work:0" {
		t.Errorf("send-keys target = %q, want work:0", call[2])
	}
	if call[len(call)-1] != "Enter" {
		t.Errorf("send-keys args %v do not end with Enter", call)
	}

	// Nothing to send.
	f.calls = nil
	if err := m.SendKeys("work", nil, false); err != nil {
		t.Fatalf("SendKeys() error = %v", err)
	}
	if len(f.calls) != 0 {
		t.Error("send-keys was run with nothing to send")
	}
}

func TestCapturePane(t *testing.T) {
	f := newFakeRunner()
	f.outputs["capture-pane"] = "line1\nline2\nline3\nline4\n"

	m := newTestManager(f)
	lines := m.CapturePane("work", 2)
	if len(lines) != 2 || lines[0] != "line3" || lines[1] != "line4" {
		t.Errorf("CapturePane() = %v, want last 2 lines", lines)
	}

	f.errs["capture-pane"] = tmuxErr("tmux capture-pane", "can't find session")
	if lines := m.CapturePane("gone", 10); lines != nil {
		t.Errorf("CapturePane() = %v for a missing session, want nil", lines)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   RuntimeStatus
	}{
		{
			name:   "running pane",
			output: "0::\n",
			want:   RuntimeStatus{Exists: true, Running: true},
		},
		{
			name:   "all panes dead with exit codes",
			output: "1::0\n1::2\n",
			want:   RuntimeStatus{Exists: true, Running: false, ExitCode: 2, HasExitCode: true},
		},
		{
			name:   "mixed panes",
			output: "0::\n1::1\n",
			want:   RuntimeStatus{Exists: true, Running: true, ExitCode: 1, HasExitCode: true},
		},
		{
			name: "missing session",
			err:  tmuxErr("tmux list-panes", "can't find session: gone"),
			want: RuntimeStatus{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRunner()
			f.outputs["list-panes"] = tt.output
			if tt.err != nil {
				f.errs["list-panes"] = tt.err
			}

			if got := newTestManager(f).Status("work"); got != tt.want {
				t.Errorf("Status() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateName(t *testing.T) {
	m := newTestManager(newFakeRunner())
	m.cachedProjectName = "webapp"

	t.Run("base name when free", func(t *testing.T) {
		if got := m.GenerateName(nil); got != "webapp" {
			t.Errorf("GenerateName() = %q, want webapp", got)
		}
	})

	t.Run("numeric suffix on collision", func(t *testing.T) {
		existing := []Info{{Name: "webapp"}, {Name: "webapp-2"}}
		if got := m.GenerateName(existing); got != "webapp-3" {
			t.Errorf("GenerateName() = %q, want webapp-3", got)
		}
	})

	t.Run("timestamp when suffixes exhausted", func(t *testing.T) {
		existing := []Info{{Name: "webapp"}}
		for i := 2; i < 100; i++ {
			existing = append(existing, Info{Name: "webapp-" + strconv.Itoa(i)})
		}
		got := m.GenerateName(existing)
		if !strings.HasPrefix(got, "webapp-") || len(got) <= len("webapp-99") {
			t.Errorf("GenerateName() = %q, want timestamp fallback", got)
		}
	})
}

func TestDryRunSkipsMutations(t *testing.T) {
	f := newFakeRunner()
	m := NewManager(WithRunner(f), WithDryRun(true))

	if err := m.Create("work"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := m.Kill("work"); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("dry run executed %d tmux commands: %v", len(f.calls), f.calls)
	}

	// Reads still run.
	f.outputs["list-sessions"] = "work::0::1\n"
	if _, err := m.List(SortName); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !f.called("list-sessions") {
		t.Error("dry run suppressed a read-only command")
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in   string
		want SortMode
	}{
		{"agents", SortAgents},
		{"ACTIVITY", SortActivity},
		{" name ", SortName},
		{"windows", SortWindows},
		{"bogus", DefaultSortMode},
		{"", DefaultSortMode},
	}
	for _, tt := range tests {
		if got := ParseSortMode(tt.in); got != tt.want {
			t.Errorf("ParseSortMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortModeCycle(t *testing.T) {
	mode := SortAgents
	seen := map[SortMode]bool{}
	for range 4 {
		if seen[mode] {
			t.Fatalf("cycle repeated %q before covering all modes", mode)
		}
		seen[mode] = true
		mode = mode.Next()
	}
	if mode != SortAgents {
		t.Errorf("cycle did not return to start, got %q", mode)
	}
}
