package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/errors"
	"github.com/tmuxdash/tmuxdash/internal/headless"
	"github.com/tmuxdash/tmuxdash/internal/session"
	"github.com/tmuxdash/tmuxdash/internal/tmux"
)

var (
	runAgentFlag string
	runDirFlag   string
	runFileFlag  string
	runWaitFlag  time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [instruction]",
	Short: "Run an agent headlessly in a new tmux session",
	Long: `Launch an agent in a detached tmux session with an instruction. The
agent's output is wrapped into a JSONL file under the state directory
and the run is tracked so "tmuxdash runs" can report its fate.

The instruction is given inline or via --instruction-file. The agent's
command template comes from headless.agents in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().StringVarP(&runAgentFlag, "agent", "A", "", "agent to run (default is headless.default_agent)")
	runCmd.Flags().StringVarP(&runDirFlag, "dir", "d", "", "working directory for the agent (default is the current directory)")
	runCmd.Flags().StringVarP(&runFileFlag, "instruction-file", "f", "", "read the instruction from a file")
	runCmd.Flags().DurationVar(&runWaitFlag, "wait", 0, "wait up to this long for the agent to finish (0 returns immediately)")
	rootCmd.AddCommand(runCmd)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	instruction, err := resolveInstruction(args)
	if err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	dir, err := resolveRunDir(runDirFlag)
	if err != nil {
		return err
	}

	agent := strings.ToLower(strings.TrimSpace(runAgentFlag))
	if agent == "" {
		agent = d.cfg.Headless.DefaultAgent
	}
	template, ok := d.cfg.Headless.Agents[agent]
	if !ok {
		return errors.NewValidationError(fmt.Sprintf("unknown agent %q: configure it under headless.agents", agent))
	}

	registry := d.headlessRegistry()
	existing, err := d.manager.List(session.DefaultSortMode)
	if err != nil {
		return err
	}
	name := headlessName(agent, filepath.Base(dir), takenNames(existing, registry.LoadAll()))

	outputPath := registry.OutputPath(name)
	command, err := headless.BuildCommand(template, instruction, outputPath, dir, agent)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := d.manager.CreateWithCommand(name, command, dir); err != nil {
		return err
	}
	if d.cfg.Tmux.DryRun {
		fmt.Printf("started %s (dry run)\n", name)
		return nil
	}

	run := headless.NewSession(name, agent, instruction, dir, outputPath, command[len(command)-1])
	if err := registry.Record(run); err != nil {
		return err
	}
	d.logger.Info("headless run started", "session", name, "agent", agent, "dir", dir)

	pid := tmux.PanePID(name)
	if pid == 0 || !tmux.IsProcessAlive(pid) {
		// The agent may legitimately finish between launch and this probe,
		// so a dead pane is reported, not treated as a failure.
		fmt.Printf("started %s (agent already exited)\n", name)
	} else {
		fmt.Printf("started %s (pid %d), output: %s\n", name, pid, outputPath)
	}

	if runWaitFlag > 0 {
		return waitForRun(d, registry, run, pid)
	}
	return nil
}

// resolveInstruction returns the instruction text from the positional
// argument or --instruction-file, rejecting ambiguous or empty input.
func resolveInstruction(args []string) (string, error) {
	if len(args) == 1 && runFileFlag != "" {
		return "", errors.NewValidationError("give the instruction inline or with --instruction-file, not both")
	}
	if runFileFlag != "" {
		data, err := os.ReadFile(runFileFlag)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read instruction file %q", runFileFlag)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", errors.NewValidationError(fmt.Sprintf("instruction file %q is empty", runFileFlag))
		}
		return string(data), nil
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", errors.NewValidationError("an instruction is required")
	}
	return args[0], nil
}

// resolveRunDir validates the working directory for the agent, defaulting
// to the current directory.
func resolveRunDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to determine working directory")
		}
		dir = cwd
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", errors.NewValidationError(fmt.Sprintf("not a directory: %s", dir))
	}
	return dir, nil
}

// takenNames merges live tmux sessions with recorded runs so a new run
// never collides with either.
func takenNames(live []session.Info, recorded map[string]*headless.Session) map[string]bool {
	names := make(map[string]bool, len(live)+len(recorded))
	for _, s := range live {
		names[s.Name] = true
	}
	for name := range recorded {
		names[name] = true
	}
	return names
}

// headlessName builds "<agent>-<dir>" with a numeric suffix on collision.
func headlessName(agent, dirBase string, taken map[string]bool) string {
	if dirBase == "" || dirBase == "/" || dirBase == "." {
		dirBase = "headless"
	}
	base := agent + "-" + dirBase
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// waitForRun blocks until the agent process exits, then records its
// completion state.
func waitForRun(d *deps, registry *headless.Registry, run *headless.Session, pid int) error {
	if !tmux.WaitForProcessExit(pid, runWaitFlag) {
		return errors.NewTimeoutError("waiting for agent to finish", runWaitFlag)
	}

	st := d.manager.Status(run.Name)
	var code *int
	if st.HasExitCode {
		code = &st.ExitCode
	}
	run.MarkCompleted(code)
	if err := registry.Record(run); err != nil {
		return err
	}
	d.logger.Info("headless run completed", "session", run.Name, "exit_code", st.ExitCode)

	if code != nil {
		fmt.Printf("%s finished (exit %d)\n", run.Name, *code)
	} else {
		fmt.Printf("%s finished\n", run.Name)
	}
	if run.LastRawLine != "" {
		fmt.Printf("last output: %s\n", run.LastRawLine)
	}
	return nil
}
