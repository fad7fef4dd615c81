package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/tui"
)

// runDashboard is the default action: take the instance lock, run the
// interactive dashboard, and attach to the chosen session after the TUI
// has released the terminal and the lock.
func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	d.logger.Info("starting dashboard",
		"pid", os.Getpid(),
		"dry_run", d.cfg.Tmux.DryRun,
	)

	var result tui.Result
	err = d.lock.WithInstanceLock(conflictPolicy(d.cfg), d.cfg.Lock.Timeout(), func() error {
		app := tui.New(d.manager, d.cfg, d.logger)
		res, runErr := app.Run()
		if runErr != nil {
			return runErr
		}
		result = res
		return nil
	})
	if err != nil {
		return err
	}

	// Attach outside the lock: the attached tmux client may outlive this
	// process by hours, and holding the lock that long would block every
	// future dashboard invocation.
	if result.Action == tui.ActionAttach && result.Session != "" {
		return attachSession(d, result.Session)
	}
	return nil
}

// attachSession replaces the dashboard with a tmux client on the chosen
// session, inheriting the terminal.
func attachSession(d *deps, name string) error {
	argv := d.manager.AttachCommand(name)
	d.logger.Info("attaching", "session", name, "command", argv)

	if d.cfg.Tmux.DryRun {
		return nil
	}

	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
