package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tmuxdash/tmuxdash/internal/config"
	"github.com/tmuxdash/tmuxdash/internal/logging"
	"github.com/tmuxdash/tmuxdash/internal/session"
)

// App wraps the Bubble Tea program.
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new dashboard application.
func New(mgr *session.Manager, cfg *config.Config, logger *logging.Logger) *App {
	return &App{model: NewModel(mgr, cfg, logger)}
}

// Run starts the dashboard and blocks until the user exits. The returned
// Result tells the caller whether to attach to a session afterwards.
func (a *App) Run() (Result, error) {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	// SIGINT/SIGTERM quit the TUI cleanly so the terminal is restored and
	// deferred lock release still runs in the caller.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()
	signal.Stop(sigChan)
	if err != nil {
		return Result{}, err
	}

	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return Result{}, nil
}
