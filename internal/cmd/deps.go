package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/tmuxdash/tmuxdash/internal/config"
	"github.com/tmuxdash/tmuxdash/internal/errors"
	"github.com/tmuxdash/tmuxdash/internal/headless"
	"github.com/tmuxdash/tmuxdash/internal/instancelock"
	"github.com/tmuxdash/tmuxdash/internal/logging"
	"github.com/tmuxdash/tmuxdash/internal/session"
	"github.com/tmuxdash/tmuxdash/internal/tmux"
)

// deps bundles the wired-up collaborators every subcommand needs.
type deps struct {
	cfg      *config.Config
	logger   *logging.Logger
	manager  *session.Manager
	lock     *instancelock.Coordinator
	stateDir string
}

// buildDeps loads configuration and constructs the logger, session manager,
// and lock coordinator. The caller owns Close.
func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	paths, err := resolveLockPaths(cfg)
	if err != nil {
		return nil, err
	}

	logger, err := buildLogger(cfg, paths)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(
		session.WithLogger(logger.WithComponent("tmux")),
		session.WithTimeout(cfg.Tmux.CommandTimeout()),
		session.WithDryRun(cfg.Tmux.DryRun),
	)

	lock := instancelock.New(paths, instancelock.WithLogger(logger.WithComponent("lock")))

	return &deps{
		cfg:      cfg,
		logger:   logger,
		manager:  manager,
		lock:     lock,
		stateDir: filepath.Dir(paths.LockFile),
	}, nil
}

// headlessRegistry returns the registry for headless run metadata, stored
// under the same state directory as the lock and log.
func (d *deps) headlessRegistry() *headless.Registry {
	root := filepath.Join(d.stateDir, "headless")
	return headless.NewRegistry(root, filepath.Join(root, "output"))
}

// resolveLockPaths maps the configured state directory onto lock and pid
// file paths. An empty setting defers to TMUXDASH_STATE_DIR and the XDG
// default inside ResolvePaths.
func resolveLockPaths(cfg *config.Config) (instancelock.Paths, error) {
	stateDir := cfg.Paths.ResolveStateDir()
	if stateDir == "" {
		return instancelock.ResolvePaths("", "")
	}
	return instancelock.ResolvePaths(
		filepath.Join(stateDir, "lock"),
		filepath.Join(stateDir, "pid"),
	)
}

func buildLogger(cfg *config.Config, paths instancelock.Paths) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}

	logPath := filepath.Join(filepath.Dir(paths.LockFile), logging.LogFileName)
	return logging.NewLoggerWithRotation(logPath, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
}

// Close releases resources held by the dependency bundle.
func (d *deps) Close() {
	_ = d.logger.Close()
}

// requireTmux fails fast with a user-facing error when tmux is missing.
func requireTmux() error {
	if !tmux.IsInstalled() {
		return errors.ErrTmuxNotInstalled
	}
	return nil
}

// conflictPolicy maps the configured conflict action to a lock policy.
func conflictPolicy(cfg *config.Config) instancelock.ConflictPolicy {
	if cfg.Lock.OnConflict == "fail" {
		return instancelock.RaiseOnConflict
	}
	return instancelock.TerminateOnConflict
}
