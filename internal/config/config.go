package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tmuxdash configuration
type Config struct {
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Tmux      TmuxConfig      `mapstructure:"tmux"`
	Lock      LockConfig      `mapstructure:"lock"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Headless  HeadlessConfig  `mapstructure:"headless"`
}

// DashboardConfig controls the terminal UI behavior
type DashboardConfig struct {
	// PreviewLines is the number of pane lines captured for the preview panel
	PreviewLines int `mapstructure:"preview_lines"`
	// SortMode is the initial session sort order
	// Options: "activity", "name", "agents", "windows"
	SortMode string `mapstructure:"sort_mode"`
	// Color controls colored output: "auto", "always", "never"
	// "auto" enables color only when stdout is a terminal
	Color string `mapstructure:"color"`
	// RefreshIntervalMs is how often the dashboard re-reads the session list
	RefreshIntervalMs int `mapstructure:"refresh_interval_ms"`
	// Theme is the color theme for the dashboard (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
}

// TmuxConfig controls how tmux is invoked
type TmuxConfig struct {
	// DryRun logs mutating tmux commands instead of executing them
	DryRun bool `mapstructure:"dry_run"`
	// CommandTimeoutMs bounds every tmux invocation (default: 5000)
	CommandTimeoutMs int `mapstructure:"command_timeout_ms"`
}

// LockConfig controls single-instance coordination
type LockConfig struct {
	// TimeoutMs is how long to wait for a holder to release before giving up.
	// 0 fails immediately when another instance holds the lock.
	TimeoutMs int `mapstructure:"timeout_ms"`
	// OnConflict is what to do when another instance holds the lock
	// Options: "exit" (print diagnostics and exit 1), "fail" (return an error)
	OnConflict string `mapstructure:"on_conflict"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated log files (default: false)
	Compress bool `mapstructure:"compress"`
}

// HeadlessConfig controls `tmuxdash run`: agent sessions launched detached
// with their output wrapped into JSONL files under the state directory.
type HeadlessConfig struct {
	// DefaultAgent is the agent used when --agent is not given.
	// Must be a key of Agents.
	DefaultAgent string `mapstructure:"default_agent"`
	// Agents maps an agent name to its shell command template. Templates
	// may use {instruction}, {output}, {cwd}, and {agent}; each expands to
	// a shell-quoted value.
	Agents map[string]string `mapstructure:"agents"`
}

// PathsConfig controls where tmuxdash stores runtime state
type PathsConfig struct {
	// StateDir holds the lock, pid file, and log. If empty, defaults to
	// $XDG_STATE_HOME/tmuxdash or ~/.local/state/tmuxdash.
	// Supports ~ for home directory expansion.
	StateDir string `mapstructure:"state_dir"`
}

// ResolveStateDir returns the state directory with ~ expanded.
// An empty StateDir returns "" so callers fall back to the XDG default.
func (p *PathsConfig) ResolveStateDir() string {
	path := p.StateDir
	if path == "" {
		return ""
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	} else if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			PreviewLines:      10,
			SortMode:          "agents",
			Color:             "auto",
			RefreshIntervalMs: 2000,
			Theme:             "default",
		},
		Tmux: TmuxConfig{
			DryRun:           false,
			CommandTimeoutMs: 5000,
		},
		Lock: LockConfig{
			TimeoutMs:  0, // Fail fast: a second dashboard should not wait
			OnConflict: "exit",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			Compress:   false,
		},
		Paths: PathsConfig{
			StateDir: "", // Empty means use the XDG state directory
		},
		Headless: HeadlessConfig{
			DefaultAgent: "codex",
			Agents: map[string]string{
				"codex":  "codex exec --full-auto {instruction} 2>&1 | tmuxdash wrap-output > {output}",
				"claude": "claude -p {instruction} 2>&1 | tmuxdash wrap-output > {output}",
			},
		},
	}
}

// RefreshInterval returns the dashboard refresh interval as a time.Duration
func (c *DashboardConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMs) * time.Millisecond
}

// CommandTimeout returns the tmux command timeout as a time.Duration
func (c *TmuxConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMs) * time.Millisecond
}

// Timeout returns the lock acquisition timeout as a time.Duration
func (c *LockConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Dashboard defaults
	viper.SetDefault("dashboard.preview_lines", defaults.Dashboard.PreviewLines)
	viper.SetDefault("dashboard.sort_mode", defaults.Dashboard.SortMode)
	viper.SetDefault("dashboard.color", defaults.Dashboard.Color)
	viper.SetDefault("dashboard.refresh_interval_ms", defaults.Dashboard.RefreshIntervalMs)
	viper.SetDefault("dashboard.theme", defaults.Dashboard.Theme)

	// Tmux defaults
	viper.SetDefault("tmux.dry_run", defaults.Tmux.DryRun)
	viper.SetDefault("tmux.command_timeout_ms", defaults.Tmux.CommandTimeoutMs)

	// Lock defaults
	viper.SetDefault("lock.timeout_ms", defaults.Lock.TimeoutMs)
	viper.SetDefault("lock.on_conflict", defaults.Lock.OnConflict)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	// Paths defaults
	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)

	// Headless defaults
	viper.SetDefault("headless.default_agent", defaults.Headless.DefaultAgent)
	viper.SetDefault("headless.agents", defaults.Headless.Agents)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tmuxdash")
	}
	// Fall back to ~/.config/tmuxdash
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tmuxdash"
	}
	return filepath.Join(home, ".config", "tmuxdash")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
