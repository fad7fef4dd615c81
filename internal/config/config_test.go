package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dashboard.PreviewLines != 10 {
		t.Errorf("PreviewLines = %d, want 10", cfg.Dashboard.PreviewLines)
	}
	if cfg.Dashboard.SortMode != "agents" {
		t.Errorf("SortMode = %q, want agents", cfg.Dashboard.SortMode)
	}
	if cfg.Dashboard.Color != "auto" {
		t.Errorf("Color = %q, want auto", cfg.Dashboard.Color)
	}
	if cfg.Lock.TimeoutMs != 0 {
		t.Errorf("Lock.TimeoutMs = %d, want 0", cfg.Lock.TimeoutMs)
	}
	if cfg.Lock.OnConflict != "exit" {
		t.Errorf("Lock.OnConflict = %q, want exit", cfg.Lock.OnConflict)
	}
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled = false, want true")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default() does not validate: %v", ValidationErrors(errs))
	}
}

func TestSetDefaultsAndLoad(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if cfg.Dashboard.PreviewLines != want.Dashboard.PreviewLines {
		t.Errorf("PreviewLines = %d, want %d", cfg.Dashboard.PreviewLines, want.Dashboard.PreviewLines)
	}
	if cfg.Tmux.CommandTimeoutMs != want.Tmux.CommandTimeoutMs {
		t.Errorf("CommandTimeoutMs = %d, want %d", cfg.Tmux.CommandTimeoutMs, want.Tmux.CommandTimeoutMs)
	}
	if cfg.Logging.MaxSizeMB != want.Logging.MaxSizeMB {
		t.Errorf("MaxSizeMB = %d, want %d", cfg.Logging.MaxSizeMB, want.Logging.MaxSizeMB)
	}
	if cfg.Headless.DefaultAgent != want.Headless.DefaultAgent {
		t.Errorf("Headless.DefaultAgent = %q, want %q", cfg.Headless.DefaultAgent, want.Headless.DefaultAgent)
	}
	if cfg.Headless.Agents["codex"] == "" {
		t.Error("headless.agents defaults did not survive Load")
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
dashboard:
  preview_lines: 25
  sort_mode: name
lock:
  timeout_ms: 3000
  on_conflict: fail
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Dashboard.PreviewLines != 25 {
		t.Errorf("PreviewLines = %d, want 25", cfg.Dashboard.PreviewLines)
	}
	if cfg.Dashboard.SortMode != "name" {
		t.Errorf("SortMode = %q, want name", cfg.Dashboard.SortMode)
	}
	if cfg.Lock.TimeoutMs != 3000 {
		t.Errorf("Lock.TimeoutMs = %d, want 3000", cfg.Lock.TimeoutMs)
	}
	if cfg.Lock.OnConflict != "fail" {
		t.Errorf("Lock.OnConflict = %q, want fail", cfg.Lock.OnConflict)
	}
	// Untouched sections keep defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("dashboard.sort_mode", "random")
	viper.Set("lock.timeout_ms", -1)

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error for invalid config")
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("logging.max_size_mb", -5)

	cfg := Get()
	if cfg.Logging.MaxSizeMB != Default().Logging.MaxSizeMB {
		t.Errorf("Get() did not fall back to defaults on invalid config")
	}
}

func TestResolveStateDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"absolute unchanged", "/var/lib/tmuxdash", "/var/lib/tmuxdash"},
		{"tilde slash expands", "~/state/tmuxdash", filepath.Join(home, "state", "tmuxdash")},
		{"bare tilde expands", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PathsConfig{StateDir: tt.in}
			if got := p.ResolveStateDir(); got != tt.want {
				t.Errorf("ResolveStateDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("honors XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		if got, want := ConfigDir(), filepath.Join("/tmp/xdg-config", "tmuxdash"); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})

	t.Run("falls back to ~/.config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}
		if got, want := ConfigDir(), filepath.Join(home, ".config", "tmuxdash"); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()

	if got := cfg.Dashboard.RefreshInterval().Milliseconds(); got != int64(cfg.Dashboard.RefreshIntervalMs) {
		t.Errorf("RefreshInterval() = %dms, want %dms", got, cfg.Dashboard.RefreshIntervalMs)
	}
	if got := cfg.Tmux.CommandTimeout().Milliseconds(); got != int64(cfg.Tmux.CommandTimeoutMs) {
		t.Errorf("CommandTimeout() = %dms, want %dms", got, cfg.Tmux.CommandTimeoutMs)
	}
	if got := cfg.Lock.Timeout(); got != 0 {
		t.Errorf("Timeout() = %v, want 0", got)
	}
}
