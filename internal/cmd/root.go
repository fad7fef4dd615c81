package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmuxdash/tmuxdash/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tmuxdash",
	Short: "Interactive tmux session dashboard",
	Long: `tmuxdash is a terminal dashboard for tmux sessions: list, preview,
create, rename, and kill sessions, then attach to one.

Only one dashboard runs per user. A second invocation reports the running
instance instead of fighting it for the terminal.`,
	RunE: runDashboard,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tmuxdash/config.yaml)")
	rootCmd.PersistentFlags().String("state-dir", "", "directory for lock, pid file, and log (default is $XDG_STATE_HOME/tmuxdash)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "log mutating tmux commands instead of running them")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("paths.state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	_ = viper.BindPFlag("tmux.dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tmuxdash")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TMUXDASH")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TMUXDASH_LOCK_TIMEOUT_MS for lock.timeout_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
