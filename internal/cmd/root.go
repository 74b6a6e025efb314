package cmd

import (
	"strings"

	"github.com/Iron-Ham/cogniload/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cogniload",
	Short: "Cognitive load scoring and forecasting for your task list",
	Long: `Cogniload turns a task list into a cognitive load score, spreads each
task's load over the days leading up to its deadline, and tells you how
today compares with your last check-in.

State is kept in a local store (a JSON file by default, or SQLite) so every
command sees the same tasks, completions and visit history.`,
	SilenceUsage: true,
}

var jsonOutput bool // Output as JSON

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cogniload/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().String("store-dir", "", "data directory (overrides store.dir)")
	_ = viper.BindPFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))

	rootCmd.PersistentFlags().String("backend", "", "store backend: file, sqlite or memory (overrides store.backend)")
	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("backend"))

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
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
		viper.AddConfigPath("$HOME/.config/cogniload")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COGNILOAD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COGNILOAD_STORE_BACKEND for store.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
