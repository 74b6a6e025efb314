package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Iron-Ham/cogniload/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify cogniload configuration",
	Long: `View or modify cogniload configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  cogniload config set store.backend sqlite
  cogniload config set forecast.overload_threshold 450

Valid keys:
  store.backend               - Storage medium (file, sqlite, memory)
  store.dir                   - Data directory
  store.watch                 - Reload when other processes write (true/false)
  store.seed_demo             - Seed example tasks on first run (true/false)
  forecast.overload_threshold - Per-day load that triggers an insight
  forecast.days               - Days shown by 'cogniload week'
  logging.enabled             - Write cogniload.log in the data directory (true/false)
  logging.level               - debug, info, warn, error
  output.color                - Style output on terminals (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cogniload/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	if jsonOutput {
		return writeJSON(out, cfg)
	}

	_, _ = fmt.Fprintln(out, "Current configuration:")
	_, _ = fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		_, _ = fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		_, _ = fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	_, _ = fmt.Fprintln(out)

	// Store settings
	_, _ = fmt.Fprintln(out, "store:")
	_, _ = fmt.Fprintf(out, "  backend: %s\n", cfg.Store.Backend)
	_, _ = fmt.Fprintf(out, "  dir: %s\n", cfg.Store.ResolvedDir())
	_, _ = fmt.Fprintf(out, "  watch: %v\n", cfg.Store.Watch)
	_, _ = fmt.Fprintf(out, "  seed_demo: %v\n", cfg.Store.SeedDemo)

	// Forecast settings
	_, _ = fmt.Fprintln(out, "forecast:")
	_, _ = fmt.Fprintf(out, "  overload_threshold: %g\n", cfg.Forecast.OverloadThreshold)
	_, _ = fmt.Fprintf(out, "  days: %d\n", cfg.Forecast.Days)

	// Logging settings
	_, _ = fmt.Fprintln(out, "logging:")
	_, _ = fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	_, _ = fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)

	// Output settings
	_, _ = fmt.Fprintln(out, "output:")
	_, _ = fmt.Fprintf(out, "  color: %v\n", cfg.Output.Color)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"store.backend":               "string",
		"store.dir":                   "string",
		"store.watch":                 "bool",
		"store.seed_demo":             "bool",
		"forecast.overload_threshold": "float",
		"forecast.days":               "int",
		"logging.enabled":             "bool",
		"logging.level":               "string",
		"output.color":                "bool",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'cogniload config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "string":
		if key == "store.backend" && !config.IsValidBackend(value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidBackends(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	case "float":
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected number", key)
		}
		typedValue = floatVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Reject combinations that would leave the config unusable
	if _, err := config.Load(); err != nil {
		return err
	}

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'cogniload config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Cogniload Configuration

# Where engine state lives
store:
  # Storage medium: file, sqlite or memory
  backend: file
  # Data directory (empty means $XDG_DATA_HOME/cogniload)
  dir: ""
  # Reload when another cogniload process writes the store (file backend only)
  watch: false
  # Fill an empty store with example tasks on first run
  seed_demo: true

# Forecast views
forecast:
  # Per-day load above which a day is flagged as overloaded
  overload_threshold: 600
  # Number of days shown by 'cogniload week'
  days: 7

# Log file in the data directory
logging:
  enabled: true
  # debug, info, warn, error
  level: info

output:
  # Style output when stdout is a terminal
  color: true
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize cogniload's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		_, _ = fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		_, _ = fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	_, _ = fmt.Fprintln(out, "\nSearch paths:")
	_, _ = fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	_, _ = fmt.Fprintf(out, "  2. $HOME/.config/cogniload/config.yaml\n")
	_, _ = fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	_, _ = fmt.Fprintln(out, "\nEnvironment variables: COGNILOAD_* (e.g., COGNILOAD_STORE_BACKEND)")

	return nil
}
