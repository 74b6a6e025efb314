package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

// Config represents the complete cogniload configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

// StoreConfig controls where engine state is persisted
type StoreConfig struct {
	// Backend selects the medium: "file" (default), "sqlite" or "memory"
	Backend string `mapstructure:"backend"`
	// Dir is the data directory. Empty means DataDir().
	Dir string `mapstructure:"dir"`
	// Watch reloads the store when another process writes it (file backend only)
	Watch bool `mapstructure:"watch"`
	// SeedDemo fills an empty store with the example task list on first run
	SeedDemo bool `mapstructure:"seed_demo"`
}

// ForecastConfig tunes the forecast views
type ForecastConfig struct {
	// OverloadThreshold is the per-day load above which a day is flagged (default: 600)
	OverloadThreshold float64 `mapstructure:"overload_threshold"`
	// Days is the length of the week view (default: 7, max: 31)
	Days int `mapstructure:"days"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// OutputConfig controls how commands render
type OutputConfig struct {
	// Color enables lipgloss styling when stdout is a terminal (default: true)
	Color bool `mapstructure:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:  "file",
			Dir:      "", // Empty means use DataDir()
			Watch:    false,
			SeedDemo: true,
		},
		Forecast: ForecastConfig{
			OverloadThreshold: 600,
			Days:              7,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Store defaults
	viper.SetDefault("store.backend", defaults.Store.Backend)
	viper.SetDefault("store.dir", defaults.Store.Dir)
	viper.SetDefault("store.watch", defaults.Store.Watch)
	viper.SetDefault("store.seed_demo", defaults.Store.SeedDemo)

	// Forecast defaults
	viper.SetDefault("forecast.overload_threshold", defaults.Forecast.OverloadThreshold)
	viper.SetDefault("forecast.days", defaults.Forecast.Days)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	// Output defaults
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
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

// ResolvedDir returns the data directory the store should use.
func (c *StoreConfig) ResolvedDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return DataDir()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cogniload")
	}
	// Fall back to ~/.config/cogniload
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cogniload"
	}
	return filepath.Join(home, ".config", "cogniload")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the default directory for persisted state and logs
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cogniload")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cogniload"
	}
	return filepath.Join(home, ".local", "share", "cogniload")
}

// ValidBackends returns the list of valid store backends
func ValidBackends() []string {
	return []string{"file", "sqlite", "memory"}
}

// IsValidBackend checks if the given backend is valid
func IsValidBackend(backend string) bool {
	return slices.Contains(ValidBackends(), backend)
}
