package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "forecast.days")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// maxForecastDays bounds the week view
const maxForecastDays = 31

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Store config
	errors = append(errors, c.validateStore()...)

	// Validate Forecast config
	errors = append(errors, c.validateForecast()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateStore validates the StoreConfig
func (c *Config) validateStore() []ValidationError {
	var errors []ValidationError

	if c.Store.Backend != "" && !IsValidBackend(c.Store.Backend) {
		errors = append(errors, ValidationError{
			Field:   "store.backend",
			Value:   c.Store.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}

	if c.Store.Dir != "" {
		if info, err := os.Stat(c.Store.Dir); err == nil && !info.IsDir() {
			errors = append(errors, ValidationError{
				Field:   "store.dir",
				Value:   c.Store.Dir,
				Message: "must be a directory",
			})
		}
	}

	if c.Store.Watch && c.Store.Backend != "" && c.Store.Backend != "file" {
		errors = append(errors, ValidationError{
			Field:   "store.watch",
			Value:   c.Store.Watch,
			Message: "is only supported by the file backend",
		})
	}

	return errors
}

// validateForecast validates the ForecastConfig
func (c *Config) validateForecast() []ValidationError {
	var errors []ValidationError

	if c.Forecast.OverloadThreshold <= 0 {
		errors = append(errors, ValidationError{
			Field:   "forecast.overload_threshold",
			Value:   c.Forecast.OverloadThreshold,
			Message: "must be positive",
		})
	}

	if c.Forecast.Days < 1 || c.Forecast.Days > maxForecastDays {
		errors = append(errors, ValidationError{
			Field:   "forecast.days",
			Value:   c.Forecast.Days,
			Message: fmt.Sprintf("must be between 1 and %d", maxForecastDays),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
