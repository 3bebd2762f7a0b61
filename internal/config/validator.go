package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "planner.cache_ttl_hours")
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

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateProvider()...)
	errors = append(errors, c.validatePlanner()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateProvider validates the ProviderConfig
func (c *Config) validateProvider() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidBackends(), c.Provider.Backend) {
		errors = append(errors, ValidationError{
			Field:   "provider.backend",
			Value:   c.Provider.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}
	if c.Provider.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "provider.timeout_seconds",
			Value:   c.Provider.TimeoutSeconds,
			Message: "must not be negative",
		})
	}

	return errors
}

// validatePlanner validates the PlannerConfig
func (c *Config) validatePlanner() []ValidationError {
	var errors []ValidationError

	if c.Planner.CacheTTLHours <= 0 {
		errors = append(errors, ValidationError{
			Field:   "planner.cache_ttl_hours",
			Value:   c.Planner.CacheTTLHours,
			Message: "must be positive",
		})
	}
	if c.Planner.CompletionThreshold <= 0 || c.Planner.CompletionThreshold > 1 {
		errors = append(errors, ValidationError{
			Field:   "planner.completion_threshold",
			Value:   c.Planner.CompletionThreshold,
			Message: "must be in (0, 1]",
		})
	}
	if c.Planner.MaxPromptTurns <= 0 {
		errors = append(errors, ValidationError{
			Field:   "planner.max_prompt_turns",
			Value:   c.Planner.MaxPromptTurns,
			Message: "must be positive",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
