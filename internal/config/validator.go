package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "planning.max_engineers")
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

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePlanning()...)
	errors = append(errors, c.validateRouting()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validatePlanning validates the PlanningConfig
func (c *Config) validatePlanning() []ValidationError {
	var errors []ValidationError

	const minEngineers = 1
	const maxEngineers = 50

	if c.Planning.MaxEngineers < minEngineers {
		errors = append(errors, ValidationError{
			Field:   "planning.max_engineers",
			Value:   c.Planning.MaxEngineers,
			Message: fmt.Sprintf("must be at least %d", minEngineers),
		})
	}
	if c.Planning.MaxEngineers > maxEngineers {
		errors = append(errors, ValidationError{
			Field:   "planning.max_engineers",
			Value:   c.Planning.MaxEngineers,
			Message: fmt.Sprintf("exceeds maximum of %d", maxEngineers),
		})
	}

	errors = append(errors, c.validateHeuristics()...)

	return errors
}

// validateHeuristics validates the heuristic tables, including that every
// regex source actually compiles
func (c *Config) validateHeuristics() []ValidationError {
	var errors []ValidationError

	h := c.Planning.Heuristics

	if h.FilePattern == "" {
		errors = append(errors, ValidationError{
			Field:   "planning.heuristics.file_pattern",
			Value:   h.FilePattern,
			Message: "cannot be empty",
		})
	} else if _, err := regexp.Compile(h.FilePattern); err != nil {
		errors = append(errors, ValidationError{
			Field:   "planning.heuristics.file_pattern",
			Value:   h.FilePattern,
			Message: fmt.Sprintf("invalid regex: %v", err),
		})
	}

	for i, src := range h.MultiFilePatterns {
		if _, err := regexp.Compile(src); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("planning.heuristics.multi_file_patterns[%d]", i),
				Value:   src,
				Message: fmt.Sprintf("invalid regex: %v", err),
			})
		}
	}

	if h.MinSignificantTokenLen < 1 {
		errors = append(errors, ValidationError{
			Field:   "planning.heuristics.min_significant_token_len",
			Value:   h.MinSignificantTokenLen,
			Message: "must be at least 1",
		})
	}

	if h.OverlapThreshold < 1 {
		errors = append(errors, ValidationError{
			Field:   "planning.heuristics.overlap_threshold",
			Value:   h.OverlapThreshold,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateRouting validates the RoutingConfig
func (c *Config) validateRouting() []ValidationError {
	var errors []ValidationError

	models := map[string]string{
		"routing.models.simple":  c.Routing.Models.Simple,
		"routing.models.medium":  c.Routing.Models.Medium,
		"routing.models.complex": c.Routing.Models.Complex,
	}
	for field, model := range models {
		if strings.TrimSpace(model) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   model,
				Message: "cannot be empty",
			})
		}
	}

	for taskID, model := range c.Routing.Overrides {
		if strings.TrimSpace(model) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("routing.overrides[%s]", taskID),
				Value:   model,
				Message: "override model cannot be empty",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
