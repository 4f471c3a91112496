package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/cctok/internal/logging"
	"github.com/yaklabco/cctok/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "frontend").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
// Empty fields are valid; they leave the lower layer's value in place.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Frontend != "" && !cfg.Frontend.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "frontend",
			Value:   cfg.Frontend,
			Message: fmt.Sprintf("invalid frontend %q; must be one of: builtin, clang", cfg.Frontend),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, msgpack, html", cfg.Format),
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field: "log_level",
				Value: cfg.LogLevel,
				Message: fmt.Sprintf("invalid log level %q; must be one of: %s",
					cfg.LogLevel, strings.Join(logging.Levels(), ", ")),
			})
		}
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Frontend != config.FrontendClang && cfg.ClangPath != "" && cfg.ClangPath != config.NewConfig().ClangPath {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "clang_path",
			Value:   cfg.ClangPath,
			Message: "clang_path has no effect unless frontend is clang",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// Each "**"-separated piece must be a valid filepath.Match pattern.
		for _, piece := range strings.Split(pattern, "**") {
			if _, err := filepath.Match(piece, ""); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("ignore[%d]", i),
					Value:   pattern,
					Message: fmt.Sprintf("invalid glob pattern: %v", err),
				})
				break
			}
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
