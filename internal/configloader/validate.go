package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/linguo/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.mode").
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

	// Warnings are non-fatal issues (e.g., missing data files).
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

// maxPercent is the upper bound of output.min_percent.
const maxPercent = 100

// Validate checks a configuration for errors and warnings. Unset fields are
// not checked; they take their defaults later.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateOutput(cfg, result)
	validateDetect(cfg, result)
	validateExcludePatterns(cfg, result)

	return result
}

func validateOutput(cfg *config.Config, result *ValidationResult) {
	out := cfg.Output

	if out.Format != "" && !out.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   out.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, yaml, html", out.Format),
		})
	}

	if out.Mode != "" && !out.Mode.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.mode",
			Value:   out.Mode,
			Message: fmt.Sprintf("invalid mode %q; must be one of: files, lines, bytes", out.Mode),
		})
	}

	if out.Color != "" && !out.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.color",
			Value:   out.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", out.Color),
		})
	}

	if out.MinPercent < 0 || out.MinPercent > maxPercent {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.min_percent",
			Value:   out.MinPercent,
			Message: "min_percent must be between 0 and 100",
		})
	}
}

func validateDetect(cfg *config.Config, result *ValidationResult) {
	if cfg.Detect.ContentLimit < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "detect.content_limit",
			Value:   cfg.Detect.ContentLimit,
			Message: "content_limit must be >= 0",
		})
	}

	files := []struct {
		field string
		path  string
	}{
		{"detect.catalog", cfg.Detect.Catalog},
		{"detect.heuristics", cfg.Detect.Heuristics},
		{"detect.model", cfg.Detect.Model},
		{"detect.filters", cfg.Detect.Filters},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   f.field,
				Value:   f.path,
				Message: fmt.Sprintf("data file %q is not readable; the built-in data will be used", f.path),
			})
		}
	}
}

// validateExcludePatterns checks that exclude patterns are valid globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("scan.exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
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
