package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks that set values are usable. Empty values are allowed and
// fall back to defaults.
func (c *Config) Validate() error {
	var errs ValidationErrors

	for _, f := range []struct {
		name  string
		value string
	}{
		{"baseDir", c.BaseDir},
		{"schema", c.Schema},
		{"descriptions", c.Descriptions},
		{"corpusDir", c.CorpusDir},
		{"template", c.Template},
	} {
		if f.value != "" && strings.TrimSpace(f.value) == "" {
			errs = append(errs, ValidationError{
				Field:   f.name,
				Message: "must not be empty or whitespace only",
			})
		}
	}

	if err := ValidatePattern(c.Pattern); err != nil {
		errs = append(errs, *err.(*ValidationError))
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidatePattern checks that pattern is a well-formed glob without a
// directory component.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	if _, err := filepath.Match(pattern, ""); err != nil {
		return &ValidationError{
			Field:   "pattern",
			Message: fmt.Sprintf("invalid glob %q: %v", pattern, err),
		}
	}

	if strings.ContainsRune(pattern, '/') || strings.ContainsRune(pattern, filepath.Separator) {
		return &ValidationError{
			Field:   "pattern",
			Message: "must match file names, not paths",
		}
	}

	return nil
}
