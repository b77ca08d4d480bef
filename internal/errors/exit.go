package errors

import "errors"

// Exit codes returned by the dsdcheck binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitLoadError indicates the schema or descriptions could not be loaded.
	ExitLoadError = 2

	// ExitMismatch indicates schema fields and descriptions disagree.
	ExitMismatch = 3

	// ExitValidationError indicates a description document failed validation.
	ExitValidationError = 4

	// ExitTemplateError indicates the template could not be written or is stale.
	ExitTemplateError = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed reports whether the command layer already displayed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrSchemaLoad), errors.Is(err, ErrDescriptionLoad):
		return ExitLoadError
	case errors.Is(err, ErrMismatch):
		return ExitMismatch
	case errors.Is(err, ErrCorpusValidation):
		return ExitValidationError
	case errors.Is(err, ErrTemplateWrite), errors.Is(err, ErrTemplateDrift):
		return ExitTemplateError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitLoadError:
		return "Load Error"
	case ExitMismatch:
		return "Description Mismatch"
	case ExitValidationError:
		return "Validation Error"
	case ExitTemplateError:
		return "Template Error"
	default:
		return "Unknown"
	}
}
