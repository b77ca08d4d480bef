// Package errors defines the error taxonomy for dsdcheck.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path and line number (optional).
	Location string

	// Field is the schema field name (optional).
	Field string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// SchemaLoadError reports a schema file that is missing, unreadable or invalid.
type SchemaLoadError struct {
	Path    string
	Field   string
	Line    int
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	var b strings.Builder
	b.WriteString("loading schema ")
	b.WriteString(location(e.Path, e.Line))
	if e.Field != "" {
		fmt.Fprintf(&b, ": field `%s`", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *SchemaLoadError) Unwrap() []error {
	return unwrapWith(ErrSchemaLoad, e.Cause)
}

// DescriptionLoadError reports a field descriptions file that is missing or malformed.
type DescriptionLoadError struct {
	Path    string
	Field   string
	Line    int
	Message string
	Cause   error
}

func (e *DescriptionLoadError) Error() string {
	var b strings.Builder
	b.WriteString("loading field descriptions ")
	b.WriteString(location(e.Path, e.Line))
	if e.Field != "" {
		fmt.Fprintf(&b, ": field `%s`", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DescriptionLoadError) Unwrap() []error {
	return unwrapWith(ErrDescriptionLoad, e.Cause)
}

// MismatchKind names the direction in which schema and descriptions disagree.
type MismatchKind string

const (
	// UndescribedField is a schema field with no description.
	UndescribedField MismatchKind = "undescribed-field"

	// OrphanedDescription is a description whose field is not in the schema.
	OrphanedDescription MismatchKind = "orphaned-description"
)

// Mismatch is a single disagreement between schema and descriptions.
type Mismatch struct {
	Field string
	Kind  MismatchKind
}

func (m Mismatch) String() string {
	if m.Kind == UndescribedField {
		return fmt.Sprintf("field `%s` does not have a description", m.Field)
	}
	return fmt.Sprintf("field `%s` has a description but is not in the schema", m.Field)
}

// MismatchError lists every disagreement found between a schema and its descriptions.
type MismatchError struct {
	// DescriptionsPath is the descriptions file, used in the hint.
	DescriptionsPath string
	Mismatches       []Mismatch
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	b.WriteString("schema and field descriptions disagree:")
	for _, m := range e.Mismatches {
		b.WriteString("\n  ")
		b.WriteString(m.String())
	}
	if len(e.Fields(UndescribedField)) > 0 && e.DescriptionsPath != "" {
		fmt.Fprintf(&b, "\nPlease add the missing descriptions to file `%s`", e.DescriptionsPath)
	}
	return b.String()
}

// Fields returns the names of the mismatched fields of the given kind, in report order.
func (e *MismatchError) Fields(kind MismatchKind) []string {
	var names []string
	for _, m := range e.Mismatches {
		if m.Kind == kind {
			names = append(names, m.Field)
		}
	}
	return names
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// ViolationKind names the corpus rule a document broke.
type ViolationKind string

const (
	MissingRequiredField ViolationKind = "missing-required-field"
	TypeMismatch         ViolationKind = "type-mismatch"
	InvalidEnumValue     ViolationKind = "invalid-enum-value"
	UnexpectedField      ViolationKind = "unexpected-field"
	ConstraintViolation  ViolationKind = "constraint-violation"
	UnreadableDocument   ViolationKind = "unreadable-document"
)

// CorpusValidationError reports one rule violation in one description document.
type CorpusValidationError struct {
	File string

	// Document is the 1-based index of the YAML document within File.
	// Zero when the file holds a single document.
	Document int

	// Field is the dotted path of the offending value; empty for whole-file errors.
	Field   string
	Line    int
	Kind    ViolationKind
	Message string
	Cause   error
}

func (e *CorpusValidationError) Error() string {
	var b strings.Builder
	b.WriteString(location(e.File, e.Line))
	if e.Document > 0 {
		fmt.Fprintf(&b, " (document %d)", e.Document)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *CorpusValidationError) Unwrap() []error {
	return unwrapWith(ErrCorpusValidation, e.Cause)
}

// CorpusErrors aggregates violations across a whole corpus.
type CorpusErrors []*CorpusValidationError

func (e CorpusErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	files := make(map[string]struct{})
	for _, err := range e {
		files[err.File] = struct{}{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "corpus validation failed: %d error(s) in %d file(s):", len(e), len(files))
	for _, err := range e {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e CorpusErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, err := range e {
		errs = append(errs, err)
	}
	return errs
}

// TemplateWriteError reports a template destination that could not be written.
type TemplateWriteError struct {
	Path  string
	Cause error
}

func (e *TemplateWriteError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("writing template %s", e.Path)
	}
	return fmt.Sprintf("writing template %s: %v", e.Path, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TemplateWriteError) Unwrap() []error {
	return unwrapWith(ErrTemplateWrite, e.Cause)
}

func location(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}

func unwrapWith(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}
