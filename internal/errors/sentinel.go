package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrSchemaLoad indicates the schema file could not be read or parsed.
	ErrSchemaLoad = errors.New("schema load error")

	// ErrDescriptionLoad indicates the field descriptions file could not be read or parsed.
	ErrDescriptionLoad = errors.New("description load error")

	// ErrMismatch indicates the schema and the field descriptions disagree.
	ErrMismatch = errors.New("schema/description mismatch")

	// ErrCorpusValidation indicates a description document failed validation.
	ErrCorpusValidation = errors.New("corpus validation error")

	// ErrTemplateWrite indicates the template file could not be written.
	ErrTemplateWrite = errors.New("template write error")

	// ErrTemplateDrift indicates the template on disk differs from a fresh render.
	ErrTemplateDrift = errors.New("template out of date")
)
