// Package corpus validates a directory of data set description documents
// against a schema.
package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// DefaultPattern selects description documents inside the corpus directory.
const DefaultPattern = "*.yaml"

// Options configures a Validator.
type Options struct {
	// Out receives one "Validating <path>..." line per file. Defaults to os.Stdout.
	Out io.Writer

	// Pattern is the glob used to discover documents. Defaults to DefaultPattern.
	Pattern string

	// CollectAll keeps validating after the first failing document and
	// returns every violation as errors.CorpusErrors.
	CollectAll bool
}

// Report summarises a validation run.
type Report struct {
	// Files lists the files validated, in order.
	Files []string

	// Documents counts the YAML documents checked across all files.
	Documents int

	// Errors holds every violation when Options.CollectAll is set.
	Errors oerrors.CorpusErrors
}

// Validator checks description documents against a schema.
type Validator struct {
	schema   *schema.Schema
	compiled *compiled
	// order maps field names to their schema position.
	order map[string]int
	opts  Options
}

// New creates a Validator for s. It fails when the document pattern is not
// a valid glob or the schema cannot be compiled.
func New(s *schema.Schema, opts Options) (*Validator, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if _, err := filepath.Match(opts.Pattern, ""); err != nil {
		return nil, invalidPattern(opts.Pattern, err)
	}

	c, err := compile(s)
	if err != nil {
		return nil, &oerrors.SchemaLoadError{Path: s.Source, Message: "schema cannot be used for validation", Cause: err}
	}

	order := make(map[string]int, s.Len())
	for i, name := range s.Names() {
		order[name] = i
	}
	return &Validator{schema: s, compiled: c, order: order, opts: opts}, nil
}

func invalidPattern(pattern string, err error) *oerrors.CorpusValidationError {
	return &oerrors.CorpusValidationError{
		File:    pattern,
		Kind:    oerrors.UnreadableDocument,
		Message: "invalid document pattern",
		Cause:   err,
	}
}

// Discover returns the documents in dir matching the pattern, sorted lexicographically.
func (v *Validator) Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &oerrors.CorpusValidationError{
			File:    dir,
			Kind:    oerrors.UnreadableDocument,
			Message: "corpus directory not readable",
			Cause:   err,
		}
	}
	if !info.IsDir() {
		return nil, &oerrors.CorpusValidationError{
			File:    dir,
			Kind:    oerrors.UnreadableDocument,
			Message: "corpus path is not a directory",
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, v.opts.Pattern))
	if err != nil {
		return nil, invalidPattern(v.opts.Pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// ValidateDir validates every document discovered in dir.
func (v *Validator) ValidateDir(ctx context.Context, dir string) (*Report, error) {
	files, err := v.Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		output.Warn("no description documents found", "dir", dir, "pattern", v.opts.Pattern)
	}
	return v.ValidateFiles(ctx, files)
}

// ValidateFiles validates the given files in the order provided.
// Without CollectAll it returns the first violation of the first failing file.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fmt.Fprintf(v.opts.Out, "Validating %s...\n", path)

		docs, errs := v.ValidateFile(path)
		report.Files = append(report.Files, path)
		report.Documents += docs

		if len(errs) == 0 {
			continue
		}
		if !v.opts.CollectAll {
			return report, errs[0]
		}
		report.Errors = append(report.Errors, errs...)
	}

	if len(report.Errors) > 0 {
		return report, report.Errors
	}
	return report, nil
}

// ValidateFile validates every YAML document in path. It returns the number
// of documents checked and the violations found.
func (v *Validator) ValidateFile(path string) (int, []*oerrors.CorpusValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, []*oerrors.CorpusValidationError{{
			File:    path,
			Kind:    oerrors.UnreadableDocument,
			Message: "reading document",
			Cause:   err,
		}}
	}

	var roots []*yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return len(roots), []*oerrors.CorpusValidationError{{
				File:    path,
				Kind:    oerrors.UnreadableDocument,
				Message: "malformed YAML",
				Cause:   err,
			}}
		}
		var root *yaml.Node
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			root = doc.Content[0]
		}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		// an empty file is an empty document
		roots = append(roots, nil)
	}

	var errs []*oerrors.CorpusValidationError
	for i, root := range roots {
		docIndex := 0
		if len(roots) > 1 {
			docIndex = i + 1
		}
		for _, viol := range v.ValidateDocument(root) {
			errs = append(errs, &oerrors.CorpusValidationError{
				File:     path,
				Document: docIndex,
				Field:    viol.Field,
				Line:     viol.Line,
				Kind:     viol.Kind,
				Message:  viol.Message,
			})
		}
	}

	output.Debug("document checked", "path", path, "documents", len(roots), "violations", len(errs))
	return len(roots), errs
}
