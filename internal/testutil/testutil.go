// Package testutil provides test helpers for dsdcheck tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Conventional file names used by Project.
const (
	SchemaFile       = "data_set_description_schema.yaml"
	DescriptionsFile = "data_set_description_field_descriptions.yaml"
	CorpusDir        = "data_set_descriptions"
	TemplateFile     = "data_set_description_template.yaml"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ProjectOptions describes the files of a test project.
type ProjectOptions struct {
	Schema       string
	Descriptions string
	// Corpus maps document file names to their contents.
	Corpus map[string]string
}

// Project lays out a data roadmap directory in a temp dir and returns its root.
// The corpus directory is always created, even when Corpus is empty.
func Project(t *testing.T, opts ProjectOptions) string {
	t.Helper()
	root := t.TempDir()
	if opts.Schema != "" {
		WriteFile(t, root, SchemaFile, opts.Schema)
	}
	if opts.Descriptions != "" {
		WriteFile(t, root, DescriptionsFile, opts.Descriptions)
	}
	if err := os.MkdirAll(filepath.Join(root, CorpusDir), 0o755); err != nil {
		t.Fatalf("failed to create corpus dir: %v", err)
	}
	for name, content := range opts.Corpus {
		WriteFile(t, filepath.Join(root, CorpusDir), name, content)
	}
	return root
}

// ReadFile returns the content of a file, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
