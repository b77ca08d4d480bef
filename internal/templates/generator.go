package templates

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/k14s/difflib"

	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// Write renders the template and overwrites path with it, creating parent
// directories as needed.
func Write(path string, s *schema.Schema, d *descriptions.Map) error {
	content, err := Render(s, d)
	if err != nil {
		return &oerrors.TemplateWriteError{Path: path, Cause: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &oerrors.TemplateWriteError{Path: path, Cause: err}
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &oerrors.TemplateWriteError{Path: path, Cause: err}
	}

	output.Debug("template written", "path", path, "fields", s.Len(), "bytes", len(content))
	return nil
}

// Diff renders the template and compares it with the file at path.
// It returns "" when the file is up to date, and otherwise a line diff from
// the file on disk to the rendered template. A missing file diffs against
// empty content.
func Diff(path string, s *schema.Schema, d *descriptions.Map) (string, error) {
	want, err := Render(s, d)
	if err != nil {
		return "", err
	}

	got, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", &oerrors.TemplateWriteError{Path: path, Cause: err}
	}

	if bytes.Equal(got, want) {
		return "", nil
	}
	return difflib.PPDiff(splitLines(got), splitLines(want)), nil
}

func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(string(b), "\n")
}
