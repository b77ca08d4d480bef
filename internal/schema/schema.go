package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
)

// Field is a named schema entry.
type Field struct {
	Name string
	Rule *Rule
}

// Schema is the ordered set of field rules description documents must satisfy.
type Schema struct {
	// Source is the file the schema was loaded from, if any.
	Source string

	fields []Field
	index  map[string]int
}

// New builds a schema from fields in declaration order.
// Field names must be unique.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if err := s.add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Schema) add(f Field) error {
	if _, dup := s.index[f.Name]; dup {
		return fmt.Errorf("duplicate field %q", f.Name)
	}
	if f.Rule == nil {
		return fmt.Errorf("field %q has no rule", f.Name)
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Rule returns the rule for a field.
func (s *Schema) Rule(name string) (*Rule, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Rule, true
}

// Has reports whether the schema declares a field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Load reads and parses the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "reading schema file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "schema file not found"
		}
		return nil, &oerrors.SchemaLoadError{Path: path, Message: msg, Cause: err}
	}

	s, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	output.Debug("schema loaded", "path", path, "fields", s.Len())
	return s, nil
}

// Parse parses schema YAML. source names the input in error messages.
func Parse(data []byte, source string) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oerrors.SchemaLoadError{Path: source, Message: "malformed YAML", Cause: err}
	}

	root := &doc
	if root.Kind == 0 {
		return nil, &oerrors.SchemaLoadError{Path: source, Message: "schema is empty"}
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &oerrors.SchemaLoadError{Path: source, Message: "schema is empty"}
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &oerrors.SchemaLoadError{Path: source, Line: root.Line, Message: "schema must be a mapping of field names to validators"}
	}

	s := &Schema{Source: source, index: make(map[string]int, len(root.Content)/2)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &oerrors.SchemaLoadError{Path: source, Line: key.Line, Message: "field names must be scalars"}
		}
		name := key.Value

		if s.Has(name) {
			return nil, &oerrors.SchemaLoadError{Path: source, Field: name, Line: key.Line, Message: "duplicate field"}
		}
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!str" {
			return nil, &oerrors.SchemaLoadError{Path: source, Field: name, Line: val.Line, Message: "validator must be an expression string such as str()"}
		}

		rule, err := ParseRule(val.Value)
		if err != nil {
			return nil, &oerrors.SchemaLoadError{Path: source, Field: name, Line: val.Line, Message: "invalid validator expression", Cause: err}
		}
		if err := s.add(Field{Name: name, Rule: rule}); err != nil {
			return nil, &oerrors.SchemaLoadError{Path: source, Field: name, Line: key.Line, Message: err.Error()}
		}
	}

	if s.Len() == 0 {
		return nil, &oerrors.SchemaLoadError{Path: source, Message: "schema declares no fields"}
	}
	return s, nil
}
