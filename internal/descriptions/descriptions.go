// Package descriptions loads the human-readable description of each schema field.
package descriptions

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
)

// Map holds field descriptions keyed by field name, remembering file order.
type Map struct {
	// Source is the file the descriptions were loaded from, if any.
	Source string

	entries map[string]string
	keys    []string
}

// FromMap builds a Map from a plain map. Keys are ordered by name.
func FromMap(m map[string]string) *Map {
	d := &Map{entries: make(map[string]string, len(m))}
	for k, v := range m {
		d.entries[k] = v
		d.keys = append(d.keys, k)
	}
	sort.Strings(d.keys)
	return d
}

// Get returns the description for a field.
func (d *Map) Get(field string) (string, bool) {
	v, ok := d.entries[field]
	return v, ok
}

// Keys returns the described field names in file order.
func (d *Map) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of descriptions.
func (d *Map) Len() int {
	return len(d.keys)
}

// Load reads and parses the field descriptions file at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "reading descriptions file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "descriptions file not found"
		}
		return nil, &oerrors.DescriptionLoadError{Path: path, Message: msg, Cause: err}
	}

	d, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	output.Debug("field descriptions loaded", "path", path, "entries", d.Len())
	return d, nil
}

// Parse parses a YAML mapping of field name to description text.
// An empty document yields an empty Map.
func Parse(data []byte, source string) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oerrors.DescriptionLoadError{Path: source, Message: "malformed YAML", Cause: err}
	}

	d := &Map{Source: source, entries: make(map[string]string)}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 || root.Kind == yaml.DocumentNode || isNull(root) {
		return d, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &oerrors.DescriptionLoadError{Path: source, Line: root.Line, Message: "descriptions must be a mapping of field names to text"}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &oerrors.DescriptionLoadError{Path: source, Line: key.Line, Message: "field names must be scalars"}
		}
		name := key.Value
		if _, dup := d.entries[name]; dup {
			return nil, &oerrors.DescriptionLoadError{Path: source, Field: name, Line: key.Line, Message: "duplicate description"}
		}
		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind != yaml.ScalarNode || isNull(val) {
			return nil, &oerrors.DescriptionLoadError{Path: source, Field: name, Line: val.Line, Message: "description must be a text value"}
		}
		d.entries[name] = val.Value
		d.keys = append(d.keys, name)
	}
	return d, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
