package templates

import (
	"bytes"
	"fmt"

	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// NewTemplateData builds the view of s and d used by Render.
// Every schema field must have a description.
func NewTemplateData(s *schema.Schema, d *descriptions.Map) (TemplateData, error) {
	fields := s.Fields()
	data := TemplateData{Fields: make([]FieldData, 0, len(fields))}

	for _, f := range fields {
		desc, ok := d.Get(f.Name)
		if !ok {
			return TemplateData{}, fmt.Errorf("field %q has no description", f.Name)
		}

		fd := FieldData{
			Name:        f.Name,
			Description: desc,
			Required:    f.Rule.Required,
			Type:        f.Rule.Name(),
		}
		if f.Rule.IsEnum() {
			fd.Choices = f.Rule.ChoicesString()
		}
		data.Fields = append(data.Fields, fd)
	}

	return data, nil
}

// Render produces the template document for s and d.
// The output depends only on its inputs.
func Render(s *schema.Schema, d *descriptions.Map) ([]byte, error) {
	data, err := NewTemplateData(s, d)
	if err != nil {
		return nil, err
	}
	return RenderData(data)
}

// RenderData executes the description template with data.
func RenderData(data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := document.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}
