package templates

// TemplateData holds the data passed to template rendering.
type TemplateData struct {
	// Fields lists the schema fields in declaration order.
	Fields []FieldData
}

// FieldData is one field block of the rendered template.
type FieldData struct {
	// Name is the schema field name.
	Name string

	// Description is the text from the field descriptions file.
	Description string

	// Required is false only for fields declared with required=False.
	Required bool

	// Type is the validator name, e.g. "str" or "enum".
	Type string

	// Choices is the enum tuple such as ('A', 'B'). Empty for non-enum fields.
	Choices string
}
