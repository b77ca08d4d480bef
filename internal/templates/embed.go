// Package templates renders the annotated data set description template.
package templates

import (
	_ "embed"
	"text/template"
)

//go:embed description.yaml.tmpl
var documentSource string

// document is the parsed description template. It is parsed once because the
// source is embedded and cannot change at runtime.
var document = template.Must(template.New("description").Parse(documentSource))
