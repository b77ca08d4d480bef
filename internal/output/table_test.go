package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("FIELD", "TYPE").
		Row("name", "str").
		Row("category", "enum")

	assert.Equal(t, 2, tbl.Len())

	out := tbl.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "category")
	assert.Contains(t, out, "enum")
}

func TestTableWrap(t *testing.T) {
	desc := "the agency that publishes and maintains the data set"
	tbl := NewTable("FIELD", "DESCRIPTION").
		Row("publisher", desc).
		Wrap(1, 20)

	out := tbl.Render(&bytes.Buffer{})
	assert.NotContains(t, out, desc)
	assert.Contains(t, out, "publisher")
	for _, line := range strings.Split(out, "\n") {
		assert.NotContains(t, line, "publishes and maintains the")
	}
}

func TestTableRender_PlainWhenNotTerminal(t *testing.T) {
	out := NewTable("FIELD").Row("name").Render(&bytes.Buffer{})
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "name")
}
