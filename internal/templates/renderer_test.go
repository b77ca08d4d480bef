package templates

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

const header = "# Note: This template is automatically generated by `dsdcheck template` from the schema\n" +
	"# and field descriptions files. Do not manually edit this file.\n\n"

func fixture(t *testing.T) (*schema.Schema, *descriptions.Map) {
	t.Helper()
	s, err := schema.Parse([]byte(`name: str()
category: enum('Justice40', 'Clean Energy', required=False)
sources: list(str(), min=1)
status: enum('draft')
`), "schema.yaml")
	require.NoError(t, err)

	d, err := descriptions.Parse([]byte(`status: Publication status
name: The name of the data set
category: The category of the data set
sources: Where the data comes from
`), "descriptions.yaml")
	require.NoError(t, err)
	return s, d
}

func TestRender_Golden(t *testing.T) {
	s, d := fixture(t)

	got, err := Render(s, d)
	require.NoError(t, err)

	want := header +
		"name: \n" +
		"# Description: The name of the data set\n" +
		"# Required field: true\n" +
		"# Field type: str\n" +
		"\n" +
		"category: \n" +
		"# Description: The category of the data set\n" +
		"# Required field: false\n" +
		"# Field type: enum\n" +
		"# Valid choices are one of the following: ('Justice40', 'Clean Energy')\n" +
		"\n" +
		"sources: \n" +
		"# Description: Where the data comes from\n" +
		"# Required field: true\n" +
		"# Field type: list\n" +
		"\n" +
		"status: \n" +
		"# Description: Publication status\n" +
		"# Required field: true\n" +
		"# Field type: enum\n" +
		"# Valid choices are one of the following: ('draft',)\n" +
		"\n"

	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Deterministic(t *testing.T) {
	s, d := fixture(t)

	first, err := Render(s, d)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Render(s, d)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_EachFieldExactlyOnce(t *testing.T) {
	s, d := fixture(t)

	got, err := Render(s, d)
	require.NoError(t, err)
	out := string(got)

	for _, f := range s.Fields() {
		assert.Equal(t, 1, strings.Count(out, "\n"+f.Name+": \n"), "field %s", f.Name)
	}
	assert.Equal(t, 2, strings.Count(out, "# Valid choices are one of the following: "))
	assert.Equal(t, s.Len(), strings.Count(out, "# Field type: "))
}

func TestRender_MissingDescription(t *testing.T) {
	s, _ := fixture(t)
	d := descriptions.FromMap(map[string]string{"name": "n"})

	_, err := Render(s, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"category"`)
}

func TestNewTemplateData(t *testing.T) {
	s, d := fixture(t)

	data, err := NewTemplateData(s, d)
	require.NoError(t, err)
	require.Len(t, data.Fields, 4)
	assert.Equal(t, FieldData{
		Name:        "category",
		Description: "The category of the data set",
		Required:    false,
		Type:        "enum",
		Choices:     "('Justice40', 'Clean Energy')",
	}, data.Fields[1])
	assert.Empty(t, data.Fields[2].Choices)
}

func TestRenderData_Empty(t *testing.T) {
	got, err := RenderData(TemplateData{})
	require.NoError(t, err)
	assert.Equal(t, header, string(got))
}
