package corpus

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/schema"
	"github.com/dataroadmap/dsdcheck/internal/testutil"
)

const testSchema = `name: str()
category: enum('A', 'B')
count: int(required=False, min=0)
score: num(required=False)
public: bool(required=False)
tags: list(str(), required=False, max=2)
released: day(required=False)
updated: timestamp(required=False)
code: regex('^[A-Z]{3}$', required=False)
extra: map(int(), required=False)
either: any(int(), enum('none'), required=False)
nothing: null(required=False)
`

const validDoc = "name: Census tracts\ncategory: A\n"

func newValidator(t *testing.T, out *bytes.Buffer, opts Options) *Validator {
	t.Helper()
	s, err := schema.Parse([]byte(testSchema), "schema.yaml")
	require.NoError(t, err)
	opts.Out = out
	v, err := New(s, opts)
	require.NoError(t, err)
	return v
}

func parseDoc(t *testing.T, doc string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return nil
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantKind  oerrors.ViolationKind
		wantField string
	}{
		{name: "minimal valid", doc: validDoc},
		{name: "missing required field", doc: "category: A\n", wantKind: oerrors.MissingRequiredField, wantField: "name"},
		{name: "null required field", doc: "name:\ncategory: A\n", wantKind: oerrors.MissingRequiredField, wantField: "name"},
		{name: "string field given int", doc: "name: 5\ncategory: A\n", wantKind: oerrors.TypeMismatch, wantField: "name"},
		{name: "enum value not in choices", doc: "name: x\ncategory: C\n", wantKind: oerrors.InvalidEnumValue, wantField: "category"},
		{name: "quoted enum value", doc: "name: x\ncategory: \"B\"\n"},
		{name: "unexpected field", doc: validDoc + "bogus: 1\n", wantKind: oerrors.UnexpectedField, wantField: "bogus"},
		{name: "optional null", doc: validDoc + "count: ~\n"},
		{name: "int given bool", doc: validDoc + "count: true\n", wantKind: oerrors.TypeMismatch, wantField: "count"},
		{name: "int given float", doc: validDoc + "count: 1.5\n", wantKind: oerrors.TypeMismatch, wantField: "count"},
		{name: "int below min", doc: validDoc + "count: -1\n", wantKind: oerrors.ConstraintViolation, wantField: "count"},
		{name: "num accepts int", doc: validDoc + "score: 3\n"},
		{name: "num accepts float", doc: validDoc + "score: 3.25\n"},
		{name: "num given bool", doc: validDoc + "score: false\n", wantKind: oerrors.TypeMismatch, wantField: "score"},
		{name: "bool", doc: validDoc + "public: true\n"},
		{name: "bool given string", doc: validDoc + "public: \"yes\"\n", wantKind: oerrors.TypeMismatch, wantField: "public"},
		{name: "list within max", doc: validDoc + "tags: [a, b]\n"},
		{name: "list above max", doc: validDoc + "tags: [a, b, c]\n", wantKind: oerrors.ConstraintViolation, wantField: "tags"},
		{name: "list item wrong type", doc: validDoc + "tags: [a, 1]\n", wantKind: oerrors.TypeMismatch, wantField: "tags.1"},
		{name: "list given scalar", doc: validDoc + "tags: a\n", wantKind: oerrors.TypeMismatch, wantField: "tags"},
		{name: "day", doc: validDoc + "released: 2020-01-31\n"},
		{name: "day given text", doc: validDoc + "released: yesterday\n", wantKind: oerrors.TypeMismatch, wantField: "released"},
		{name: "timestamp", doc: validDoc + "updated: 2020-01-31T10:00:00Z\n"},
		{name: "timestamp with space", doc: validDoc + "updated: \"2020-01-31 10:00:00\"\n"},
		{name: "timestamp given int", doc: validDoc + "updated: 12\n", wantKind: oerrors.TypeMismatch, wantField: "updated"},
		{name: "regex match", doc: validDoc + "code: ABC\n"},
		{name: "regex mismatch", doc: validDoc + "code: abcd\n", wantKind: oerrors.ConstraintViolation, wantField: "code"},
		{name: "map values", doc: validDoc + "extra: {a: 1, b: 2}\n"},
		{name: "map value wrong type", doc: validDoc + "extra: {a: 1, b: x}\n", wantKind: oerrors.TypeMismatch, wantField: "extra.b"},
		{name: "any first alternative", doc: validDoc + "either: 3\n"},
		{name: "any second alternative", doc: validDoc + "either: none\n"},
		{name: "any no alternative", doc: validDoc + "either: other\n", wantKind: oerrors.TypeMismatch, wantField: "either"},
		{name: "null validator", doc: validDoc + "nothing: ~\n"},
		{name: "null validator given value", doc: validDoc + "nothing: 1\n", wantKind: oerrors.TypeMismatch, wantField: "nothing"},
		{name: "int given whole float", doc: validDoc + "count: 1.0\n", wantKind: oerrors.TypeMismatch, wantField: "count"},
		{name: "merge key", doc: "<<: {name: x, category: A}\n"},
		{name: "merge sequence", doc: "<<: [{name: x}, {name: y, category: B}]\n"},
		{name: "explicit key wins over merge", doc: "category: A\n<<: {name: x, category: C}\n"},
		{name: "merged value still checked", doc: "name: x\n<<: {category: C}\n", wantKind: oerrors.InvalidEnumValue, wantField: "category"},
		{name: "merge inside map", doc: validDoc + "extra:\n  <<: {a: 1}\n  b: 2\n"},
		{name: "quoted merge key is a plain key", doc: validDoc + "\"<<\": {a: 1}\n", wantKind: oerrors.UnexpectedField, wantField: "<<"},
	}

	v := newValidator(t, &bytes.Buffer{}, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := v.ValidateDocument(parseDoc(t, tt.doc))
			if tt.wantKind == "" {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantKind, violations[0].Kind)
			assert.Equal(t, tt.wantField, violations[0].Field)
		})
	}
}

func TestValidateDocument_Messages(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	violations := v.ValidateDocument(parseDoc(t, "name: x\ncategory: C\n"))
	require.Len(t, violations, 1)
	assert.Equal(t, "'C' not in ('A', 'B')", violations[0].Message)
	assert.Equal(t, 2, violations[0].Line)

	violations = v.ValidateDocument(parseDoc(t, "category: A\n"))
	require.Len(t, violations, 1)
	assert.Equal(t, "Required field missing", violations[0].Message)
}

func TestValidateDocument_ConstraintMessages(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"type", "name: 5\ncategory: A\n", "'5' is not a str."},
		{"max items", validDoc + "tags: [a, b, c]\n", "Length of tags is greater than 2"},
		{"minimum", validDoc + "count: -1\n", "-1 is less than 0"},
		{"regex", validDoc + "code: abcd\n", "'abcd' is not a regex match."},
		{"alternatives", validDoc + "either: other\n", "'other' is not a valid value for any of int(), enum('none')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := v.ValidateDocument(parseDoc(t, tt.doc))
			require.Len(t, violations, 1)
			assert.Equal(t, tt.want, violations[0].Message)
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	s, err := schema.Parse([]byte(testSchema), "schema.yaml")
	require.NoError(t, err)

	_, err = New(s, Options{Pattern: "[a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrCorpusValidation)

	var verr *oerrors.CorpusValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, oerrors.UnreadableDocument, verr.Kind)
}

func TestValidateDocument_ViolationOrder(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	violations := v.ValidateDocument(parseDoc(t, "stray: 1\ncategory: C\n"))
	require.Len(t, violations, 3)
	assert.Equal(t, oerrors.MissingRequiredField, violations[0].Kind)
	assert.Equal(t, "name", violations[0].Field)
	assert.Equal(t, oerrors.InvalidEnumValue, violations[1].Kind)
	assert.Equal(t, oerrors.UnexpectedField, violations[2].Kind)
	assert.Equal(t, "stray", violations[2].Field)
}

func TestValidateDocument_EmptyDocument(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	violations := v.ValidateDocument(nil)
	require.Len(t, violations, 2)
	assert.Equal(t, "name", violations[0].Field)
	assert.Equal(t, "category", violations[1].Field)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantDocs int
		wantKind oerrors.ViolationKind
		wantDoc  int
	}{
		{name: "valid", content: validDoc, wantDocs: 1},
		{name: "empty file", content: "", wantDocs: 1, wantKind: oerrors.MissingRequiredField},
		{name: "root is a list", content: "- a\n- b\n", wantDocs: 1, wantKind: oerrors.UnreadableDocument},
		{name: "malformed", content: "name: [x\n", wantDocs: 0, wantKind: oerrors.UnreadableDocument},
		{name: "multi document", content: validDoc + "---\nname: y\ncategory: Z\n", wantDocs: 2, wantKind: oerrors.InvalidEnumValue, wantDoc: 2},
	}

	v := newValidator(t, &bytes.Buffer{}, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, dir, tt.name+".yaml", tt.content)

			docs, errs := v.ValidateFile(path)
			assert.Equal(t, tt.wantDocs, docs)
			if tt.wantKind == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantKind, errs[0].Kind)
			assert.Equal(t, path, errs[0].File)
			assert.Equal(t, tt.wantDoc, errs[0].Document)
		})
	}
}

func TestValidateFile_Unreadable(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	_, errs := v.ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Len(t, errs, 1)
	assert.Equal(t, oerrors.UnreadableDocument, errs[0].Kind)
}

func TestValidateDir_LexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	b := testutil.WriteFile(t, dir, "b.yaml", validDoc)
	a := testutil.WriteFile(t, dir, "a.yaml", validDoc)
	testutil.WriteFile(t, dir, "notes.txt", "not a description")

	var out bytes.Buffer
	v := newValidator(t, &out, Options{})

	report, err := v.ValidateDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{a, b}, report.Files)
	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, "Validating "+a+"...\nValidating "+b+"...\n", out.String())
}

func TestValidateDir_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.yaml", "name: x\ncategory: C\n")
	testutil.WriteFile(t, dir, "b.yaml", "category: C\n")

	var out bytes.Buffer
	v := newValidator(t, &out, Options{})

	report, err := v.ValidateDir(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrCorpusValidation))

	var verr *oerrors.CorpusValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, a, verr.File)
	assert.Equal(t, oerrors.InvalidEnumValue, verr.Kind)
	assert.Equal(t, "category", verr.Field)

	assert.Equal(t, []string{a}, report.Files)
	assert.Equal(t, "Validating "+a+"...\n", out.String())
}

func TestValidateDir_CollectAll(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.yaml", "stray: 1\ncategory: C\n")
	testutil.WriteFile(t, dir, "b.yaml", validDoc)
	testutil.WriteFile(t, dir, "c.yaml", "name: x\n")

	var out bytes.Buffer
	v := newValidator(t, &out, Options{CollectAll: true})

	report, err := v.ValidateDir(context.Background(), dir)
	require.Error(t, err)

	var all oerrors.CorpusErrors
	require.ErrorAs(t, err, &all)
	assert.Len(t, all, 4)
	assert.Len(t, report.Files, 3)
	assert.Equal(t, all, report.Errors)
	assert.Equal(t, filepath.Join(dir, "c.yaml"), all[3].File)
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("Validating ")))
}

func TestValidateDir_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.yaml", "category: C\n")
	yml := testutil.WriteFile(t, dir, "b.yml", validDoc)

	v := newValidator(t, &bytes.Buffer{}, Options{Pattern: "*.yml"})

	report, err := v.ValidateDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{yml}, report.Files)
}

func TestValidateDir_Empty(t *testing.T) {
	var out bytes.Buffer
	v := newValidator(t, &out, Options{})

	report, err := v.ValidateDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Empty(t, out.String())
}

func TestValidateDir_MissingDirectory(t *testing.T) {
	v := newValidator(t, &bytes.Buffer{}, Options{})

	_, err := v.ValidateDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var verr *oerrors.CorpusValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, oerrors.UnreadableDocument, verr.Kind)
}

func TestValidateFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.yaml", validDoc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	v := newValidator(t, &out, Options{})

	_, err := v.ValidateFiles(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestValidateFiles_KeepsGivenOrder(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.yaml", validDoc)
	b := testutil.WriteFile(t, dir, "b.yaml", validDoc)

	v := newValidator(t, &bytes.Buffer{}, Options{})

	report, err := v.ValidateFiles(context.Background(), []string{b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, report.Files)
}
