package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/testutil"
)

func TestWrite_CreatesAndOverwrites(t *testing.T) {
	s, d := fixture(t)
	path := filepath.Join(t.TempDir(), "out", "template.yaml")

	require.NoError(t, Write(path, s, d))
	want, err := Render(s, d)
	require.NoError(t, err)
	assert.Equal(t, string(want), testutil.ReadFile(t, path))

	require.NoError(t, os.WriteFile(path, []byte("hand edited\n"), 0o644))
	require.NoError(t, Write(path, s, d))
	assert.Equal(t, string(want), testutil.ReadFile(t, path))
}

func TestWrite_UnwritableDestination(t *testing.T) {
	s, d := fixture(t)
	dir := t.TempDir()
	blocker := testutil.WriteFile(t, dir, "file", "x")

	err := Write(filepath.Join(blocker, "template.yaml"), s, d)
	require.Error(t, err)

	var twErr *oerrors.TemplateWriteError
	require.True(t, errors.As(err, &twErr))
	assert.Equal(t, filepath.Join(blocker, "template.yaml"), twErr.Path)
	assert.True(t, errors.Is(err, oerrors.ErrTemplateWrite))
}

func TestDiff(t *testing.T) {
	s, d := fixture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")

	t.Run("missing file", func(t *testing.T) {
		diff, err := Diff(path, s, d)
		require.NoError(t, err)
		assert.Contains(t, diff, "name: ")
	})

	t.Run("up to date", func(t *testing.T) {
		require.NoError(t, Write(path, s, d))
		diff, err := Diff(path, s, d)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("drifted", func(t *testing.T) {
		content := testutil.ReadFile(t, path)
		require.NoError(t, os.WriteFile(path, []byte(content+"extra: \n"), 0o644))

		diff, err := Diff(path, s, d)
		require.NoError(t, err)
		assert.Contains(t, diff, "extra: ")
	})
}
