package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath_FlagPrecedence(t *testing.T) {
	t.Setenv("DSDCHECK_CONFIG", "/env/dsdcheck.yaml")

	result := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/dsdcheck.yaml"})

	assert.Equal(t, "/flag/dsdcheck.yaml", result.ConfigPath)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "/env/dsdcheck.yaml", result.Shadowed[SourceEnv])
	assert.Equal(t, DefaultConfigFile, result.Shadowed[SourceDefault])
}

func TestResolveConfigPath_EnvPrecedence(t *testing.T) {
	t.Setenv("DSDCHECK_CONFIG", "/env/dsdcheck.yaml")

	result := ResolveConfigPath(ResolveConfigPathOptions{})

	assert.Equal(t, "/env/dsdcheck.yaml", result.ConfigPath)
	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolveConfigPath_Default(t *testing.T) {
	t.Setenv("DSDCHECK_CONFIG", "")

	result := ResolveConfigPath(ResolveConfigPathOptions{})

	assert.Equal(t, DefaultConfigFile, result.ConfigPath)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestLoaderResolved(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "descriptions: file-descriptions.yaml\n")
	t.Setenv("DSDCHECK_CORPUS_DIR", "env-docs")
	t.Setenv("DSDCHECK_SCHEMA", "env-schema.yaml")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("schema", "", "")
	require.NoError(t, fs.Parse([]string{"--schema", filepath.Join(dir, "flag.yaml")}))

	loader := NewLoader()
	require.NoError(t, loader.BindFlags(fs))
	_, err := loader.Load(path)
	require.NoError(t, err)

	byKey := make(map[string]ResolvedValue)
	for _, v := range loader.Resolved() {
		byKey[v.Key] = v
	}

	assert.Equal(t, SourceFlag, byKey["config"].Source)
	assert.Equal(t, path, byKey["config"].Value)

	assert.Equal(t, SourceFlag, byKey["schema"].Source)
	assert.Equal(t, "env-schema.yaml", byKey["schema"].Shadowed[SourceEnv])

	assert.Equal(t, SourceEnv, byKey["corpusDir"].Source)
	assert.Equal(t, "env-docs", byKey["corpusDir"].Value)

	assert.Equal(t, SourceConfig, byKey["descriptions"].Source)
	assert.Equal(t, SourceDefault, byKey["template"].Source)
	assert.Equal(t, DefaultTemplate, byKey["template"].Value)
}

func TestLogResolvedValues(t *testing.T) {
	assert.NotPanics(t, func() {
		LogResolvedValues([]ResolvedValue{{Key: "schema", Value: "s.yaml", Source: SourceDefault}})
	})
}
