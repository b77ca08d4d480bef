package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.Platform, "Platform should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:      "v1.0.0",
		GitCommit:    "abc123",
		BuildDate:    "2026-01-29",
		GoVersion:    "go1.25",
		Platform:     "linux/amd64",
		Dependencies: map[string]string{"gopkg.in/yaml.v3": "v3.0.1"},
	}

	str := info.String()

	assert.Contains(t, str, "dsdcheck version v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "linux/amd64")
	assert.Contains(t, str, "gopkg.in/yaml.v3 v3.0.1")
	assert.NotContains(t, str, "viper")
}

func TestTrackedVersions(t *testing.T) {
	deps := []*debug.Module{
		{Path: "gopkg.in/yaml.v3", Version: "v3.0.1"},
		{Path: "github.com/spf13/viper", Version: "v1.0.0", Replace: &debug.Module{Version: "v1.21.0"}},
		{Path: "github.com/santhosh-tekuri/jsonschema/v6", Version: "v6.0.2"},
		{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
	}

	assert.Equal(t, map[string]string{
		"gopkg.in/yaml.v3":                         "v3.0.1",
		"github.com/santhosh-tekuri/jsonschema/v6": "v6.0.2",
		"github.com/spf13/viper":                   "v1.21.0",
	}, trackedVersions(deps))
}
