// Package version provides version information for the dsdcheck CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// trackedModules are the dependencies whose versions affect validation results.
var trackedModules = []string{
	"gopkg.in/yaml.v3",
	"github.com/santhosh-tekuri/jsonschema/v6",
	"github.com/k14s/starlark-go",
	"github.com/spf13/viper",
}

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Platform is GOOS/GOARCH.
	Platform string `json:"platform"`

	// Dependencies maps tracked module paths to their linked versions.
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:      Version,
		GitCommit:    GitCommit,
		BuildDate:    BuildDate,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		Dependencies: dependencies(),
	}
}

func dependencies() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return trackedVersions(info.Deps)
}

func trackedVersions(deps []*debug.Module) map[string]string {
	out := make(map[string]string)
	for _, d := range deps {
		for _, path := range trackedModules {
			if d.Path != path {
				continue
			}
			v := d.Version
			if d.Replace != nil {
				v = d.Replace.Version
			}
			out[path] = v
		}
	}
	return out
}

// String returns a human-readable version string.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dsdcheck version %s\n", i.Version)
	fmt.Fprintf(&sb, "  Commit:    %s\n", i.GitCommit)
	fmt.Fprintf(&sb, "  Built:     %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  Go:        %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  Platform:  %s", i.Platform)
	for _, path := range trackedModules {
		if v, ok := i.Dependencies[path]; ok {
			fmt.Fprintf(&sb, "\n  %s %s", path, v)
		}
	}
	return sb.String()
}
