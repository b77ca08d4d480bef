// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/dataroadmap/dsdcheck/internal/config"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the merged configuration with defaults applied.
	Config *config.Config

	// Paths are the file locations resolved from Config.
	Paths config.Paths

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigErr records a configuration that failed to load. Commands that
	// need paths report it; config vet reports it in detail.
	ConfigErr error

	Verbose bool
}

// Ready returns the configuration load error, if any.
func (g *GlobalConfig) Ready() error {
	return g.ConfigErr
}

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
