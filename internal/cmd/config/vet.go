package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/config"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the dsdcheck configuration file",
		Long: `Validate the dsdcheck configuration file and check that the paths it
resolves to exist.

The command validates ./dsdcheck.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cmdtypes.ExitError{
				Err:  fmt.Errorf("config file not found: %s", path),
				Code: oerrors.ExitGeneralError,
			}
		}
		return fmt.Errorf("checking config file: %w", err)
	}

	if cfg.ConfigErr != nil {
		var validationErrs config.ValidationErrors
		if errors.As(cfg.ConfigErr, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Err: cfg.ConfigErr, Code: oerrors.ExitGeneralError, Printed: true}
		}
		return cfg.ConfigErr
	}

	missing := 0
	for _, p := range []struct {
		key  string
		path string
		dir  bool
	}{
		{"schema", cfg.Paths.Schema, false},
		{"descriptions", cfg.Paths.Descriptions, false},
		{"corpusDir", cfg.Paths.CorpusDir, true},
	} {
		info, err := os.Stat(p.path)
		switch {
		case err != nil:
			missing++
			output.Warn(output.FormatFailure(os.Stderr, "path not found"), "key", p.key, "path", p.path)
		case info.IsDir() != p.dir:
			missing++
			output.Warn(output.FormatFailure(os.Stderr, "path has the wrong kind"), "key", p.key, "path", p.path, "wantDir", p.dir)
		}
	}
	if missing > 0 {
		return &cmdtypes.ExitError{
			Err:  fmt.Errorf("%d configured path(s) do not exist", missing),
			Code: oerrors.ExitGeneralError,
		}
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
