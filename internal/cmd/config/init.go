package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/config"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
)

const configHeader = "# dsdcheck configuration\n" +
	"# Relative paths resolve against baseDir. Env vars DSDCHECK_* and flags override these values.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new dsdcheck configuration file",
		Long: `Create a new dsdcheck configuration file with default values.

The configuration file is created at ./dsdcheck.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !force:
		return &cmdtypes.ExitError{
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
			Code: oerrors.ExitGeneralError,
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	return nil
}
