// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/dataroadmap/dsdcheck/internal/cmd/config"
	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/cmdutil"
	"github.com/dataroadmap/dsdcheck/internal/config"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/version"
)

// rootFlags holds the global flags of the root command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
	paths      cmdutil.PathFlags
}

// NewRootCmd creates the root command for the dsdcheck CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "dsdcheck",
		Short: "Data set description validator",
		Long: `dsdcheck validates data set description documents against a schema.

It checks that:
  - every schema field has a description, and every description a field
  - every document in the corpus directory satisfies the schema
and regenerates the annotated template from the schema and descriptions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to config file (env: DSDCHECK_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	flags.paths.AddTo(rootCmd)

	rootCmd.AddCommand(NewRunCmd(cfg))
	rootCmd.AddCommand(NewCheckCmd(cfg))
	rootCmd.AddCommand(NewValidateCmd(cfg))
	rootCmd.AddCommand(NewTemplateCmd(cfg))
	rootCmd.AddCommand(NewSchemaCmd(cfg))
	rootCmd.AddCommand(configcmd.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
// A configuration that fails to load is recorded on cfg rather than
// returned, so that version and config vet still run.
func initializeGlobals(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *rootFlags) error {
	cfg.Verbose = flags.verbose

	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	loaded, err := loader.LoadWithDefaults(flags.config)
	cfg.ConfigPath, _ = loader.ConfigFileUsed()

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	output.Debug("dsdcheck started", "version", version.Get().Version)

	if err != nil {
		output.Debug("config load error", "error", err)
		cfg.ConfigErr = fmt.Errorf("loading config %s: %w", cfg.ConfigPath, err)
		return nil
	}

	paths, err := loaded.Paths()
	if err != nil {
		cfg.ConfigErr = fmt.Errorf("resolving paths: %w", err)
		return nil
	}

	cfg.Config = loaded
	cfg.Paths = paths

	if flags.verbose {
		config.LogResolvedValues(loader.Resolved())
	}

	return nil
}
