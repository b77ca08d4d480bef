package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/cmdutil"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/pipeline"
)

// NewCheckCmd creates the check command.
func NewCheckCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every schema field has a description",
		Long: `Load the schema and field descriptions and report every field without a
description and every description without a field.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runCheck(c, cfg)
		},
	}
}

func runCheck(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	if err := cfg.Ready(); err != nil {
		return cmdutil.ReportError("invalid configuration", err)
	}

	res, err := pipeline.New(cfg.Paths, pipeline.Options{
		SkipCorpus:   true,
		SkipTemplate: true,
		Out:          c.OutOrStdout(),
	}).Run(c.Context())
	if err != nil {
		return cmdutil.ReportError("check failed", err)
	}

	output.Info(output.FormatCheckmark(os.Stderr, fmt.Sprintf("%d fields described", res.Schema.Len())))
	return nil
}
