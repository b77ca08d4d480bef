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

// NewRunCmd creates the run command.
func NewRunCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var cf cmdutil.CorpusFlags

	c := &cobra.Command{
		Use:   "run",
		Short: "Check descriptions, validate the corpus and regenerate the template",
		Long: `Run every stage in order:

  1. load the schema
  2. load the field descriptions
  3. check that schema fields and descriptions match one to one
  4. validate each document in the corpus directory
  5. overwrite the template file

The first failing stage aborts the run. Nothing after it executes.`,
		Example: `  # Run from the data roadmap directory
  dsdcheck run

  # Report every corpus violation, not just the first
  dsdcheck run --all

  # Run against another checkout
  dsdcheck run -C ~/src/data-roadmap`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runRun(c, cfg, &cf)
		},
	}

	cf.AddTo(c)
	return c
}

func runRun(c *cobra.Command, cfg *cmdtypes.GlobalConfig, cf *cmdutil.CorpusFlags) error {
	if err := cfg.Ready(); err != nil {
		return cmdutil.ReportError("invalid configuration", err)
	}

	res, err := pipeline.New(cfg.Paths, pipeline.Options{
		CollectAll: cf.All,
		Out:        c.OutOrStdout(),
	}).Run(c.Context())
	if err != nil {
		return cmdutil.ReportError("run failed", err)
	}

	output.Info(output.FormatCheckmark(os.Stderr, fmt.Sprintf(
		"%d fields described, %d document(s) valid, template written to %s",
		res.Schema.Len(), res.Corpus.Documents, output.Stylize(os.Stderr, output.StyleNoun, res.TemplatePath))))
	return nil
}
