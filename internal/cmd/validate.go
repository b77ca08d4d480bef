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

// NewValidateCmd creates the validate command.
func NewValidateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var cf cmdutil.CorpusFlags

	c := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate description documents against the schema",
		Long: `Validate description documents against the schema.

Without arguments every document in the corpus directory matching the
pattern is validated in lexicographic order. With arguments only the
given files are validated, in the order given. The template is not
written.`,
		Example: `  # Validate the whole corpus
  dsdcheck validate

  # Validate two documents and report every violation
  dsdcheck validate --all data_set_descriptions/a.yaml data_set_descriptions/b.yaml`,
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(c, cfg, &cf, args)
		},
	}

	cf.AddTo(c)
	return c
}

func runValidate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, cf *cmdutil.CorpusFlags, files []string) error {
	if err := cfg.Ready(); err != nil {
		return cmdutil.ReportError("invalid configuration", err)
	}

	res, err := pipeline.New(cfg.Paths, pipeline.Options{
		SkipTemplate: true,
		CollectAll:   cf.All,
		Files:        files,
		Out:          c.OutOrStdout(),
	}).Run(c.Context())
	if err != nil {
		return cmdutil.ReportError("validation failed", err)
	}

	output.Info(output.FormatCheckmark(os.Stderr, fmt.Sprintf(
		"%d document(s) in %d file(s) valid", res.Corpus.Documents, len(res.Corpus.Files))))
	return nil
}
