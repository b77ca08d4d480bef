package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/cmdutil"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/pipeline"
	"github.com/dataroadmap/dsdcheck/internal/templates"
)

// NewTemplateCmd creates the template command.
func NewTemplateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var check bool

	c := &cobra.Command{
		Use:   "template",
		Short: "Regenerate the annotated description template",
		Long: `Regenerate the annotated description template from the schema and
field descriptions. The file is overwritten in full.

With --check nothing is written. The command prints a diff and exits
non-zero when the file on disk differs from what would be generated.`,
		Example: `  # Regenerate the template
  dsdcheck template

  # Fail in CI when the committed template is stale
  dsdcheck template --check`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runTemplate(c, cfg, check)
		},
	}

	c.Flags().BoolVar(&check, "check", false, "Report drift instead of writing the template")
	return c
}

func runTemplate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, check bool) error {
	if err := cfg.Ready(); err != nil {
		return cmdutil.ReportError("invalid configuration", err)
	}

	res, err := pipeline.New(cfg.Paths, pipeline.Options{
		SkipCorpus:   true,
		SkipTemplate: check,
		Out:          c.OutOrStdout(),
	}).Run(c.Context())
	if err != nil {
		return cmdutil.ReportError("template failed", err)
	}

	if !check {
		output.Info(output.FormatCheckmark(os.Stderr, "template written to "+output.Stylize(os.Stderr, output.StyleNoun, res.TemplatePath)))
		return nil
	}

	diff, err := templates.Diff(cfg.Paths.Template, res.Schema, res.Descriptions)
	if err != nil {
		return cmdutil.ReportError("template check failed", err)
	}
	if diff != "" {
		fmt.Fprint(c.OutOrStdout(), diff)
		return cmdutil.ReportError("template check failed", &oerrors.DetailError{
			Type:     "template out of date",
			Message:  "the template differs from what the schema and field descriptions generate",
			Location: cfg.Paths.Template,
			Hint:     "run `dsdcheck template` and commit the result",
			Cause:    oerrors.ErrTemplateDrift,
		})
	}

	output.Info(output.FormatCheckmark(os.Stderr, "template is up to date"))
	return nil
}
