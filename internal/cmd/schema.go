package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/dataroadmap/dsdcheck/internal/cmdtypes"
	"github.com/dataroadmap/dsdcheck/internal/cmdutil"
	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// fieldInfo is the machine-readable form of one schema field.
type fieldInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Rule        string `json:"rule"`
	Choices     []any  `json:"choices,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewSchemaCmd creates the schema command.
func NewSchemaCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "schema",
		Short: "List the schema fields",
		Long: `List the fields declared by the schema in declaration order, with their
type, requiredness and rule. Descriptions are included when the field
descriptions file can be loaded.`,
		Example: `  # Show fields as a table
  dsdcheck schema

  # Machine-readable output
  dsdcheck schema -o json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSchema(c, cfg, format)
		},
	}

	c.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, yaml, json")
	return c
}

func runSchema(c *cobra.Command, cfg *cmdtypes.GlobalConfig, format string) error {
	outFormat, ok := output.ParseOutputFormat(format)
	if !ok {
		return cmdutil.ReportError("invalid flag",
			fmt.Errorf("unknown output format %q (valid: %v)", format, output.ValidFormats()))
	}
	if err := cfg.Ready(); err != nil {
		return cmdutil.ReportError("invalid configuration", err)
	}

	s, err := schema.Load(cfg.Paths.Schema)
	if err != nil {
		return cmdutil.ReportError("loading schema failed", err)
	}

	d, err := descriptions.Load(cfg.Paths.Descriptions)
	if err != nil {
		output.Debug("descriptions not available", "error", err)
		d = nil
	}

	fields := describeFields(s, d)
	if err := writeFields(c.OutOrStdout(), outFormat, fields); err != nil {
		return cmdutil.ReportError("writing output failed", err)
	}
	return nil
}

func describeFields(s *schema.Schema, d *descriptions.Map) []fieldInfo {
	out := make([]fieldInfo, 0, s.Len())
	for _, f := range s.Fields() {
		info := fieldInfo{
			Name:     f.Name,
			Type:     f.Rule.Name(),
			Required: f.Rule.Required,
			Rule:     f.Rule.String(),
		}
		for _, c := range f.Rule.Choices {
			info.Choices = append(info.Choices, c.Value)
		}
		if d != nil {
			info.Description, _ = d.Get(f.Name)
		}
		out = append(out, info)
	}
	return out
}

// descriptionWidth keeps long descriptions from stretching the table.
const descriptionWidth = 60

func writeFields(w io.Writer, format output.OutputFormat, fields []fieldInfo) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case output.FormatYAML:
		data, err := yaml.Marshal(fields)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		tbl := output.NewTable("FIELD", "TYPE", "REQUIRED", "RULE", "DESCRIPTION").
			Wrap(4, descriptionWidth)
		for _, f := range fields {
			tbl.Row(f.Name, f.Type, strconv.FormatBool(f.Required), f.Rule, f.Description)
		}
		_, err := fmt.Fprintln(w, tbl.Render(w))
		return err
	}
}
