package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataroadmap/dsdcheck/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show dsdcheck version information.

Displays:
  - dsdcheck version, commit, and build date
  - Go version and platform
  - versions of the YAML and configuration libraries linked in`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	return nil
}
