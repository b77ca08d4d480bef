// Package cmdutil provides shared command utilities.
// It centralizes flag group management and error reporting.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// PathFlags holds the file location flags shared by every command.
// They are bound to configuration keys so a flag overrides env and config.
type PathFlags struct {
	BaseDir      string
	Schema       string
	Descriptions string
	CorpusDir    string
	Template     string
	Pattern      string
}

// AddTo registers the path flags as persistent flags on the given cobra command.
func (f *PathFlags) AddTo(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&f.BaseDir, "base-dir", "C", "",
		"Directory relative paths resolve against (env: DSDCHECK_BASE_DIR)")
	fs.StringVar(&f.Schema, "schema", "",
		"Schema file (env: DSDCHECK_SCHEMA)")
	fs.StringVar(&f.Descriptions, "descriptions", "",
		"Field descriptions file (env: DSDCHECK_DESCRIPTIONS)")
	fs.StringVar(&f.CorpusDir, "corpus-dir", "",
		"Directory of description documents (env: DSDCHECK_CORPUS_DIR)")
	fs.StringVar(&f.Template, "template", "",
		"Generated template file (env: DSDCHECK_TEMPLATE)")
	fs.StringVar(&f.Pattern, "pattern", "",
		"Glob selecting corpus documents (env: DSDCHECK_PATTERN)")
}

// CorpusFlags holds flags for commands that validate the corpus (run, validate).
type CorpusFlags struct {
	All bool
}

// AddTo registers the corpus flags on the given cobra command.
func (f *CorpusFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.All, "all", false,
		"Validate every document and report all violations instead of stopping at the first")
}
