// Package config provides configuration loading and management.
package config

// Conventional file names, relative to the base directory.
const (
	DefaultConfigFile   = "dsdcheck.yaml"
	DefaultSchema       = "data_set_description_schema.yaml"
	DefaultDescriptions = "data_set_description_field_descriptions.yaml"
	DefaultCorpusDir    = "data_set_descriptions"
	DefaultTemplate     = "data_set_description_template.yaml"
	DefaultPattern      = "*.yaml"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty"`
}

// Config represents the dsdcheck configuration.
// Loaded from dsdcheck.yaml, overridden by DSDCHECK_* env vars and flags.
type Config struct {
	// BaseDir is the directory relative paths resolve against.
	// Env: DSDCHECK_BASE_DIR, Default: "."
	BaseDir string `mapstructure:"baseDir" json:"baseDir,omitempty"`

	// Schema is the schema file.
	// Env: DSDCHECK_SCHEMA
	Schema string `mapstructure:"schema" json:"schema,omitempty"`

	// Descriptions is the field descriptions file.
	// Env: DSDCHECK_DESCRIPTIONS
	Descriptions string `mapstructure:"descriptions" json:"descriptions,omitempty"`

	// CorpusDir is the directory of description documents.
	// Env: DSDCHECK_CORPUS_DIR
	CorpusDir string `mapstructure:"corpusDir" json:"corpusDir,omitempty"`

	// Template is the generated template file.
	// Env: DSDCHECK_TEMPLATE
	Template string `mapstructure:"template" json:"template,omitempty"`

	// Pattern selects corpus files within CorpusDir.
	// Env: DSDCHECK_PATTERN, Default: "*.yaml"
	Pattern string `mapstructure:"pattern" json:"pattern,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" json:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:      ".",
		Schema:       DefaultSchema,
		Descriptions: DefaultDescriptions,
		CorpusDir:    DefaultCorpusDir,
		Template:     DefaultTemplate,
		Pattern:      DefaultPattern,
	}
}

// WithDefaults returns a copy of c with empty values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()

	if out.BaseDir == "" {
		out.BaseDir = def.BaseDir
	}
	if out.Schema == "" {
		out.Schema = def.Schema
	}
	if out.Descriptions == "" {
		out.Descriptions = def.Descriptions
	}
	if out.CorpusDir == "" {
		out.CorpusDir = def.CorpusDir
	}
	if out.Template == "" {
		out.Template = def.Template
	}
	if out.Pattern == "" {
		out.Pattern = def.Pattern
	}
	return &out
}
