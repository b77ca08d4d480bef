package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variable prefix for dsdcheck configuration.
const envPrefix = "DSDCHECK"

// binding ties a config key to its environment variable and flag.
type binding struct {
	key  string
	env  string
	flag string
}

var bindings = []binding{
	{key: "baseDir", env: "DSDCHECK_BASE_DIR", flag: "base-dir"},
	{key: "schema", env: "DSDCHECK_SCHEMA", flag: "schema"},
	{key: "descriptions", env: "DSDCHECK_DESCRIPTIONS", flag: "descriptions"},
	{key: "corpusDir", env: "DSDCHECK_CORPUS_DIR", flag: "corpus-dir"},
	{key: "template", env: "DSDCHECK_TEMPLATE", flag: "template"},
	{key: "pattern", env: "DSDCHECK_PATTERN", flag: "pattern"},
	{key: "log.timestamps", env: "DSDCHECK_LOG_TIMESTAMPS"},
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v     *viper.Viper
	flags map[string]*pflag.Flag

	configFile ResolveConfigPathResult
	fileRead   bool
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		_ = v.BindEnv(b.key, b.env)
	}

	def := DefaultConfig()
	v.SetDefault("baseDir", def.BaseDir)
	v.SetDefault("schema", def.Schema)
	v.SetDefault("descriptions", def.Descriptions)
	v.SetDefault("corpusDir", def.CorpusDir)
	v.SetDefault("template", def.Template)
	v.SetDefault("pattern", def.Pattern)

	return &Loader{v: v, flags: make(map[string]*pflag.Flag)}
}

// BindFlags binds the path flags present in fs to their config keys.
// Flags absent from fs are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, b := range bindings {
		if b.flag == "" {
			continue
		}
		f := fs.Lookup(b.flag)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", b.flag, err)
		}
		l.flags[b.key] = f
	}
	return nil
}

// Load loads configuration from the given file path.
// If configFile is empty, DSDCHECK_CONFIG or dsdcheck.yaml is used.
// A missing config file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	l.configFile = ResolveConfigPath(ResolveConfigPathOptions{FlagValue: configFile})

	// Expand ~ in path
	expandedPath, err := ExpandPath(l.configFile.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	l.fileRead = false
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults + env vars
	} else {
		l.fileRead = true
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileUsed returns the config file path and whether it was read.
func (l *Loader) ConfigFileUsed() (string, bool) {
	return l.configFile.ConfigPath, l.fileRead
}
