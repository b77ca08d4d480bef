package config

import (
	"os"

	"github.com/dataroadmap/dsdcheck/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) DSDCHECK_CONFIG env, (3) dsdcheck.yaml default.
func ResolveConfigPath(opts ResolveConfigPathOptions) ResolveConfigPathResult {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("DSDCHECK_CONFIG")

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = DefaultConfigFile
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = DefaultConfigFile
	default:
		result.ConfigPath = DefaultConfigFile
		result.Source = SourceDefault
	}

	return result
}

// Resolved reports the value and source of every configuration key.
// Precedence is flag > env > config > default.
func (l *Loader) Resolved() []ResolvedValue {
	values := []ResolvedValue{{
		Key:      "config",
		Value:    l.configFile.ConfigPath,
		Source:   l.configFile.Source,
		Shadowed: l.configFile.Shadowed,
	}}

	for _, b := range bindings {
		rv := ResolvedValue{
			Key:      b.key,
			Value:    l.v.GetString(b.key),
			Shadowed: make(map[ConfigSource]string),
		}
		envValue, envSet := os.LookupEnv(b.env)

		switch f := l.flags[b.key]; {
		case f != nil && f.Changed:
			rv.Source = SourceFlag
			if envSet {
				rv.Shadowed[SourceEnv] = envValue
			}
		case envSet:
			rv.Source = SourceEnv
		case l.v.InConfig(b.key):
			rv.Source = SourceConfig
		default:
			rv.Source = SourceDefault
		}
		values = append(values, rv)
	}
	return values
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
