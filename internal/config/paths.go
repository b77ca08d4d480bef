package config

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved locations of every file a run touches.
type Paths struct {
	// Schema is the schema file.
	Schema string

	// Descriptions is the field descriptions file.
	Descriptions string

	// CorpusDir is the directory of description documents.
	CorpusDir string

	// Template is the generated template file.
	Template string

	// Pattern selects corpus files within CorpusDir.
	Pattern string
}

// Paths resolves the configured locations against BaseDir.
// Absolute paths and ~ paths are not joined with BaseDir.
func (c *Config) Paths() (Paths, error) {
	cfg := c.WithDefaults()

	base, err := ExpandPath(cfg.BaseDir)
	if err != nil {
		return Paths{}, err
	}

	var p Paths
	for _, r := range []struct {
		dst *string
		src string
	}{
		{&p.Schema, cfg.Schema},
		{&p.Descriptions, cfg.Descriptions},
		{&p.CorpusDir, cfg.CorpusDir},
		{&p.Template, cfg.Template},
	} {
		resolved, err := ResolvePath(base, r.src)
		if err != nil {
			return Paths{}, err
		}
		*r.dst = resolved
	}
	p.Pattern = cfg.Pattern
	return p, nil
}

// ResolvePath expands ~ in path and joins relative results with base.
func ResolvePath(base, path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) || base == "" {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

// GetConfigFile returns the config file path.
// If DSDCHECK_CONFIG is set, it takes precedence.
func GetConfigFile() string {
	if envPath := os.Getenv("DSDCHECK_CONFIG"); envPath != "" {
		return envPath
	}
	return DefaultConfigFile
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
