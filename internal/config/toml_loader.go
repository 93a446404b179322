package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfigFileName is the project configuration file searched for
// upward from the working directory
const TomlConfigFileName = ".cflow.toml"

// TomlConfig represents the structure of .cflow.toml. Booleans are
// pointers to detect unset values when merging over defaults.
type TomlConfig struct {
	Input      TomlInputConfig      `toml:"input"`
	Output     TomlOutputConfig     `toml:"output"`
	Complexity TomlComplexityConfig `toml:"complexity"`
}

// TomlInputConfig represents the [input] section
type TomlInputConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

// TomlOutputConfig represents the [output] section
type TomlOutputConfig struct {
	Format          string `toml:"format"`
	Directory       string `toml:"directory"`
	ShowUnreachable *bool  `toml:"show_unreachable"`
}

// TomlComplexityConfig represents the [complexity] section
type TomlComplexityConfig struct {
	Enabled         *bool `toml:"enabled"`
	LowThreshold    int   `toml:"low_threshold"`
	MediumThreshold int   `toml:"medium_threshold"`
}

// FindTomlConfig searches startDir and its parents for a
// .cflow.toml file and returns its path, or "" when none exists.
func FindTomlConfig(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, TomlConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadTomlConfig reads and parses a .cflow.toml file
func LoadTomlConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &TomlConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyTo merges the set values of the TOML config into cfg
func (t *TomlConfig) ApplyTo(cfg *Config) {
	if len(t.Input.IncludePatterns) > 0 {
		cfg.Input.IncludePatterns = t.Input.IncludePatterns
	}
	if len(t.Input.ExcludePatterns) > 0 {
		cfg.Input.ExcludePatterns = t.Input.ExcludePatterns
	}
	if t.Output.Format != "" {
		cfg.Output.Format = t.Output.Format
	}
	if t.Output.Directory != "" {
		cfg.Output.Directory = t.Output.Directory
	}
	if t.Output.ShowUnreachable != nil {
		cfg.Output.ShowUnreachable = *t.Output.ShowUnreachable
	}
	if t.Complexity.Enabled != nil {
		cfg.Complexity.Enabled = *t.Complexity.Enabled
	}
	if t.Complexity.LowThreshold > 0 {
		cfg.Complexity.LowThreshold = t.Complexity.LowThreshold
	}
	if t.Complexity.MediumThreshold > 0 {
		cfg.Complexity.MediumThreshold = t.Complexity.MediumThreshold
	}
}

// LoadProjectConfig loads defaults, then merges the nearest
// .cflow.toml found from startDir upward, if any.
func LoadProjectConfig(startDir string) (*Config, error) {
	cfg := DefaultConfig()

	path := FindTomlConfig(startDir)
	if path == "" {
		return cfg, nil
	}

	tomlCfg, err := LoadTomlConfig(path)
	if err != nil {
		return nil, err
	}
	tomlCfg.ApplyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
