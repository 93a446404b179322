package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default complexity thresholds based on McCabe complexity standards
const (
	// DefaultLowComplexityThreshold is the upper bound for low-risk graphs
	DefaultLowComplexityThreshold = 9

	// DefaultMediumComplexityThreshold is the upper bound for medium-risk
	// graphs; values above it are high risk
	DefaultMediumComplexityThreshold = 19
)

// Default output settings
const (
	// DefaultOutputFormat is the report rendering used when none is given
	DefaultOutputFormat = "text"
)

// DefaultIncludePatterns selects the source files picked up when a
// directory is analyzed
var DefaultIncludePatterns = []string{"**/*.src"}

// Config represents the main configuration structure
type Config struct {
	// Input holds source discovery configuration
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Output holds report formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Complexity holds cyclomatic complexity configuration
	Complexity ComplexityConfig `mapstructure:"complexity" yaml:"complexity"`
}

// InputConfig holds configuration for source file discovery
type InputConfig struct {
	// IncludePatterns are doublestar globs selecting source files
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are doublestar globs filtering out source files
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	// Format is one of text, json, yaml, dot
	Format string `mapstructure:"format" yaml:"format"`

	// Directory receives report files; empty means stdout
	Directory string `mapstructure:"directory" yaml:"directory"`

	// ShowUnreachable includes unreachable-block findings in reports
	ShowUnreachable bool `mapstructure:"show_unreachable" yaml:"show_unreachable"`
}

// ComplexityConfig holds configuration for cyclomatic complexity
type ComplexityConfig struct {
	// Enabled controls whether complexity is computed and reported
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// LowThreshold is the upper bound for low risk (inclusive)
	LowThreshold int `mapstructure:"low_threshold" yaml:"low_threshold"`

	// MediumThreshold is the upper bound for medium risk (inclusive)
	MediumThreshold int `mapstructure:"medium_threshold" yaml:"medium_threshold"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			IncludePatterns: append([]string{}, DefaultIncludePatterns...),
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		Complexity: ComplexityConfig{
			Enabled:         true,
			LowThreshold:    DefaultLowComplexityThreshold,
			MediumThreshold: DefaultMediumComplexityThreshold,
		},
	}
}

// LoadConfig loads configuration from an explicit file, falling back
// to defaults when path is empty and no config file is found.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("input.include_patterns", DefaultIncludePatterns)
	v.SetDefault("input.exclude_patterns", []string{})
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.directory", "")
	v.SetDefault("output.show_unreachable", false)
	v.SetDefault("complexity.enabled", true)
	v.SetDefault("complexity.low_threshold", DefaultLowComplexityThreshold)
	v.SetDefault("complexity.medium_threshold", DefaultMediumComplexityThreshold)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".cflow")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent values
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml", "dot":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	if c.Complexity.LowThreshold < 1 {
		return fmt.Errorf("complexity low threshold must be >= 1, got %d", c.Complexity.LowThreshold)
	}
	if c.Complexity.MediumThreshold < c.Complexity.LowThreshold {
		return fmt.Errorf("complexity medium threshold (%d) must be >= low threshold (%d)",
			c.Complexity.MediumThreshold, c.Complexity.LowThreshold)
	}
	return nil
}
