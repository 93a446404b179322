package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Complexity.LowThreshold != 9 {
		t.Errorf("Expected low threshold 9, got %d", config.Complexity.LowThreshold)
	}
	if config.Complexity.MediumThreshold != 19 {
		t.Errorf("Expected medium threshold 19, got %d", config.Complexity.MediumThreshold)
	}
	if !config.Complexity.Enabled {
		t.Error("Expected complexity analysis to be enabled by default")
	}

	if config.Output.Format != "text" {
		t.Errorf("Expected format 'text', got %s", config.Output.Format)
	}
	if config.Output.ShowUnreachable {
		t.Error("Expected show_unreachable to be false by default")
	}
	if config.Output.Directory != "" {
		t.Errorf("Expected empty output directory, got %s", config.Output.Directory)
	}

	if len(config.Input.IncludePatterns) != 1 || config.Input.IncludePatterns[0] != "**/*.src" {
		t.Errorf("Expected include patterns ['**/*.src'], got %v", config.Input.IncludePatterns)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("Default config must validate, got %v", err)
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		config := DefaultConfig()
		config.Output.Format = "xml"
		if err := config.Validate(); err == nil {
			t.Error("Expected error for invalid format")
		}
	})

	t.Run("LowThresholdBelowOne", func(t *testing.T) {
		config := DefaultConfig()
		config.Complexity.LowThreshold = 0
		if err := config.Validate(); err == nil {
			t.Error("Expected error for low threshold below 1")
		}
	})

	t.Run("MediumBelowLow", func(t *testing.T) {
		config := DefaultConfig()
		config.Complexity.LowThreshold = 10
		config.Complexity.MediumThreshold = 5
		if err := config.Validate(); err == nil {
			t.Error("Expected error for medium threshold below low threshold")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("NoFileFallsBackToDefaults", func(t *testing.T) {
		config, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Output.Format != "text" {
			t.Errorf("Expected default format, got %s", config.Output.Format)
		}
	})

	t.Run("ExplicitFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `output:
  format: json
  show_unreachable: true
complexity:
  low_threshold: 5
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Output.Format != "json" {
			t.Errorf("Expected format 'json', got %s", config.Output.Format)
		}
		if !config.Output.ShowUnreachable {
			t.Error("Expected show_unreachable true")
		}
		if config.Complexity.LowThreshold != 5 {
			t.Errorf("Expected low threshold 5, got %d", config.Complexity.LowThreshold)
		}
		// untouched keys keep their defaults
		if config.Complexity.MediumThreshold != 19 {
			t.Errorf("Expected default medium threshold, got %d", config.Complexity.MediumThreshold)
		}
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing explicit config file")
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected validation error for invalid format")
		}
	})
}
