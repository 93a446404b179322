package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeToml(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, TomlConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindTomlConfig(t *testing.T) {
	t.Run("FoundInStartDir", func(t *testing.T) {
		dir := t.TempDir()
		path := writeToml(t, dir, "")

		if found := FindTomlConfig(dir); found != path {
			t.Errorf("Expected %s, got %s", path, found)
		}
	})

	t.Run("FoundInParent", func(t *testing.T) {
		dir := t.TempDir()
		path := writeToml(t, dir, "")
		sub := filepath.Join(dir, "a", "b")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatal(err)
		}

		if found := FindTomlConfig(sub); found != path {
			t.Errorf("Expected upward search to find %s, got %s", path, found)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if found := FindTomlConfig(t.TempDir()); found != "" {
			t.Errorf("Expected empty result, got %s", found)
		}
	})
}

func TestLoadTomlConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[input]
include_patterns = ["**/*.prog"]

[output]
format = "dot"
show_unreachable = true

[complexity]
enabled = false
low_threshold = 4
`)

	cfg, err := LoadTomlConfig(path)
	if err != nil {
		t.Fatalf("LoadTomlConfig failed: %v", err)
	}
	if len(cfg.Input.IncludePatterns) != 1 || cfg.Input.IncludePatterns[0] != "**/*.prog" {
		t.Errorf("Unexpected include patterns: %v", cfg.Input.IncludePatterns)
	}
	if cfg.Output.Format != "dot" {
		t.Errorf("Expected format 'dot', got %s", cfg.Output.Format)
	}
	if cfg.Output.ShowUnreachable == nil || !*cfg.Output.ShowUnreachable {
		t.Error("Expected show_unreachable true")
	}
	if cfg.Complexity.Enabled == nil || *cfg.Complexity.Enabled {
		t.Error("Expected complexity disabled")
	}
}

func TestLoadTomlConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, "not [valid toml")

	if _, err := LoadTomlConfig(path); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestApplyTo(t *testing.T) {
	t.Run("SetValuesOverride", func(t *testing.T) {
		enabled := false
		toml := &TomlConfig{
			Output:     TomlOutputConfig{Format: "yaml"},
			Complexity: TomlComplexityConfig{Enabled: &enabled, LowThreshold: 3},
		}

		cfg := DefaultConfig()
		toml.ApplyTo(cfg)

		if cfg.Output.Format != "yaml" {
			t.Errorf("Expected format override, got %s", cfg.Output.Format)
		}
		if cfg.Complexity.Enabled {
			t.Error("Expected enabled override to false")
		}
		if cfg.Complexity.LowThreshold != 3 {
			t.Errorf("Expected low threshold 3, got %d", cfg.Complexity.LowThreshold)
		}
	})

	t.Run("UnsetValuesKeepDefaults", func(t *testing.T) {
		cfg := DefaultConfig()
		(&TomlConfig{}).ApplyTo(cfg)

		if cfg.Output.Format != "text" {
			t.Errorf("Empty TOML must not change format, got %s", cfg.Output.Format)
		}
		if !cfg.Complexity.Enabled {
			t.Error("Empty TOML must not disable complexity")
		}
		if len(cfg.Input.IncludePatterns) != 1 {
			t.Errorf("Empty TOML must not change include patterns, got %v", cfg.Input.IncludePatterns)
		}
	})
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("WithProjectFile", func(t *testing.T) {
		dir := t.TempDir()
		writeToml(t, dir, "[output]\nformat = \"json\"\n")

		cfg, err := LoadProjectConfig(dir)
		if err != nil {
			t.Fatalf("LoadProjectConfig failed: %v", err)
		}
		if cfg.Output.Format != "json" {
			t.Errorf("Expected format 'json', got %s", cfg.Output.Format)
		}
	})

	t.Run("WithoutProjectFile", func(t *testing.T) {
		cfg, err := LoadProjectConfig(t.TempDir())
		if err != nil {
			t.Fatalf("LoadProjectConfig failed: %v", err)
		}
		if cfg.Output.Format != "text" {
			t.Errorf("Expected defaults, got format %s", cfg.Output.Format)
		}
	})

	t.Run("InvalidProjectFile", func(t *testing.T) {
		dir := t.TempDir()
		writeToml(t, dir, "[output]\nformat = \"xml\"\n")

		if _, err := LoadProjectConfig(dir); err == nil {
			t.Error("Expected validation error for invalid project config")
		}
	})
}
