package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "mocha" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "mocha")
	}
	if len(cfg.ReadTools) == 0 {
		t.Error("DefaultConfig should have some read tools")
	}

	found := false
	for _, tool := range cfg.ReadTools {
		if tool == "Read" {
			found = true
			break
		}
	}
	if !found {
		t.Error("DefaultConfig should include 'Read' in read tools")
	}
}

func TestIsReadTool(t *testing.T) {
	cfg := &Config{
		ReadTools: []string{"Read", "Grep", "Glob"},
		EditTools: []string{"Edit", "Write"},
	}

	tests := []struct {
		tool     string
		expected bool
	}{
		{"Read", true},
		{"Grep", true},
		{"Glob", true},
		{"Write", false},
		{"Bash", false},
		{"Edit", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := cfg.IsReadTool(tt.tool)
			if result != tt.expected {
				t.Errorf("IsReadTool(%q) = %v, want %v", tt.tool, result, tt.expected)
			}
		})
	}
}

func TestIsEditTool(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsEditTool("Edit") {
		t.Error("Edit should be an edit tool by default")
	}
	if cfg.IsEditTool("Read") {
		t.Error("Read should not be an edit tool")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config should fall back to defaults, got %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme = %q, want default", cfg.Theme)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
theme: latte
project_prefix: "-Users-dev-proj"
export_path: /tmp/stats.jsonl
read_tools:
  - Read
  - WebFetch
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.Theme)
	}
	if cfg.ProjectPrefix != "-Users-dev-proj" {
		t.Errorf("ProjectPrefix = %q", cfg.ProjectPrefix)
	}
	if cfg.ExportPath != "/tmp/stats.jsonl" {
		t.Errorf("ExportPath = %q", cfg.ExportPath)
	}
	if !cfg.IsReadTool("WebFetch") {
		t.Error("read_tools override should include WebFetch")
	}
	// Unset keys keep their defaults
	if !cfg.IsEditTool("Edit") {
		t.Error("edit_tools should keep defaults when not set")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid YAML should return an error")
	}
}

func TestGlobal(t *testing.T) {
	custom := &Config{Theme: "frappe"}
	SetGlobal(custom)
	defer SetGlobal(nil)

	if Global() != custom {
		t.Error("Global should return the configured instance")
	}
}
