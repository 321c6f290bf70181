package config

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Theme is the catppuccin flavor used for styled output
	// (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// ProjectPrefix filters project directory names during discovery.
	// Empty matches every project under ~/.claude/projects.
	ProjectPrefix string `yaml:"project_prefix"`

	// ExportPath overrides the default snapshot export path
	ExportPath string `yaml:"export_path"`

	// ReadTools are counted into the read/search summary bucket
	ReadTools []string `yaml:"read_tools"`

	// EditTools are grouped together in per-session reports
	EditTools []string `yaml:"edit_tools"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme:     "mocha",
		ReadTools: []string{"Read", "Glob", "Grep"},
		EditTools: []string{"Edit", "Write", "NotebookEdit"},
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/cc_session_stats/, XDG_CONFIG_HOME
	paths := []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "cc_session_stats", "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "cc_session_stats", "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil {
			return Load(cleanPath)
		}
	}

	return DefaultConfig(), nil
}

// IsReadTool reports whether a tool belongs to the read/search category
func (c *Config) IsReadTool(tool string) bool {
	return slices.Contains(c.ReadTools, tool)
}

// IsEditTool reports whether a tool belongs to the edit/write category
func (c *Config) IsEditTool(tool string) bool {
	return slices.Contains(c.EditTools, tool)
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
