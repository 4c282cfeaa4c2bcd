package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is a small YAML project file naming the entry point to
// build and where to write its output, standing in for the project/
// build config the teacher's eval harness loads with the same
// read-file-then-Unmarshal shape. Since this driver has no lexer or
// parser, "entry point" names one of internal/fixtures' built-in
// programs rather than a source file on disk.
type ProjectConfig struct {
	Entry string `yaml:"entry"`
	Out   string `yaml:"out"`
}

// loadProjectConfig reads and parses a YAML project file.
func loadProjectConfig(path string) (ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to read project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to parse project config: %w", err)
	}
	if cfg.Entry == "" {
		return ProjectConfig{}, fmt.Errorf("project config: 'entry' is required")
	}
	return cfg, nil
}
