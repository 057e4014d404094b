package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the YAML project file read by the command line driver
type ProjectConfig struct {
	LanguageVersion   *LanguageVersion `yaml:"languageVersion"`
	RootNamespace     string           `yaml:"rootNamespace"`
	Imports           []string         `yaml:"imports"`
	ToolingReferences *bool            `yaml:"toolingReferences"`
	Workers           int              `yaml:"workers"`
	Catalog           string           `yaml:"catalog"`
	Documents         []string         `yaml:"documents"`
}

// LoadProjectConfig reads and parses a project file
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}

	root := config.GetProjectRoot(absPath)
	if config.Catalog != "" && !filepath.IsAbs(config.Catalog) {
		config.Catalog = filepath.Join(root, config.Catalog)
	}
	for i, doc := range config.Documents {
		if !filepath.IsAbs(doc) {
			config.Documents[i] = filepath.Join(root, doc)
		}
	}
	return &config, nil
}

// GetProjectRoot returns the directory containing the project file
func (c *ProjectConfig) GetProjectRoot(projectPath string) string {
	return filepath.Dir(projectPath)
}

// Options converts the project file into compiler options
func (c *ProjectConfig) Options() []CompilerConfigOption {
	var opts []CompilerConfigOption
	if c.LanguageVersion != nil {
		opts = append(opts, WithLanguageVersion(*c.LanguageVersion))
	}
	if c.RootNamespace != "" {
		opts = append(opts, WithRootNamespace(c.RootNamespace))
	}
	if len(c.Imports) > 0 {
		opts = append(opts, WithDefaultImports(c.Imports...))
	}
	if c.ToolingReferences != nil {
		opts = append(opts, WithToolingReferences(*c.ToolingReferences))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
