package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Built-in output paths, used when neither a flag nor the config file sets
// one.
const (
	DefaultYAMLFile   = "iam_data.yaml"
	DefaultDOTFile    = "iam_graph.dot"
	DefaultGraphImage = "iam_graph.png"
)

// Config holds optional defaults loaded from ~/.config/iam-graph/config.yaml.
type Config struct {
	DefaultProfile string `yaml:"default_profile"`
	DefaultRegion  string `yaml:"default_region"`
	YAMLFile       string `yaml:"yaml_file"`
	DOTFile        string `yaml:"dot_file"`
	GraphImage     string `yaml:"graph_image"`
}

// Load reads the config file. Returns zero-value Config if the file doesn't
// exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}, nil
	}

	path := filepath.Join(home, ".config", "iam-graph", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config
// defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// MergePaths resolves the output paths: flag over config file over built-in
// default.
func (c *Config) MergePaths(yamlFile, dotFile, graphImage string) (string, string, string) {
	return resolvePath(yamlFile, c.YAMLFile, DefaultYAMLFile),
		resolvePath(dotFile, c.DOTFile, DefaultDOTFile),
		resolvePath(graphImage, c.GraphImage, DefaultGraphImage)
}

func resolvePath(flag, configured, fallback string) string {
	if flag != "" {
		return flag
	}
	if configured != "" {
		return configured
	}
	return fallback
}
