package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DefaultProfile)
	assert.Equal(t, "", cfg.DefaultRegion)
}

func TestLoad_ValidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "iam-graph")
	require.NoError(t, os.MkdirAll(dir, 0755))
	data := []byte("default_profile: audit\ndefault_region: eu-west-1\nyaml_file: /tmp/iam.yaml\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "audit", cfg.DefaultProfile)
	assert.Equal(t, "eu-west-1", cfg.DefaultRegion)
	assert.Equal(t, "/tmp/iam.yaml", cfg.YAMLFile)
}

func TestConfig_Unmarshal(t *testing.T) {
	data := []byte("dot_file: graph.dot\ngraph_image: graph.png\n")
	var cfg Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "graph.dot", cfg.DOTFile)
	assert.Equal(t, "graph.png", cfg.GraphImage)
}

func TestConfig_Merge(t *testing.T) {
	cfg := &Config{DefaultProfile: "audit", DefaultRegion: "eu-west-1"}

	p, r := cfg.Merge("", "")
	assert.Equal(t, "audit", p)
	assert.Equal(t, "eu-west-1", r)

	p, r = cfg.Merge("prod", "us-east-1")
	assert.Equal(t, "prod", p)
	assert.Equal(t, "us-east-1", r)
}

func TestConfig_MergePaths(t *testing.T) {
	cfg := &Config{YAMLFile: "from-config.yaml"}

	y, d, g := cfg.MergePaths("", "", "")
	assert.Equal(t, "from-config.yaml", y)
	assert.Equal(t, DefaultDOTFile, d)
	assert.Equal(t, DefaultGraphImage, g)

	y, d, g = cfg.MergePaths("flag.yaml", "flag.dot", "flag.png")
	assert.Equal(t, "flag.yaml", y)
	assert.Equal(t, "flag.dot", d)
	assert.Equal(t, "flag.png", g)
}
