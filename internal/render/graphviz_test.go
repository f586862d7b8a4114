package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeDot(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dot")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return dir
}

func TestRender_DotMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	image := filepath.Join(t.TempDir(), "out.png")
	err := Render("graph.dot", image)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphviz 'dot' not found in PATH")
	assert.NoFileExists(t, image)
}

func TestRender_InvokesDot(t *testing.T) {
	// Fake dot writes its output file so the invocation args can be
	// verified without Graphviz installed.
	dir := writeFakeDot(t, "#!/bin/sh\nprintf png > \"$4\"\n")
	t.Setenv("PATH", dir)

	dotFile := filepath.Join(t.TempDir(), "graph.dot")
	require.NoError(t, os.WriteFile(dotFile, []byte("digraph IAM {\n}\n"), 0644))
	image := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, Render(dotFile, image))
	assert.FileExists(t, image)
}

func TestRender_DotFails(t *testing.T) {
	dir := writeFakeDot(t, "#!/bin/sh\necho 'syntax error in line 1' >&2\nexit 1\n")
	t.Setenv("PATH", dir)

	image := filepath.Join(t.TempDir(), "out.png")
	err := Render("graph.dot", image)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "running dot")
	assert.Contains(t, err.Error(), "syntax error in line 1")
	assert.NoFileExists(t, image)
}
