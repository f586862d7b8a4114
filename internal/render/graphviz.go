// Package render rasterizes a DOT file into an image with the external
// Graphviz dot tool.
package render

import (
	"fmt"
	"os/exec"
	"strings"
)

// Render converts dotFile into a PNG at imageFile. It fails when the dot
// binary is not on PATH or exits non-zero; there is no fallback renderer.
func Render(dotFile, imageFile string) error {
	if _, err := exec.LookPath("dot"); err != nil {
		return fmt.Errorf("graphviz 'dot' not found in PATH — install it: https://graphviz.org/download/")
	}

	cmd := exec.Command("dot", "-Tpng", dotFile, "-o", imageFile)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("running dot: %w: %s", err, msg)
		}
		return fmt.Errorf("running dot: %w", err)
	}
	return nil
}
