package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestExportCmd_RejectsUnknownEntityKind(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewExportCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--entities", "users,buckets"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown entity kind")
	}
	if !strings.Contains(err.Error(), "unknown entity kind") {
		t.Errorf("error = %v, want mention of unknown entity kind", err)
	}
}
