package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scenarioHCL := `
create_node "transform" {
  name = "group1"
}

create_node "transform" {
  name   = "locator1"
  parent = "group1"
}

ls {
  pattern = "locator1"
  long    = true
}
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "scene.hcl")
	err := os.WriteFile(filePath, []byte(scenarioHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errOut, args)

	// --- Assert ---
	require.NoError(t, runErr)
	require.Equal(t, "|group1|locator1\n", out.String())
}

func TestRun_ParseFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error guaranteed to fail the loading phase.
	invalidHCL := `
create_node "transform" {
  name = "group1"
// Missing closing brace here
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "scene.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errOut, args)

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to load scenario")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error buffer")
}
