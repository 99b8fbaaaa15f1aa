package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_GeneratesFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	sweepHCL := `
		sweep "tiny" {
			base_job_id = 10
			baseline    = "defaults.json"
			axis "S" {
				tag    = "S"
				values = [1, 2]
			}
			job {
				command = "./sim"
			}
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.hcl"), []byte(sweepHCL), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaults.json"), []byte(`{"dt": 0.1}`), 0600))
	out := t.TempDir()
	args := []string{"--output-root", out, filepath.Join(dir, "tiny.hcl")}
	buf := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), buf, args)

	// --- Assert ---
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "tiny", "params10.json"))
	require.FileExists(t, filepath.Join(out, "tiny", "job11.sh"))
	require.Contains(t, buf.String(), "Wrote job script.")
}

func TestRun_LoadErrorIsReturned(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		sweep "broken" {
			axis "S" {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")

	// --- Act ---
	runErr := run(context.Background(), &bytes.Buffer{}, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.IsType(t, &cli.ExitError{}, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
