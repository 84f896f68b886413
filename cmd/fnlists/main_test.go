package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fnlists/internal/cli"
)

func TestRun_Inspect(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	src := "lists:\n  - name: flags\n    type: bool_list\n    values: [true, false]\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "flags.yml"), []byte(src), 0o600))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"inspect", "--output", "json", tempDir})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), `"socket": "literal.flags"`)
	require.Contains(t, out.String(), `"type": "bool_list"`)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Asking for help prints usage and is not an error.
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when help is requested")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidLiteral(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte("list \"x\" {\n  type = matrix\n  values = []\n}\n"), 0o600))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"inspect", filePath})

	// --- Assert ---
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, err.Error(), "Unsupported type")
}
