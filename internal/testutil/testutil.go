// Package testutil holds helpers shared by tests that lay out puzzle input
// trees on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/solver"
)

// Chdir switches into dir and restores the working directory on cleanup.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")
	require.NoError(t, os.Chdir(dir), "failed to change directory")

	t.Cleanup(func() {
		assert.NoError(t, os.Chdir(original), "failed to restore working directory")
	})
}

// WriteFile creates path and its parent directories with content.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750), "failed to create %s", filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to write %s", path)
	return path
}

// WriteInput writes one input file for key below root, using the same layout
// the resolver reads from.
func WriteInput(t *testing.T, root string, key solver.Key, name, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(input.NewResolver(root).DayDir(key), name), content)
}

// AssertFileExists checks that path exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.NoError(t, err, "file should exist: %s", path)
}

// AssertFileContent checks that path holds exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)
	assert.Equal(t, want, string(content), "file content mismatch: %s", path)
}
