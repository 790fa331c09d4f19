package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against the xlsx backend rooted at dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithLog(t, dir, append([]string{"--log-level", "error"}, args...)...)
	return out, err
}

// runWithLog is run without a log level override, returning stderr too.
func runWithLog(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--backend", "xlsx", "--dir", dir}, args...))
	err := cmd.Execute()
	return strings.TrimSpace(stdout.String()), stderr.String(), err
}

func TestImportAndResolve(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	records := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(records, []byte(`[{"name": "x", "age": 3}, null, {"name": "y"}]`), 0644))

	out, err := run(t, dir, "import", "Book", "People", records)
	require.NoError(t, err)
	assert.Equal(t, `"People!A2:B4"`, out)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, `["Book"]`, out)

	out, err = run(t, dir, "row", "Book", "People", "1")
	require.NoError(t, err)
	assert.Equal(t, `["age","name"]`, out)

	out, err = run(t, dir, "resolve", "Book", "People!A1:B9")
	require.NoError(t, err)
	assert.Equal(t, `[{"age":3,"name":"x"},{"name":"y"}]`, out)

	out, err = run(t, dir, "find", "Book", "X", "--ignore-case")
	require.NoError(t, err)
	assert.Contains(t, out, `"label":"B2"`)
}

func TestImportLogsProgress(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	records := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(records, []byte(`[{"name": "x"}]`), 0644))

	out, logs, err := runWithLog(t, dir, "--log-level", "info", "import", "Book", "People", records)
	require.NoError(t, err)
	assert.Equal(t, `"People!A2:A2"`, out)
	assert.Contains(t, logs, "Imported records")
	assert.Contains(t, logs, "People!A2:A2")
}

func TestCommandErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	_, err := run(t, dir, "resolve", "Book", "not-a-ref")
	assert.Error(t, err)

	_, err = run(t, dir, "worksheets", "Missing")
	assert.Error(t, err)

	_, err = run(t, dir, "row", "Book", "Sheet1", "0")
	assert.Error(t, err)

	_, err = run(t, dir, "--backend", "ftp", "list")
	assert.Error(t, err)
}
