package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected and returns what it
// printed alongside its error.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func writeSpecFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "specs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeNavFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "sidebar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunScaffoldAllCreated(t *testing.T) {
	root := t.TempDir()
	specFile := writeSpecFile(t, t.TempDir(), `- path: one.md
  title: One
- path: guide/two.md
  title: Two
`)

	out, err := captureStdout(t, func() error { return runScaffold(root, specFile) })
	require.NoError(t, err, "created-only batch must exit zero")
	assert.Contains(t, out, "CREATED one.md\n")
	assert.Contains(t, out, "CREATED guide/two.md\n")
	assert.Contains(t, out, "scaffold: 2 created, 0 skipped, 0 errors\n")
}

func TestRunScaffoldRerunSkips(t *testing.T) {
	root := t.TempDir()
	specFile := writeSpecFile(t, t.TempDir(), `- path: one.md
  title: One
`)

	_, err := captureStdout(t, func() error { return runScaffold(root, specFile) })
	require.NoError(t, err)

	out, err := captureStdout(t, func() error { return runScaffold(root, specFile) })
	require.NoError(t, err, "skipped-only batch must exit zero")
	assert.Contains(t, out, "SKIPPED one.md\n")
	assert.Contains(t, out, "scaffold: 0 created, 1 skipped, 0 errors\n")
}

func TestRunScaffoldFailingSpecSetsExitAndContinues(t *testing.T) {
	root := t.TempDir()
	specFile := writeSpecFile(t, t.TempDir(), `- path: one.md
  title: One
- path: ../escape.md
  title: Bad
- path: two.md
  title: Two
`)

	out, err := captureStdout(t, func() error { return runScaffold(root, specFile) })
	require.Error(t, err, "any failing spec must make the command fail")
	assert.Contains(t, out, "CREATED one.md\n")
	assert.Contains(t, out, "ERROR ../escape.md:")
	assert.Contains(t, out, "CREATED two.md\n")
	assert.Contains(t, out, "scaffold: 2 created, 0 skipped, 1 errors\n")

	_, statErr := os.Stat(filepath.Join(root, "two.md"))
	assert.NoError(t, statErr, "specs after a failing one must still run")
}

func TestRunScaffoldUnreadableSpecFileIsFatal(t *testing.T) {
	err := runScaffold(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func writeContentFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# "+rel+"\n"), 0o644))
}

func TestRunValidateNavOrphansExitZero(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "linked.md")
	writeContentFile(t, root, "stray.md")
	navFile := writeNavFile(t, t.TempDir(), `sidebar:
  - doc: linked
`)

	out, err := captureStdout(t, func() error { return runValidateNav(root, navFile) })
	require.NoError(t, err, "orphans alone must not fail validation")
	assert.Contains(t, out, "warning: orphaned document: stray\n")
	assert.Contains(t, out, "validate-nav: 2 documents, 0 dangling references, 1 orphans\n")
}

func TestRunValidateNavDanglingFails(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "linked.md")
	navFile := writeNavFile(t, t.TempDir(), `sidebar:
  - doc: linked
  - label: Broken
    children:
      - doc: ghost
      - doc: phantom
`)

	out, err := captureStdout(t, func() error { return runValidateNav(root, navFile) })
	require.Error(t, err, "dangling references must fail validation")
	assert.Contains(t, out, "dangling reference: ghost (at Broken > ghost)\n")
	assert.Contains(t, out, "dangling reference: phantom (at Broken > phantom)\n")
	assert.Contains(t, out, "validate-nav: 1 documents, 2 dangling references, 0 orphans\n")
}

func TestRunValidateNavUnreadableNavFileIsFatal(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "linked.md")

	err := runValidateNav(root, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
