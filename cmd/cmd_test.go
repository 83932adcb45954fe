package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCheckFileOK(t *testing.T) {
	path := writeScript(t, "ok.ct", "f(x) = x*x; f(3)")
	assert.NoError(t, checkFile(path))
}

func TestCheckFileSyntaxError(t *testing.T) {
	path := writeScript(t, "bad.ct", "(1 + 2")
	err := checkFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched delimiter")
}

func TestCheckFileScopeError(t *testing.T) {
	path := writeScript(t, "unbound.ct", "foo + 1")
	err := checkFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foo: not defined")
}

func TestCheckFileMissing(t *testing.T) {
	err := checkFile(filepath.Join(t.TempDir(), "nope.ct"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}
