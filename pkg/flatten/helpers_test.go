package flatten

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdir switches the working directory for one test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// tempFixture creates a directory tree from relative path to content, makes
// it the working directory, and returns its root with symlinks resolved.
func tempFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	chdir(t, dir)
	return dir
}

// newTestFlattener builds a Flattener for cfg with diagnostics disabled.
func newTestFlattener(t *testing.T, cfg Config) *Flattener {
	t.Helper()
	f, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	return f
}
