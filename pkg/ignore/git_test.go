package ignore

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for one test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// tempRepo initializes an empty git repository in a fresh directory and
// returns its root with symlinks resolved.
func tempRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

// TestDetectGitIgnoreWithoutRepository verifies the detached oracle excludes
// nothing.
func TestDetectGitIgnoreWithoutRepository(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	chdir(t, dir)

	g := DetectGitIgnore(nil)

	assert.False(t, g.Excluded("a.txt"))
	assert.False(t, g.Excluded("node_modules/x.js"))
}

// TestGitIgnoreHonorsRules verifies wildcard, negation, and directory rules
// from the repository root .gitignore.
func TestGitIgnoreHonorsRules(t *testing.T) {
	dir := tempRepo(t)
	rules := "*.log\n!keep.log\nbuild/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(rules), 0o644))
	chdir(t, dir)

	g := DetectGitIgnore(nil)

	assert.True(t, g.Excluded("debug.log"))
	assert.True(t, g.Excluded("logs/debug.log"))
	assert.False(t, g.Excluded("keep.log"))
	assert.True(t, g.Excluded("build/out.bin"))
	assert.False(t, g.Excluded("main.go"))
}

// TestGitIgnoreReadsNestedFiles verifies .gitignore files below the root are
// scoped to their directory.
func TestGitIgnoreReadsNestedFiles(t *testing.T) {
	dir := tempRepo(t)
	sub := filepath.Join(dir, "vendor")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, ".gitignore"), []byte("*.a\n"), 0o644))
	chdir(t, dir)

	g := DetectGitIgnore(nil)

	assert.True(t, g.Excluded("vendor/lib.a"))
	assert.False(t, g.Excluded("lib.a"))
}

// TestGitIgnoreExcludesGitMetadata verifies the implicit rule for the .git
// directory.
func TestGitIgnoreExcludesGitMetadata(t *testing.T) {
	dir := tempRepo(t)
	chdir(t, dir)

	g := DetectGitIgnore(nil)

	assert.True(t, g.Excluded(".git/config"))
	assert.True(t, g.Excluded(filepath.Join(dir, ".git", "HEAD")))
	assert.False(t, g.Excluded(".gitignore"))
}

// TestGitIgnoreSkipsPathsOutsideWorktree verifies paths beyond the working
// tree are never reported ignored, whatever the rules say.
func TestGitIgnoreSkipsPathsOutsideWorktree(t *testing.T) {
	dir := tempRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*\n"), 0o644))
	outside, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	chdir(t, dir)

	g := DetectGitIgnore(nil)

	assert.False(t, g.Excluded(filepath.Join(outside, "free.txt")))
	assert.True(t, g.Excluded("caught.txt"))
}

// TestDetectGitIgnoreFromSubdirectory verifies repository discovery walks up
// from the working directory and rules still resolve against the root.
func TestDetectGitIgnoreFromSubdirectory(t *testing.T) {
	dir := tempRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("secret.txt\n"), 0o644))
	sub := filepath.Join(dir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	g := DetectGitIgnore(nil)

	assert.True(t, g.Excluded("secret.txt"))
	assert.True(t, g.Excluded(filepath.Join(dir, "secret.txt")))
	assert.False(t, g.Excluded("open.txt"))
}
