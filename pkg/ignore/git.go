package ignore

import (
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// GitIgnore answers whether git would ignore a path, using the ignore rules
// of the working tree enclosing the process's current directory. Outside any
// working tree the oracle excludes nothing.
type GitIgnore struct {
	root    string            // absolute worktree root, "" when detached
	matcher gitignore.Matcher // nil when no rules could be read
	logger  *zap.Logger
}

// DetectGitIgnore locates a git working tree enclosing the current directory
// and loads its ignore rules. Absence of a repository, a bare repository, or
// any failure reading the rules yields an oracle that excludes nothing. A nil
// logger disables diagnostics.
func DetectGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &GitIgnore{logger: logger}

	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debug("No git repository found", zap.Error(err))
		return g
	}
	wt, err := repo.Worktree()
	if err != nil {
		logger.Debug("Git repository has no working tree", zap.Error(err))
		return g
	}
	g.root = wt.Filesystem.Root()

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		logger.Debug("Failed to read gitignore rules", zap.Error(err))
	} else {
		g.matcher = gitignore.NewMatcher(patterns)
	}
	logger.Debug("Using git ignore rules",
		zap.String("root", g.root),
		zap.Int("patternCount", len(patterns)))
	return g
}

// Name identifies the filter in diagnostic output.
func (g *GitIgnore) Name() string { return "gitignore" }

// Excluded reports whether git ignores path. Paths that cannot be resolved
// against the working tree, including paths outside it, are reported as not
// ignored: ignore status is advisory, never a reason to fail.
func (g *GitIgnore) Excluded(path string) bool {
	if g.root == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}

	parts := strings.Split(rel, "/")
	// Git treats its own metadata directory as permanently ignored; the
	// rule is implicit and never appears in any .gitignore.
	for _, part := range parts {
		if part == ".git" {
			return true
		}
	}
	return g.matcher != nil && g.matcher.Match(parts, false)
}
