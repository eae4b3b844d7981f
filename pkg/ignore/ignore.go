// Package ignore decides whether a candidate path is excluded from
// processing. Two filters exist: Matcher applies user-supplied fnmatch-style
// exclude patterns, and GitIgnore consults the ignore rules of an enclosing
// git working tree. Discovery queries both through the Filter interface as an
// ordered chain of predicates, so further filter kinds can be appended
// without touching discovery control flow.
package ignore

// Filter reports whether a path is excluded from processing. Paths are
// relative, slash-separated.
type Filter interface {
	// Name identifies the filter in diagnostic output.
	Name() string
	// Excluded reports whether path is excluded.
	Excluded(path string) bool
}
