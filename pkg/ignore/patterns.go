package ignore

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidPattern indicates a malformed exclude pattern. CompilePatterns
// wraps it around the offending pattern text.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// compiledPattern is one exclude pattern prepared for repeated matching.
type compiledPattern struct {
	re     *regexp.Regexp // unanchored regexp translation of the glob
	source string         // original pattern text, for diagnostics
}

// Matcher tests paths against a fixed set of exclude patterns.
//
// Patterns use shell glob syntax: '*' and '?' wildcards and "[...]" classes
// with "[!...]" negation. There is no escape character, wildcards cross '/',
// and a pattern excludes a path when it matches anywhere inside it, so
// "*.log" excludes "logs/run.log" and "run.logs" alike. Callers who want a
// whole-path match supply their own anchors.
type Matcher struct {
	patterns []compiledPattern
	logger   *zap.Logger
}

// CompilePatterns compiles exclude patterns into a Matcher. Any malformed
// pattern fails the whole compilation. A nil logger disables diagnostics.
func CompilePatterns(patterns []string, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{
		patterns: make([]compiledPattern, 0, len(patterns)),
		logger:   logger,
	}
	for _, p := range patterns {
		re, err := regexp.Compile(`(?s)` + globToRegex(p))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		m.patterns = append(m.patterns, compiledPattern{re: re, source: p})
	}
	logger.Debug("Compiled exclude patterns", zap.Int("count", len(m.patterns)))
	return m, nil
}

// Name identifies the filter in diagnostic output.
func (m *Matcher) Name() string { return "exclude pattern" }

// Excluded reports whether any exclude pattern matches path.
func (m *Matcher) Excluded(path string) bool {
	_, ok := m.Match(path)
	return ok
}

// Match returns the first exclude pattern matching path.
func (m *Matcher) Match(path string) (string, bool) {
	for _, p := range m.patterns {
		if p.re.MatchString(path) {
			m.logger.Debug("Path matches exclude pattern",
				zap.String("path", path),
				zap.String("pattern", p.source))
			return p.source, true
		}
	}
	return "", false
}

// globToRegex translates one glob pattern into regexp source text. The result
// is left unanchored so the compiled pattern can match at any position.
func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if end, ok := appendCharClass(pattern, i, &b); ok {
			i = end
			continue
		}
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteByte('.')
		default:
			appendLiteralByte(c, &b)
		}
	}
	return b.String()
}

// appendCharClass appends the "[...]" class starting at pattern[start] as a
// regexp class and returns the index of its closing bracket. An unclosed
// class reports false so the caller emits the '[' as a literal.
func appendCharClass(pattern string, start int, b *strings.Builder) (int, bool) {
	if pattern[start] != '[' {
		return 0, false
	}
	end := findCharClassEnd(pattern, start)
	if end < 0 {
		return 0, false
	}
	b.WriteByte('[')
	i := start + 1
	switch {
	case pattern[i] == '!':
		b.WriteByte('^')
		i++
	case pattern[i] == '^':
		b.WriteString(`\^`)
		i++
	}
	// A ']' directly after the opening bracket (or the negation) is a
	// member of the class, not its terminator.
	if i < end && pattern[i] == ']' {
		b.WriteString(`\]`)
		i++
	}
	for ; i < end; i++ {
		if pattern[i] == '\\' {
			b.WriteString(`\\`)
			continue
		}
		b.WriteByte(pattern[i])
	}
	b.WriteByte(']')
	return end, true
}

// findCharClassEnd returns the index of the ']' closing the class that opens
// at pattern[start], or -1 when the class never closes.
func findCharClassEnd(pattern string, start int) int {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	// "[]" and "[!]" open a class whose first member is ']'.
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		if pattern[i] == ']' {
			return i
		}
	}
	return -1
}

// appendLiteralByte writes c escaped for literal use in a regexp.
func appendLiteralByte(c byte, b *strings.Builder) {
	switch c {
	case '.', '+', '(', ')', '|', '^', '$', '[', ']', '{', '}', '*', '?', '\\':
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}
