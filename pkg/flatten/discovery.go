// File: pkg/flatten/discovery.go
package flatten

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// findFiles expands the configured path entries into the ordered list of
// relative file paths to emit. Entries are processed in configuration order
// and each entry's matches keep the enumeration order of the glob walk, so
// the result is deterministic for a fixed filesystem.
func (f *Flattener) findFiles() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	f.logger.Debug("Starting file discovery",
		zap.Strings("paths", f.cfg.Paths),
		zap.Bool("recursive", f.cfg.Recursive))

	for _, entry := range f.cfg.Paths {
		pattern := entry
		if f.cfg.Recursive {
			if info, err := os.Stat(entry); err == nil && info.IsDir() {
				pattern = strings.TrimRight(entry, "/") + "/**/*"
				f.logger.Debug("Expanding directory recursively",
					zap.String("entry", entry),
					zap.String("pattern", pattern))
			}
		}

		// Direct-file fast path: an entry naming an existing regular file
		// skips glob expansion but still passes dedup and the filter chain.
		if info, err := os.Stat(pattern); err == nil && info.Mode().IsRegular() {
			f.addFile(pattern, seen, &files)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrExpand, pattern, err)
		}
		f.logger.Debug("Expanded glob pattern",
			zap.String("pattern", pattern),
			zap.Int("matchCount", len(matches)))

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				f.logger.Warn("Skipping unreadable match",
					zap.String("filePath", match),
					zap.Error(err))
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			f.addFile(match, seen, &files)
		}
	}

	f.logger.Debug("Completed file discovery", zap.Int("fileCount", len(files)))
	return files, nil
}

// addFile relativizes one candidate, applies dedup and the filter chain, and
// appends the survivor to files.
func (f *Flattener) addFile(path string, seen map[string]struct{}, files *[]string) {
	rel := relativize(path)
	if _, dup := seen[rel]; dup {
		f.logger.Debug("Skipping duplicate file", zap.String("filePath", rel))
		return
	}
	for _, filter := range f.filters {
		if filter.Excluded(rel) {
			f.logger.Debug("Excluding file",
				zap.String("filePath", rel),
				zap.String("filter", filter.Name()))
			return
		}
	}
	seen[rel] = struct{}{}
	*files = append(*files, rel)
	f.logger.Debug("Adding file", zap.String("filePath", rel))
}

// relativize converts a discovered path to its slash-separated form and
// strips a leading current-directory prefix.
func relativize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
