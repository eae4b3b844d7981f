package ignore

import (
	"fmt"
	"os"
	"strings"
)

// ReadPatternFile reads exclude patterns from a file, one per line.
// Surrounding whitespace is trimmed; blank lines and lines starting with '#'
// are skipped.
func ReadPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading pattern file %s: %w", path, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}
