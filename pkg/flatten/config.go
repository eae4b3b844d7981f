// File: pkg/flatten/config.go
package flatten

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file consulted in the working directory
// when no explicit config path is given.
const DefaultConfigFile = ".flatten-repo.yaml"

// Config holds the settings for one flattening run. It is assembled by the
// CLI layer from flags, the optional config file, and piped path lines, and
// is not mutated afterwards.
type Config struct {
	Paths          []string `yaml:"paths"`     // Files, directories, or glob patterns to process.
	Recursive      bool     `yaml:"recursive"` // Expand directory entries to their whole subtree.
	IgnorePatterns []string `yaml:"ignore"`    // Exclude patterns applied to candidate paths.
	Output         string   `yaml:"output"`    // Destination file for the XML document; empty means stdout.
	Verbose        bool     `yaml:"verbose"`   // Enable debug logging on stderr.
}

// LoadConfigFile reads settings from a YAML config file. A missing file is
// not an error and yields zero settings; an unreadable or malformed file is.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ReadPathLines collects path entries from r, one per line. Surrounding
// whitespace is trimmed and blank lines are skipped.
func ReadPathLines(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading path list: %w", err)
	}
	return paths, nil
}
