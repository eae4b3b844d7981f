// Package flatten implements the discovery, classification, and
// serialization pipeline: configured path and glob entries are expanded into
// a deduplicated ordered file list, each file is classified as text or
// binary, and the result is rendered as a single XML document with one
// element per file.
package flatten

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tyler-smith/flatten-repo/pkg/ignore"
)

// Flattener runs the pipeline for one configuration. Construct it with New
// and run it with Generate; a Flattener holds no per-run state and may be
// reused.
type Flattener struct {
	cfg     Config
	filters []ignore.Filter
	logger  *zap.Logger
}

// New compiles cfg's exclude patterns and detects the enclosing git working
// tree. A malformed exclude pattern fails construction. An empty path list
// defaults to the current directory. A nil logger disables diagnostics.
func New(cfg Config, logger *zap.Logger) (*Flattener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	matcher, err := ignore.CompilePatterns(cfg.IgnorePatterns, logger)
	if err != nil {
		return nil, err
	}

	return &Flattener{
		cfg:     cfg,
		filters: []ignore.Filter{matcher, ignore.DetectGitIgnore(logger)},
		logger:  logger,
	}, nil
}

// Generate runs discovery and returns the finished XML document, trailing
// newline included. On error nothing of the document is returned: output is
// all-or-nothing.
func (f *Flattener) Generate() (string, error) {
	files, err := f.findFiles()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := f.buildDocument(&b, files); err != nil {
		return "", err
	}
	return b.String(), nil
}
