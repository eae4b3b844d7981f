package logging

import (
	"go.uber.org/zap"
)

// Setup builds the process logger. Verbose mode emits debug-level
// diagnostics on stderr in console form; otherwise the logger discards
// everything, keeping stdout clean for document output and stderr for fatal
// errors.
func Setup(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
