// File: cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tyler-smith/flatten-repo/pkg/flatten"
	"github.com/tyler-smith/flatten-repo/pkg/ignore"
	"github.com/tyler-smith/flatten-repo/pkg/logging"
)

// NewRootCmd builds the root command. Running it executes the whole
// pipeline: discover files from the given paths, filter, classify, and print
// the XML document.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten-repo [paths...]",
		Short: "Flatten a repository into a single XML document",
		Long: `flatten-repo discovers files from path and glob arguments, filters them
against exclude patterns and git ignore rules, and writes one XML document
with an element per file to stdout. Binary files are flagged and left empty;
text files are embedded with their content escaped.

Paths may also be piped in, one per line. With no paths at all, the current
directory is used.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.Flags().BoolP("recursive", "r", false, "Recurse into directory arguments")
	cmd.Flags().BoolP("verbose", "v", false, "Log discovery and classification decisions to stderr")
	cmd.Flags().StringArrayP("ignore", "i", nil, "Glob pattern to exclude (repeatable)")
	cmd.Flags().StringArray("ignore-file", nil, "File of exclude patterns, one per line (repeatable)")
	cmd.Flags().StringP("output", "o", "", "Write the XML document to a file instead of stdout")
	cmd.Flags().String("config", "", "Config file (default "+flatten.DefaultConfigFile+")")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// runRoot assembles the configuration and drives one pipeline run. Pipeline
// failures are reported by category on stderr and terminate the process, the
// same way a fatal log call would.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		fatalf("Error initializing: %v", err)
	}

	logger, err := logging.Setup(cfg.Verbose)
	if err != nil {
		fatalf("Error initializing: %v", err)
	}
	defer syncLogger(logger)

	f, err := flatten.New(cfg, logger)
	if err != nil {
		fatalf("Error initializing: %v", err)
	}

	doc, err := f.Generate()
	if err != nil {
		fatalf("Error generating XML: %v", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(doc), 0o644); err != nil {
			fatalf("Error writing output: %v", err)
		}
		logger.Debug("Wrote XML document",
			zap.String("outputFile", cfg.Output),
			zap.Int("sizeBytes", len(doc)))
		return nil
	}

	fmt.Print(doc)
	return nil
}

// buildConfig resolves the run configuration from the config file, flags,
// and piped path lines. Explicit flags override file settings; exclude
// patterns from all sources accumulate in order: config file, pattern files,
// command line.
func buildConfig(cmd *cobra.Command, args []string) (flatten.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if flags.Changed("config") {
		if _, err := os.Stat(configPath); err != nil {
			return flatten.Config{}, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	} else {
		configPath = flatten.DefaultConfigFile
	}
	cfg, err := flatten.LoadConfigFile(configPath)
	if err != nil {
		return flatten.Config{}, err
	}

	if flags.Changed("recursive") {
		cfg.Recursive, _ = flags.GetBool("recursive")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}

	patternFiles, _ := flags.GetStringArray("ignore-file")
	for _, file := range patternFiles {
		patterns, err := ignore.ReadPatternFile(file)
		if err != nil {
			return flatten.Config{}, err
		}
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, patterns...)
	}
	patterns, _ := flags.GetStringArray("ignore")
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, patterns...)

	if len(args) > 0 {
		cfg.Paths = args
	}
	piped, err := pipedPaths()
	if err != nil {
		return flatten.Config{}, err
	}
	cfg.Paths = append(cfg.Paths, piped...)

	return cfg, nil
}

// pipedPaths reads path entries from stdin when it is not an interactive
// terminal.
func pipedPaths() ([]string, error) {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil, nil
	}
	return flatten.ReadPathLines(os.Stdin)
}

// fatalf reports a fatal error on stderr and terminates with a failure
// status.
func fatalf(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// syncLogger flushes the logger when stderr can absorb a sync. Syncing a
// terminal or pipe on some platforms reports a spurious error, so it is
// attempted only for terminals and regular files.
func syncLogger(logger *zap.Logger) {
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		_ = logger.Sync()
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
