// File: pkg/flatten/reader.go
package flatten

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// binaryProbeSize is how many leading bytes are inspected for a zero byte
// when classifying a file. Classification never looks past this prefix.
const binaryProbeSize = 8192

// FileRecord is one discovered file prepared for emission.
type FileRecord struct {
	Path    string // Relative slash-separated path, as discovered.
	Binary  bool   // A zero byte occurred within the leading probe bytes.
	Content string // Decoded text content; always empty for binary files.
}

// readFile opens one file and classifies it. A file whose leading probe
// bytes contain a zero byte is binary and its content is never materialized.
// Anything else is text: the probe bytes and the remainder of the file are
// decoded in a single pass, with malformed byte sequences replaced by U+FFFD
// instead of failing the read. I/O failures are fatal for the whole run.
func (f *Flattener) readFile(path string) (FileRecord, error) {
	f.logger.Debug("Reading file", zap.String("filePath", path))

	file, err := os.Open(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	defer file.Close()

	probe := make([]byte, binaryProbeSize)
	n, err := io.ReadFull(file, probe)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FileRecord{}, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	probe = probe[:n]

	if bytes.IndexByte(probe, 0) >= 0 {
		f.logger.Debug("Classified file as binary", zap.String("filePath", path))
		return FileRecord{Path: path, Binary: true}, nil
	}

	decoder := transform.NewReader(
		io.MultiReader(bytes.NewReader(probe), file),
		unicode.UTF8.NewDecoder(),
	)
	content, err := io.ReadAll(decoder)
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}

	f.logger.Debug("Read text file",
		zap.String("filePath", path),
		zap.Int("contentSizeBytes", len(content)))
	return FileRecord{Path: path, Content: string(content)}, nil
}
