// File: pkg/flatten/xml.go
package flatten

import (
	"encoding/xml"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// rootElement is the name of the document's single root element.
const rootElement = "repository"

// buildDocument streams the XML document for paths into w: declaration, root
// element, one child element per file in discovery order, root close, and a
// trailing newline. Files are read one at a time so memory stays bounded by
// the largest single file. Escaping is delegated to the encoder, so reserved
// characters in paths or content can never break the document shape.
func (f *Flattener) buildDocument(w io.Writer, paths []string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("%w: %w", ErrEmit, err)
	}

	enc := xml.NewEncoder(w)
	root := xml.StartElement{Name: xml.Name{Local: rootElement}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("%w: %w", ErrEmit, err)
	}

	for _, path := range paths {
		record, err := f.readFile(path)
		if err != nil {
			return err
		}
		if err := encodeFile(enc, record); err != nil {
			return fmt.Errorf("%w: %w", ErrEmit, err)
		}
		f.logger.Debug("Emitted file element",
			zap.String("filePath", record.Path),
			zap.Bool("binary", record.Binary))
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("%w: %w", ErrEmit, err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEmit, err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrEmit, err)
	}
	return nil
}

// encodeFile emits one file element. Binary files carry a binary="true"
// attribute and no body; text files carry their decoded content as a single
// text node.
func encodeFile(enc *xml.Encoder, record FileRecord) error {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "path"}, Value: record.Path},
	}
	if record.Binary {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "binary"}, Value: "true"})
	}
	start := xml.StartElement{Name: xml.Name{Local: "file"}, Attr: attrs}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if !record.Binary {
		if err := enc.EncodeToken(xml.CharData(record.Content)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
