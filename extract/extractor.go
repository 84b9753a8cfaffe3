// Package extract reads supplier documents and returns their text content
// per logical page. Pages that fail to parse are skipped rather than failing
// the whole document.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for document types with no extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Pages extracts UTF-8 text from the document at path, one string per
// logical page. A document with no extractable text yields an empty slice.
func Pages(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md", "":
		return extractPlain(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
