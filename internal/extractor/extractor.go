// Package extractor converts supported document containers into plain text.
package extractor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"integrityapi/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for format tags the extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed is returned when container bytes cannot be parsed.
	// It is always wrapped with the underlying cause.
	ErrExtractionFailed = errors.New("extraction failed")
)

// Extractor extracts plain text from a document container.
type Extractor interface {
	// Extract returns the text content of the document.
	// PDF pages are concatenated in page order with no separator; DOCX
	// paragraphs are concatenated in document order, each followed by a
	// newline. Plain documents pass through unchanged.
	Extract(ctx context.Context, doc model.Document) (string, error)
}

type extractor struct{}

// New returns an Extractor dispatching on the document's format tag.
func New() Extractor {
	return extractor{}
}

func (extractor) Extract(ctx context.Context, doc model.Document) (string, error) {
	switch doc.Format {
	case model.FormatPDF:
		return extractPDF(doc.Data)
	case model.FormatDOCX:
		return extractDOCX(doc.Data)
	case model.FormatPlain:
		return string(doc.Data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// FormatForFilename maps a file extension to a container format. The second
// return value is false for extensions the extractor does not handle.
func FormatForFilename(name string) (model.Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return model.FormatPDF, true
	case ".docx":
		return model.FormatDOCX, true
	default:
		return "", false
	}
}
