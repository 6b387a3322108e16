// Package extract pulls plain text out of uploaded documents ahead of
// batch translation.
package extract

import (
	"context"
	"fmt"

	"translingo/internal/domain"
)

// Extraction is the text pulled from a document plus its page count
// when the format reports one.
type Extraction struct {
	Text      string
	PageCount int
}

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Extraction, error)
}

// Registry maps file types to their extractor.
type Registry map[domain.FileType]Extractor

// NewRegistry wires the default extractors for every supported type.
func NewRegistry() Registry {
	return Registry{
		domain.FileTypePDF:  &PDFExtractor{},
		domain.FileTypeDOCX: &DOCXExtractor{},
	}
}

// For returns the extractor for the given file type.
func (r Registry) For(ft domain.FileType) (Extractor, error) {
	e, ok := r[ft]
	if !ok {
		return nil, fmt.Errorf("extract: unsupported file type %q", ft)
	}
	return e, nil
}
