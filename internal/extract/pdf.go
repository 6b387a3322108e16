package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF documents.
type PDFExtractor struct{}

// Extract parses the PDF and returns its plain text and page count.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("extract: empty pdf document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("extract: open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract: read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return nil, fmt.Errorf("extract: read pdf text: %w", err)
	}

	return &Extraction{Text: buf.String(), PageCount: reader.NumPage()}, nil
}
