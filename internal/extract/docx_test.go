package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXExtract(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	ex, err := (&DOCXExtractor{}).Extract(context.Background(), buildDocx(t, doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if ex.Text != want {
		t.Fatalf("got %q, want %q", ex.Text, want)
	}
}

func TestDOCXExtractMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_ = zw.Close()

	if _, err := (&DOCXExtractor{}).Extract(context.Background(), buf.Bytes()); err == nil {
		t.Fatal("expected error for archive without document.xml")
	}
}

func TestDOCXExtractEmptyInput(t *testing.T) {
	if _, err := (&DOCXExtractor{}).Extract(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestPDFExtractEmptyInput(t *testing.T) {
	if _, err := (&PDFExtractor{}).Extract(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestRegistryUnsupportedType(t *testing.T) {
	if _, err := NewRegistry().For("txt"); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}
