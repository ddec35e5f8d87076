// Package extract converts raw document bytes into plain text. The
// search layer never inspects source formats; everything downstream of
// this package works with extracted text only.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedMimeTypes maps the MIME types the extractor understands to
// their conventional file extensions. Used by the Drive scanner to
// filter folder listings.
var SupportedMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/msword": ".doc",
	"text/plain":         ".txt",
}

// Extractor dispatches raw bytes to a format-specific text extractor
// based on the file extension.
type Extractor struct {
	runner CommandRunner
}

// New creates an Extractor that shells out to pdftotext for PDFs.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an Extractor with a custom command runner.
// Used by tests to avoid invoking external tools.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Supported reports whether the extension (with leading dot, any case)
// has a text extractor.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

// Text extracts the plain text body of a document. The format is
// chosen from the filename extension. The returned text is trimmed of
// leading and trailing whitespace and may be empty.
func (e *Extractor) Text(ctx context.Context, filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.pdfText(ctx, data)
	case ".docx", ".doc":
		return docxText(data)
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", filename)
	}
}
