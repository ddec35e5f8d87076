// Package knowledge defines the document model shared by the scanner,
// the search index and the HTTP layer.
package knowledge

import (
	"path/filepath"
	"strings"
	"time"
)

// Source values recorded on scanned documents.
const (
	SourceLocal       = "local"
	SourceGoogleDrive = "google_drive"
)

// Document is one scanned knowledge-base file with its extracted text.
// Records are immutable once created; a rescan produces a full
// replacement set, never an incremental patch.
type Document struct {
	// FileID is the Google Drive file ID, empty for local files.
	FileID string `json:"file_id,omitempty"`

	// Filename is the original file name, unique per source path.
	Filename string `json:"filename"`

	// Path is the filesystem location, empty for Drive-sourced files.
	Path string `json:"path,omitempty"`

	MimeType string `json:"mime_type,omitempty"`

	// Category, Product, Subcategory and Topic are parsed from the
	// filename convention (see ParseFilename).
	Category    string `json:"category"`
	Product     string `json:"product"`
	Subcategory string `json:"subcategory"`
	Topic       string `json:"topic"`

	// Content is the extracted plain text body.
	Content string `json:"content"`

	// Audit metadata, not used for ranking.
	WordCount int       `json:"word_count"`
	ScannedAt time.Time `json:"scanned_at"`
	Source    string    `json:"source"`
}

// FileMeta is the classification parsed from a knowledge-base filename.
type FileMeta struct {
	Category    string
	Product     string
	Subcategory string
	Topic       string
}

// ParseFilename parses the knowledge-base naming convention
// Category_Product_Subcategory_Topic... (for example
// "B_F500_AM_Aviation.pdf"). Missing leading segments default to
// "Unknown"; missing trailing segments default to empty strings. The
// topic is the underscore-joined remainder after the first three
// segments.
func ParseFilename(filename string) FileMeta {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, "_")

	meta := FileMeta{
		Category: "Unknown",
		Product:  "Unknown",
	}
	if len(parts) > 0 {
		meta.Category = parts[0]
	}
	if len(parts) > 1 {
		meta.Product = parts[1]
	}
	if len(parts) > 2 {
		meta.Subcategory = parts[2]
	}
	if len(parts) > 3 {
		meta.Topic = strings.Join(parts[3:], "_")
	}
	return meta
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
