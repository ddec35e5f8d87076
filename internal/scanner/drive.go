package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"hct-voice/internal/drive"
	"hct-voice/internal/extract"
	"hct-voice/internal/knowledge"
)

// DriveAPI is the slice of the Drive client the scanner consumes.
type DriveAPI interface {
	ListFiles(ctx context.Context) ([]drive.File, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	FolderID() string
}

// Drive scans a Google Drive folder.
type Drive struct {
	client    DriveAPI
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewDrive creates a scanner backed by the given Drive client.
func NewDrive(client DriveAPI, extractor *extract.Extractor) *Drive {
	return &Drive{
		client:    client,
		extractor: extractor,
		logger:    slog.Default(),
	}
}

// Scan lists the configured folder, downloads every supported file and
// returns one document per file with non-empty extracted text.
// Download or extraction failures are logged and skipped.
func (s *Drive) Scan(ctx context.Context) ([]knowledge.Document, error) {
	files, err := s.client.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drive folder: %w", err)
	}

	var docs []knowledge.Document
	for _, f := range files {
		ext, ok := extract.SupportedMimeTypes[f.MimeType]
		if !ok {
			continue
		}

		data, err := s.client.Download(ctx, f.ID)
		if err != nil {
			s.logger.Warn("failed to download file, skipping", "file", f.Name, "error", err)
			continue
		}

		// Dispatch extraction on the declared MIME type, not on
		// whatever extension the Drive file name happens to carry.
		name := f.Name
		if !extract.Supported(filepath.Ext(name)) {
			name += ext
		}
		text, err := s.extractor.Text(ctx, name, data)
		if err != nil {
			s.logger.Warn("failed to extract text, skipping", "file", f.Name, "error", err)
			continue
		}
		if text == "" {
			s.logger.Warn("no text extracted, skipping", "file", f.Name)
			continue
		}

		meta := knowledge.ParseFilename(f.Name)
		docs = append(docs, knowledge.Document{
			FileID:      f.ID,
			Filename:    f.Name,
			MimeType:    f.MimeType,
			Category:    meta.Category,
			Product:     meta.Product,
			Subcategory: meta.Subcategory,
			Topic:       meta.Topic,
			Content:     text,
			WordCount:   knowledge.CountWords(text),
			ScannedAt:   time.Now().UTC(),
			Source:      knowledge.SourceGoogleDrive,
		})
	}

	s.logger.Info("drive scan complete", "folder", s.client.FolderID(), "documents", len(docs))
	return docs, nil
}
