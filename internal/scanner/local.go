// Package scanner enumerates knowledge-base documents from a source
// (local folder or Google Drive), extracts their text and produces the
// normalized document records the search index ingests. A scan always
// produces a full replacement set.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hct-voice/internal/extract"
	"hct-voice/internal/knowledge"
)

// Local scans a knowledge-base directory on the filesystem.
type Local struct {
	root      string
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewLocal creates a scanner for the given directory.
func NewLocal(root string, extractor *extract.Extractor) *Local {
	return &Local{
		root:      root,
		extractor: extractor,
		logger:    slog.Default(),
	}
}

// Root returns the scanned directory.
func (s *Local) Root() string {
	return s.root
}

// Scan walks the knowledge-base directory and returns one document per
// supported file with non-empty extracted text. Files that fail
// extraction are logged and skipped; the scan keeps going.
func (s *Local) Scan(ctx context.Context) ([]knowledge.Document, error) {
	var docs []knowledge.Document

	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			// Skip hidden directories (editor state, .git and friends).
			if strings.HasPrefix(info.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}

		if !extract.Supported(filepath.Ext(path)) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("failed to read file, skipping", "path", path, "error", err)
			return nil
		}

		filename := filepath.Base(path)
		text, err := s.extractor.Text(ctx, filename, data)
		if err != nil {
			s.logger.Warn("failed to extract text, skipping", "path", path, "error", err)
			return nil
		}
		if text == "" {
			s.logger.Warn("no text extracted, skipping", "path", path)
			return nil
		}

		meta := knowledge.ParseFilename(filename)
		docs = append(docs, knowledge.Document{
			Filename:    filename,
			Path:        path,
			Category:    meta.Category,
			Product:     meta.Product,
			Subcategory: meta.Subcategory,
			Topic:       meta.Topic,
			Content:     text,
			WordCount:   knowledge.CountWords(text),
			ScannedAt:   time.Now().UTC(),
			Source:      knowledge.SourceLocal,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.root, err)
	}

	s.logger.Info("local scan complete", "root", s.root, "documents", len(docs))
	return docs, nil
}
