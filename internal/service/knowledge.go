package service

import (
	"context"
	"errors"
	"fmt"

	"hct-voice/internal/contextutil"
	"hct-voice/internal/knowledge"
	"hct-voice/internal/search"
)

// ErrDriveNotConfigured is returned when a refresh is requested but no
// Google Drive source was configured.
var ErrDriveNotConfigured = errors.New("google drive not configured")

// Scanner produces the full replacement document set from a source.
type Scanner interface {
	Scan(ctx context.Context) ([]knowledge.Document, error)
}

// Indexer rebuilds the search index from a document set.
type Indexer interface {
	Build(ctx context.Context, docs []knowledge.Document) error
	Stats(ctx context.Context) (search.Stats, error)
}

// SnapshotWriter persists the scanned documents as JSON.
type SnapshotWriter func(path string, docs []knowledge.Document) error

// KnowledgeService refreshes the knowledge base from Google Drive and
// reports index statistics.
type KnowledgeService struct {
	scanner      Scanner
	index        Indexer
	snapshot     SnapshotWriter
	snapshotPath string
}

// NewKnowledgeService creates a refresh service. scanner may be nil
// when no Drive source is configured.
func NewKnowledgeService(scanner Scanner, index Indexer, snapshot SnapshotWriter, snapshotPath string) *KnowledgeService {
	return &KnowledgeService{
		scanner:      scanner,
		index:        index,
		snapshot:     snapshot,
		snapshotPath: snapshotPath,
	}
}

// DriveEnabled reports whether a Drive source is configured.
func (s *KnowledgeService) DriveEnabled() bool {
	return s.scanner != nil
}

// Refresh rescans the source, persists a snapshot and rebuilds the
// index wholesale. It returns the number of indexed documents.
func (s *KnowledgeService) Refresh(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if s.scanner == nil {
		return 0, ErrDriveNotConfigured
	}

	docs, err := s.scanner.Scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to scan knowledge source: %w", err)
	}
	if len(docs) == 0 {
		return 0, ErrNotFound
	}

	if s.snapshot != nil && s.snapshotPath != "" {
		if err := s.snapshot(s.snapshotPath, docs); err != nil {
			// The snapshot is a convenience artifact; the index is the
			// source of truth for search.
			logger.WarnContext(ctx, "failed to write knowledge snapshot", "path", s.snapshotPath, "error", err)
		}
	}

	if err := s.index.Build(ctx, docs); err != nil {
		return 0, fmt.Errorf("failed to rebuild index: %w", err)
	}

	logger.InfoContext(ctx, "knowledge base refreshed", "documents", len(docs))
	return len(docs), nil
}

// Stats returns the current index statistics.
func (s *KnowledgeService) Stats(ctx context.Context) (search.Stats, error) {
	return s.index.Stats(ctx)
}
