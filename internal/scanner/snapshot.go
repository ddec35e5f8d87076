package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hct-voice/internal/knowledge"
)

// WriteSnapshot writes the scanned documents as a JSON array. The
// snapshot is a portable export of the corpus refreshed on every full
// rescan; queries never read it.
func WriteSnapshot(path string, docs []knowledge.Document) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
