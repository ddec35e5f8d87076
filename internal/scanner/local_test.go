package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hct-voice/internal/extract"
	"hct-voice/internal/knowledge"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLocalScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AFFF_F500_AM_Aviation_Fires.txt", "F-500 encapsulator agent for aviation fires.")
	writeFile(t, dir, "VS_HydroLock_AM_Vapor_Suppression.txt", "HydroLock suppresses flammable vapors.")
	writeFile(t, dir, "notes.md", "unsupported format, should be skipped")
	writeFile(t, dir, "Empty_F500_AM_Blank.txt", "   ")

	s := NewLocal(dir, extract.New())
	docs, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	byName := make(map[string]knowledge.Document)
	for _, d := range docs {
		byName[d.Filename] = d
	}

	doc, ok := byName["AFFF_F500_AM_Aviation_Fires.txt"]
	if !ok {
		t.Fatal("missing aviation document")
	}
	if doc.Product != "F500" {
		t.Errorf("expected product F500, got %q", doc.Product)
	}
	if doc.Category != "AFFF" {
		t.Errorf("expected category AFFF, got %q", doc.Category)
	}
	if doc.Topic != "Aviation_Fires" {
		t.Errorf("expected topic Aviation_Fires, got %q", doc.Topic)
	}
	if doc.Source != knowledge.SourceLocal {
		t.Errorf("expected local source, got %q", doc.Source)
	}
	if doc.WordCount == 0 {
		t.Error("expected nonzero word count")
	}
	if doc.Content == "" {
		t.Error("expected extracted content")
	}
}

func TestLocalScanSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".git")
	if err := os.MkdirAll(hidden, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, hidden, "Secret_F500_AM_Hidden.txt", "should not be indexed")
	writeFile(t, dir, "Visible_F500_AM_Doc.txt", "visible content")

	s := NewLocal(dir, extract.New())
	docs, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Filename != "Visible_F500_AM_Doc.txt" {
		t.Errorf("unexpected document %q", docs[0].Filename)
	}
}

func TestLocalScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Doc_F500_AM_Topic.txt", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewLocal(dir, extract.New())
	if _, err := s.Scan(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
