package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hct-voice/internal/search"
	"hct-voice/internal/service"
)

func TestHealthHandler(t *testing.T) {
	idx := &fakeIndexer{stats: search.Stats{Indexed: true, DocumentCount: 7}}
	svc := service.NewKnowledgeService(&fakeScanner{}, idx, nil, "")
	handler := NewHealthHandler(svc, "google_drive")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.OK {
		t.Error("ok = false, want true")
	}
	if !resp.KnowledgeBase.Indexed || resp.KnowledgeBase.DocumentCount != 7 {
		t.Errorf("knowledge base = %+v", resp.KnowledgeBase)
	}
	if resp.KnowledgeBase.Source != "google_drive" {
		t.Errorf("source = %q", resp.KnowledgeBase.Source)
	}
	if !resp.GoogleDriveEnabled {
		t.Error("google_drive_enabled = false, want true")
	}
}

func TestHealthHandler_NoDrive(t *testing.T) {
	svc := service.NewKnowledgeService(nil, &fakeIndexer{}, nil, "")
	handler := NewHealthHandler(svc, "local")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.GoogleDriveEnabled {
		t.Error("google_drive_enabled = true, want false")
	}
	if resp.KnowledgeBase.Indexed {
		t.Error("indexed = true, want false")
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	svc := service.NewKnowledgeService(nil, &fakeIndexer{}, nil, "")
	handler := NewHealthHandler(svc, "local")

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
