package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hct-voice/internal/contextutil"
	"hct-voice/internal/search"
	"hct-voice/internal/service"
)

// defaultSearchResults is used when a search request omits max_results.
const defaultSearchResults = 5

// Searcher is the slice of the index the knowledge endpoints consume.
type Searcher interface {
	Query(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// KnowledgeHandler exposes direct search, stats and refresh endpoints
// over the knowledge base.
type KnowledgeHandler struct {
	searcher  Searcher
	knowledge *service.KnowledgeService
	source    string
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(searcher Searcher, knowledge *service.KnowledgeService, source string) *KnowledgeHandler {
	return &KnowledgeHandler{
		searcher:  searcher,
		knowledge: knowledge,
		source:    source,
	}
}

// SearchRequest represents the HTTP request payload for search.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
	Source  string          `json:"source"`
}

// Search handles POST /knowledge/search.
func (h *KnowledgeHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultSearchResults
	}

	results, err := h.searcher.Query(ctx, req.Query, req.MaxResults)
	if err != nil {
		handleServiceError(w, ctx, err, "Search failed")
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	writeJSON(ctx, w, http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: results,
		Count:   len(results),
		Source:  h.source,
	})
}

// StatsResponse represents the HTTP response payload for stats.
type StatsResponse struct {
	Indexed       bool   `json:"indexed"`
	DocumentCount int    `json:"document_count"`
	IndexPath     string `json:"index_path"`
	Source        string `json:"source"`
}

// Stats handles GET /knowledge/stats.
func (h *KnowledgeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.knowledge.Stats(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to read index stats")
		return
	}

	writeJSON(ctx, w, http.StatusOK, StatsResponse{
		Indexed:       stats.Indexed,
		DocumentCount: stats.DocumentCount,
		IndexPath:     stats.IndexPath,
		Source:        h.source,
	})
}

// RefreshResponse represents the HTTP response payload for refresh.
type RefreshResponse struct {
	Success          bool   `json:"success"`
	DocumentsScanned int    `json:"documents_scanned"`
	Message          string `json:"message"`
}

// Refresh handles POST /knowledge/refresh.
func (h *KnowledgeHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	n, err := h.knowledge.Refresh(ctx)
	if err != nil {
		if errors.Is(err, service.ErrDriveNotConfigured) {
			writeError(w, http.StatusBadRequest, "Google Drive not configured")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(ctx, w, http.StatusNotFound, RefreshResponse{
				Success: false,
				Message: "No documents found in Google Drive",
			})
			return
		}
		handleServiceError(w, ctx, err, "Refresh failed")
		return
	}

	logger.InfoContext(ctx, "knowledge refresh completed", "documents", n)
	writeJSON(ctx, w, http.StatusOK, RefreshResponse{
		Success:          true,
		DocumentsScanned: n,
		Message:          "Knowledge base refreshed from Google Drive",
	})
}
