package handlers

import (
	"net/http"

	"hct-voice/internal/contextutil"
	"hct-voice/internal/service"
)

// HealthHandler reports service and knowledge-base status.
type HealthHandler struct {
	knowledge *service.KnowledgeService
	source    string
}

// NewHealthHandler creates a new HealthHandler. source names where the
// index came from ("google_drive" or "local").
func NewHealthHandler(knowledge *service.KnowledgeService, source string) *HealthHandler {
	return &HealthHandler{
		knowledge: knowledge,
		source:    source,
	}
}

// KnowledgeBaseStatus describes the state of the search index.
type KnowledgeBaseStatus struct {
	Indexed       bool   `json:"indexed"`
	Source        string `json:"source"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	OK                 bool                `json:"ok"`
	KnowledgeBase      KnowledgeBaseStatus `json:"knowledge_base"`
	GoogleDriveEnabled bool                `json:"google_drive_enabled"`
}

// ServeHTTP handles HTTP requests for health checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	kb := KnowledgeBaseStatus{Source: h.source}
	stats, err := h.knowledge.Stats(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to read index stats", "error", err)
	} else {
		kb.Indexed = stats.Indexed
		kb.DocumentCount = stats.DocumentCount
	}

	writeJSON(ctx, w, http.StatusOK, HealthResponse{
		OK:                 true,
		KnowledgeBase:      kb,
		GoogleDriveEnabled: h.knowledge.DriveEnabled(),
	})
}
