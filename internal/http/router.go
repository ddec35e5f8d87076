package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hct-voice/internal/handlers"
	"hct-voice/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService      service.ChatService
	KnowledgeService *service.KnowledgeService
	Searcher         handlers.Searcher
	Speaker          handlers.Speaker
	Source           string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// Add CORS middleware
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	speakHandler := handlers.NewSpeakHandler(deps.Speaker)
	healthHandler := handlers.NewHealthHandler(deps.KnowledgeService, deps.Source)
	knowledgeHandler := handlers.NewKnowledgeHandler(deps.Searcher, deps.KnowledgeService, deps.Source)

	r.Method(http.MethodGet, "/health", healthHandler)
	r.Method(http.MethodPost, "/chat/stream", chatHandler)
	r.Method(http.MethodPost, "/speak", speakHandler)

	r.Route("/knowledge", func(r chi.Router) {
		r.Post("/search", knowledgeHandler.Search)
		r.Get("/stats", knowledgeHandler.Stats)
		r.Post("/refresh", knowledgeHandler.Refresh)
	})

	return r
}
