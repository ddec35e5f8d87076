package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"hct-voice/internal/config"
	"hct-voice/internal/drive"
	"hct-voice/internal/extract"
	"hct-voice/internal/http"
	"hct-voice/internal/llm"
	"hct-voice/internal/scanner"
	"hct-voice/internal/search"
	"hct-voice/internal/service"
	"hct-voice/internal/session"
	"hct-voice/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	ctx := context.Background()

	// Open the search index; an unbuilt index serves empty results
	// until a refresh or update-knowledge run populates it.
	index := search.NewIndex(cfg.IndexDir)
	defer func() {
		_ = index.Close()
	}()
	if loaded, err := index.Load(ctx); err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	} else if loaded {
		stats, _ := index.Stats(ctx)
		slog.Info("Knowledge base loaded", "documents", stats.DocumentCount, "path", cfg.IndexDir)
	} else {
		slog.Warn("No knowledge base found, run update-knowledge first", "path", cfg.IndexDir)
	}

	// Optional Google Drive source for /knowledge/refresh
	var driveScanner service.Scanner
	if cfg.DriveEnabled() {
		client, err := drive.NewClient(ctx, cfg.GoogleDriveCredentials, cfg.GoogleDriveFolderID)
		if err != nil {
			log.Fatalf("Failed to create Google Drive client: %v", err)
		}
		driveScanner = scanner.NewDrive(client, extract.New())
		slog.Info("Google Drive configured", "folder_id", cfg.GoogleDriveFolderID)
	} else {
		slog.Info("Google Drive not configured, using local knowledge base")
	}

	knowledgeService := service.NewKnowledgeService(driveScanner, index, scanner.WriteSnapshot, cfg.SnapshotPath)

	// Session store with background eviction
	sessions := session.NewStore(cfg.SessionTTL)
	go sessions.Run(ctx)

	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel)
	chatService := service.NewChatService(index, llmClient, web.NewFetcher(), sessions)

	// Create router with dependencies
	deps := &http.Deps{
		ChatService:      chatService,
		KnowledgeService: knowledgeService,
		Searcher:         index,
		Speaker:          llmClient,
		Source:           cfg.Source(),
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.Port
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.OpenAIBaseURL, "model", cfg.ChatModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
