package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hct-voice/internal/contextutil"
	"hct-voice/internal/service"
)

// ChatHandler handles streaming chat requests.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// sseChunk is the payload of one streamed content event.
type sseChunk struct {
	Content string `json:"content"`
}

type sseError struct {
	Error string `json:"error"`
}

// ServeHTTP streams the assistant's answer as Server-Sent Events.
// Each content chunk arrives as `data: {"content":...}` and the stream
// terminates with `data: [DONE]`.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "No message")
		return
	}

	// Set up Server-Sent Events headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	svcReq := service.ChatRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
	}

	err := h.chatService.StreamChat(ctx, svcReq, func(chunk string) error {
		// JSON-encode each chunk so newlines inside it cannot break
		// the SSE framing.
		payload, err := json.Marshal(sseChunk{Content: chunk})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		logger.ErrorContext(ctx, "error streaming chat", "error", err)
		payload, _ := json.Marshal(sseError{Error: err.Error()})
		_, _ = fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return
	}

	// Send done signal
	_, _ = fmt.Fprintf(w, "data: [DONE]\n\n")
	flusher.Flush()
}
