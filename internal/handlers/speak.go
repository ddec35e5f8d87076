package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hct-voice/internal/contextutil"
)

// maxSpeakChars caps how much text goes into a single TTS request.
const maxSpeakChars = 500

// Speaker synthesizes speech for a text and voice.
type Speaker interface {
	Speak(ctx context.Context, text, voice string) ([]byte, error)
}

// SpeakHandler converts text to MP3 audio.
type SpeakHandler struct {
	speaker Speaker
}

// NewSpeakHandler creates a new SpeakHandler.
func NewSpeakHandler(speaker Speaker) *SpeakHandler {
	return &SpeakHandler{
		speaker: speaker,
	}
}

// SpeakRequest represents the HTTP request payload for speech.
type SpeakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// ServeHTTP handles HTTP requests for speech synthesis.
func (h *SpeakHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "No text")
		return
	}
	if len(text) > maxSpeakChars {
		text = text[:maxSpeakChars]
	}

	audio, err := h.speaker.Speak(ctx, text, req.Voice)
	if err != nil {
		logger.ErrorContext(ctx, "speech synthesis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to synthesize speech")
		return
	}

	logger.InfoContext(ctx, "speech synthesized", "voice", req.Voice, "chars", len(text), "bytes", len(audio))

	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(audio)
}
