package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hct-voice/internal/service"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeChatService struct {
	chunks  []string
	err     error
	lastReq service.ChatRequest
}

func (f *fakeChatService) StreamChat(ctx context.Context, req service.ChatRequest, callback func(chunk string) error) error {
	f.lastReq = req
	if f.err != nil {
		return f.err
	}
	for _, c := range f.chunks {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}

func TestChatHandler_Stream(t *testing.T) {
	svc := &fakeChatService{chunks: []string{"F-500 ", "is a fire\nsuppression agent."}}
	handler := NewChatHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"message":"what is f-500","session_id":"s1"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if svc.lastReq.SessionID != "s1" {
		t.Errorf("session ID = %q, want s1", svc.lastReq.SessionID)
	}

	body := w.Body.String()
	if !strings.Contains(body, `data: {"content":"F-500 "}`) {
		t.Errorf("missing first chunk event in %q", body)
	}
	// Newlines in chunks must not break SSE framing.
	if !strings.Contains(body, `data: {"content":"is a fire\nsuppression agent."}`) {
		t.Errorf("missing escaped chunk event in %q", body)
	}
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Errorf("stream not terminated with [DONE]: %q", body)
	}
}

func TestChatHandler_StreamError(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{err: errors.New("upstream down")})

	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"message":"hello"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `"error"`) {
		t.Errorf("expected error event, got %q", body)
	}
	if strings.Contains(body, "[DONE]") {
		t.Errorf("failed stream should not emit [DONE]: %q", body)
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{})

	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"message":""}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{})

	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{})

	req := httptest.NewRequest(http.MethodGet, "/chat/stream", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
