package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.APIKey != "test-key" {
		t.Errorf("NewClient() APIKey = %v, want test-key", client.APIKey)
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
	if client.client == nil {
		t.Error("NewClient() client should not be nil")
	}
}

func TestClient_StreamChat(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantChunks []string
		wantErr    bool
	}{
		{
			name: "successful streaming",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Accept") != "text/event-stream" {
					t.Error("missing Accept header")
				}
				if !strings.Contains(r.Header.Get("Authorization"), "Bearer") {
					t.Error("missing Authorization header")
				}

				var req ChatRequest
				_ = json.NewDecoder(r.Body).Decode(&req) // Ignore decode error in test
				if !req.Stream {
					t.Error("expected stream=true")
				}
				if req.MaxTokens != defaultMaxTokens {
					t.Errorf("expected max_tokens %d, got %d", defaultMaxTokens, req.MaxTokens)
				}

				w.Header().Set("Content-Type", "text/event-stream")
				flusher, _ := w.(http.Flusher)

				chunks := []string{
					`{"choices":[{"delta":{"content":"Hello"}}]}`,
					`{"choices":[{"delta":{"content":" "}}]}`,
					`{"choices":[{"delta":{"content":"world"}}]}`,
					`{"choices":[{"finish_reason":"stop"}]}`,
				}

				for _, chunk := range chunks {
					_, _ = w.Write([]byte("data: " + chunk + "\n\n"))
					flusher.Flush()
				}
				_, _ = w.Write([]byte("data: [DONE]\n\n"))
			},
			wantChunks: []string{"Hello", " ", "world"},
			wantErr:    false,
		},
		{
			name: "server error",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model")
			var receivedChunks []string

			messages := []ChatMessage{
				{Role: "system", Content: "You are a helpful assistant"},
				{Role: "user", Content: "Hello"},
			}

			err := client.StreamChat(context.Background(), messages, func(chunk string) error {
				receivedChunks = append(receivedChunks, chunk)
				return nil
			})

			if tt.wantErr {
				if err == nil {
					t.Errorf("StreamChat() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("StreamChat() unexpected error: %v", err)
				return
			}

			if len(receivedChunks) != len(tt.wantChunks) {
				t.Errorf("StreamChat() received %d chunks, want %d", len(receivedChunks), len(tt.wantChunks))
			}

			for i, chunk := range receivedChunks {
				if i < len(tt.wantChunks) && chunk != tt.wantChunks[i] {
					t.Errorf("StreamChat() chunk[%d] = %v, want %v", i, chunk, tt.wantChunks[i])
				}
			}
		})
	}
}

func TestClient_StreamChat_CallbackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"chunk"}}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	err := client.StreamChat(context.Background(), []ChatMessage{{Role: "user", Content: "Hi"}}, func(chunk string) error {
		return context.Canceled
	})
	if err == nil {
		t.Error("StreamChat() expected callback error, got nil")
	}
}

func TestClient_Speak(t *testing.T) {
	audio := []byte("fake-mp3-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("expected /v1/audio/speech, got %s", r.URL.Path)
		}

		var req SpeechRequest
		_ = json.NewDecoder(r.Body).Decode(&req) // Ignore decode error in test
		if req.Model != defaultTTSModel {
			t.Errorf("expected model %s, got %s", defaultTTSModel, req.Model)
		}
		if req.Voice != defaultVoice {
			t.Errorf("expected voice %s, got %s", defaultVoice, req.Voice)
		}
		if req.ResponseFormat != "mp3" {
			t.Errorf("expected mp3 format, got %s", req.ResponseFormat)
		}

		_, _ = w.Write(audio)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	got, err := client.Speak(context.Background(), "Hello from the assistant", "")
	if err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("Speak() audio = %q, want %q", got, audio)
	}
}

func TestClient_Speak_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid voice"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	if _, err := client.Speak(context.Background(), "text", "nova"); err == nil {
		t.Error("Speak() expected error, got nil")
	}
}
