package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Text-to-speech defaults. Input is capped upstream, so a single
// request stays within the API's limits.
const (
	defaultTTSModel = "tts-1-hd"
	defaultVoice    = "nova"
)

// SpeechRequest represents the request payload for speech synthesis.
type SpeechRequest struct {
	Model          string  `json:"model"`
	Voice          string  `json:"voice"`
	Input          string  `json:"input"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

// Speak synthesizes the given text and returns MP3 audio bytes. An
// empty voice falls back to the default.
func (c *Client) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/audio/speech", c.BaseURL)

	if voice == "" {
		voice = defaultVoice
	}
	payload := SpeechRequest{
		Model:          defaultTTSModel,
		Voice:          voice,
		Input:          text,
		Speed:          1.0,
		ResponseFormat: "mp3",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	return audio, nil
}
