package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDFToolAvailable reports whether pdftotext is installed.
func PDFToolAvailable() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

// PDFInstallInstructions returns a hint for installing the PDF tool.
func PDFInstallInstructions() string {
	return "pdftotext is required for PDF extraction: brew install poppler (macOS) or apt install poppler-utils (Debian/Ubuntu)"
}

// pdfText extracts text from a PDF by writing it to a temporary file
// and running pdftotext with output on stdout.
func (e *Extractor) pdfText(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "hct-voice-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
