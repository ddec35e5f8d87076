package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string

	KnowledgeBasePath string
	IndexDir          string
	SnapshotPath      string

	GoogleDriveCredentials string
	GoogleDriveFolderID    string

	SessionTTL time.Duration
	Port       string
	LogLevel   string
	LogFormat  string
}

// DriveEnabled reports whether Google Drive credentials are configured.
func (c *Config) DriveEnabled() bool {
	return c.GoogleDriveCredentials != "" && c.GoogleDriveFolderID != ""
}

// Source names where indexed documents come from.
func (c *Config) Source() string {
	if c.DriveEnabled() {
		return "google_drive"
	}
	return "local"
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		ChatModel:     getEnv("CHAT_MODEL", "gpt-4o-mini"),

		KnowledgeBasePath: getEnv("KB_PATH", "./knowledge_base"),
		IndexDir:          getEnv("INDEX_DIR", "./data/index"),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "./data/knowledge_index.json"),

		GoogleDriveCredentials: getEnv("GOOGLE_DRIVE_CREDENTIALS", ""),
		GoogleDriveFolderID:    getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),

		Port:      getEnv("PORT", "5002"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	// Validate required fields
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	ttlStr := getEnv("SESSION_TTL", "30m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	cfg.SessionTTL = ttl

	// Create the index directory if it doesn't exist
	if err := os.MkdirAll(cfg.IndexDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
