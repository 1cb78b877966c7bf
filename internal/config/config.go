// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// geminiKeyEnvVars is the fallback chain of environment variable names that
// may carry the Gemini credential. The first non-empty value wins.
var geminiKeyEnvVars = []string{
	"GOOGLE_GENAI_API_KEY",
	"GEMINI_API_KEY",
	"GENAI_API_KEY",
}

// Config holds the server configuration resolved from the environment.
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
}

// Load resolves configuration from environment variables.
// DATABASE_URL is required; the Gemini key is optional here because its
// absence must surface as a per-request configuration error, not a crash.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	return &Config{
		Port:         port,
		DatabaseURL:  databaseURL,
		GeminiAPIKey: ResolveGeminiKey(),
	}, nil
}

// ResolveGeminiKey walks the credential fallback chain and returns the first
// value set, or empty string if none is.
func ResolveGeminiKey() string {
	for _, name := range geminiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
