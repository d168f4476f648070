package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds process-level settings read from the environment. Provider
// credentials entered at runtime live in the provider store, not here; the
// environment only seeds the initial values.
type Config struct {
	Environment string
	LogLevel    slog.Level

	// OpenAI seeds for the provider store. All optional.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// RedisURL enables the shared model-catalog cache when set. Empty means
	// an in-process cache.
	RedisURL string
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
