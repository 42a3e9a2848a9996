package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL    = "https://openrouter.ai/api/v1"
	defaultModel      = "deepseek/deepseek-chat-v3-0324:free"
	defaultGCSObject  = "plants.json"
	defaultDataFile   = "plants.json"
	defaultListenAddr = ":8080"
)

// Config is everything the process reads from the environment. A .env file
// in the working directory (or the one passed to Load) is merged in first.
type Config struct {
	TelegramToken string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Model             string

	GCSBucket string
	GCSObject string
	DataFile  string

	WebhookURL string
	ListenAddr string

	LogLevel slog.Level
}

func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, err
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getenvDefault("OPENROUTER_BASE_URL", defaultBaseURL),
		Model:             getenvDefault("PLANTBOT_MODEL", defaultModel),
		GCSBucket:         os.Getenv("GCS_BUCKET_NAME"),
		GCSObject:         getenvDefault("GCS_FILE_NAME", defaultGCSObject),
		DataFile:          getenvDefault("PLANTBOT_DATA_FILE", defaultDataFile),
		WebhookURL:        strings.TrimRight(os.Getenv("PLANTBOT_WEBHOOK_URL"), "/"),
		ListenAddr:        getenvDefault("PLANTBOT_LISTEN_ADDR", defaultListenAddr),
		LogLevel:          ParseLevel(os.Getenv("PLANTBOT_LOG_LEVEL")),
	}
	// Cloud Run hands the port over via PORT.
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if cfg.TelegramToken == "" {
		return Config{}, errors.New("config: TELEGRAM_TOKEN is required")
	}
	return cfg, nil
}

func ParseLevel(level string) slog.Level {
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

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
