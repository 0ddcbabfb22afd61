package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application
type Config struct {
	BotToken     string
	AdminID      int64
	GroqAPIKey   string
	GroqModel    string
	OCRAPIKey    string
	DatabasePath string
	UILanguage   string // "ar" or "en"
	MaxFileMB    int64
	TargetTotal  int // soft cap on questions per quiz
	ChunkBudget  int // max runes per generation chunk; 0 disables chunking
	LogLevel     string
}

// Load loads the configuration from environment variables. A local
// .env file is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, errors.New("BOT_TOKEN environment variable is required")
	}

	adminID, err := strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64)
	if err != nil || adminID == 0 {
		return nil, errors.New("ADMIN_ID environment variable is required and must be a Telegram user id")
	}

	groqKey := os.Getenv("GROQ_API_KEY")
	if groqKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is required")
	}

	cfg := &Config{
		BotToken:     botToken,
		AdminID:      adminID,
		GroqAPIKey:   groqKey,
		GroqModel:    envOr("GROQ_MODEL", "llama-3.1-70b-versatile"),
		OCRAPIKey:    os.Getenv("OCR_SPACE_API_KEY"), // optional; OCR fallback disabled when empty
		DatabasePath: envOr("DB_PATH", "./data/lecturequiz.db"),
		UILanguage:   envOr("UI_LANG", "ar"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
	}

	cfg.MaxFileMB, err = envOrInt64("MAX_FILE_MB", 16)
	if err != nil {
		return nil, err
	}

	target, err := envOrInt64("TARGET_QUESTIONS", 40)
	if err != nil {
		return nil, err
	}
	cfg.TargetTotal = int(target)

	budget, err := envOrInt64("CHUNK_BUDGET", 4500)
	if err != nil {
		return nil, err
	}
	cfg.ChunkBudget = int(budget)

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
