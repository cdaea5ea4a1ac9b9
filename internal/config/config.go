package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything a sync run needs from the environment.
type Config struct {
	// GoogleProject is the GCP project hosting the Firestore database.
	GoogleProject string

	// UserID scopes stored transactions to one end-user.
	UserID string

	// GmailToken is the OAuth bearer token for the Gmail API. Expiry is
	// tracked explicitly so an expired session fails fast as Unauthorized
	// instead of mid-batch.
	GmailToken       string
	GmailTokenExpiry time.Time

	// LookbackDays is the recency window for the mail search query.
	LookbackDays int

	// MaxMessages caps how many messages one sync run will process.
	MaxMessages int

	// Concurrency bounds how many messages of a page are processed at once.
	Concurrency int
}

// Load reads configuration from the environment, loading a .env file first
// if one is present. GOOGLE_PROJECT, APP_USER_ID and GMAIL_ACCESS_TOKEN are
// required; the rest have defaults.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	project := os.Getenv("GOOGLE_PROJECT")
	if project == "" {
		return nil, fmt.Errorf("GOOGLE_PROJECT is not set")
	}
	userID := os.Getenv("APP_USER_ID")
	if userID == "" {
		return nil, fmt.Errorf("APP_USER_ID is not set")
	}
	token := os.Getenv("GMAIL_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GMAIL_ACCESS_TOKEN is not set")
	}

	cfg := &Config{
		GoogleProject: project,
		UserID:        userID,
		GmailToken:    token,
		LookbackDays:  intEnv("SYNC_LOOKBACK_DAYS", 30),
		MaxMessages:   intEnv("SYNC_MAX_MESSAGES", 200),
		Concurrency:   intEnv("SYNC_CONCURRENCY", 8),
	}

	if raw := os.Getenv("GMAIL_TOKEN_EXPIRY"); raw != "" {
		expiry, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("GMAIL_TOKEN_EXPIRY: invalid RFC3339 timestamp %q: %w", raw, err)
		}
		cfg.GmailTokenExpiry = expiry
	}

	return cfg, nil
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
