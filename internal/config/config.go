// Package config loads client settings from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL points at the backend's /api root.
	APIBaseURL string
	// LiveURL is the websocket endpoint for the live message feed; empty
	// disables the feed.
	LiveURL        string
	RequestTimeout time.Duration
	// SessionPath and CachePath are where the login and the offline chat
	// snapshot live on disk.
	SessionPath string
	CachePath   string

	// Stub server settings, used by cmd/stubserver only.
	StubAddr      string
	StubJWTSecret string
	StubTokenTTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("SKILLSWAP_DATA_DIR", defaultDataDir())

	cfg := &Config{
		APIBaseURL:     getEnv("SKILLSWAP_API_URL", "http://localhost:8080/api"),
		LiveURL:        getEnv("SKILLSWAP_LIVE_URL", "ws://localhost:8080/ws"),
		RequestTimeout: getEnvAsDuration("SKILLSWAP_REQUEST_TIMEOUT", 10*time.Second),
		SessionPath:    getEnv("SKILLSWAP_SESSION_PATH", filepath.Join(dataDir, "session.json")),
		CachePath:      getEnv("SKILLSWAP_CACHE_PATH", filepath.Join(dataDir, "chat.db")),
		StubAddr:       getEnv("STUB_ADDR", ":8080"),
		StubJWTSecret:  getEnv("STUB_JWT_SECRET", "dev-secret-change-me"),
		StubTokenTTL:   getEnvAsDuration("STUB_TOKEN_TTL", 24*time.Hour),
	}
	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "skillswap")
	}
	return ".skillswap"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
