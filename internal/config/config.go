package config

import (
	"os"
	"strconv"
	"time"

	"eventgrid/internal/checkout"
	"eventgrid/internal/external"
)

// Config holds the storefront configuration
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	// Short-lived read-through cache for event listings
	EventCacheTTL time.Duration

	Upstream external.Config
	Checkout checkout.Config
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		EventCacheTTL: time.Duration(getEnvInt("EVENT_CACHE_TTL_SEC", 30)) * time.Second,

		Upstream: external.Config{
			BaseURL: getEnv("TICKETING_API_URL", "https://event-grid.onrender.com/api"),
			Timeout: time.Duration(getEnvInt("TICKETING_TIMEOUT_SEC", 30)) * time.Second,
		},

		Checkout: checkout.Config{
			PollInterval: time.Duration(getEnvInt("PAYMENT_POLL_INTERVAL_SEC", 3)) * time.Second,
			PollTimeout:  time.Duration(getEnvInt("PAYMENT_POLL_TIMEOUT_SEC", 120)) * time.Second,
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
