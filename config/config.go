package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string
	// Slack Incoming Webhook that receives contact notifications
	SlackWebhookURL string
	// CORS whitelist (production origins)
	AllowedOrigins []string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Contact form rate limiting
	ContactRateLimit         int
	ContactRateWindowSeconds int
	// Answer 503 instead of falling back to memory when Redis errors
	ContactRateLimitFailClosed bool
	// Logging
	LogLevel string
	LogFile  string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; missing file is fine in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		SlackWebhookURL: strings.TrimSpace(getEnv("SLACK_WEBHOOK_URL", "")),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"https://denimcap.work", "https://www.denimcap.work"}),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Contact form rate limiting (5 submissions per minute per IP)
		ContactRateLimit:           getEnvInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindowSeconds:   getEnvInt("CONTACT_RATE_WINDOW_SECONDS", 60),
		ContactRateLimitFailClosed: getEnvBool("CONTACT_RATE_LIMIT_FAIL_CLOSED", false),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFile:                    getEnv("LOG_FILE", ""),
	}

	if cfg.SlackWebhookURL == "" {
		log.Println("WARNING: SLACK_WEBHOOK_URL is missing. Contact submissions will fail with a server error.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsRelease reports whether gin runs in release mode
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool parses true/false style values, keeping fallback when unset/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries and trailing slashes
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
