package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/IbsanjU/yt-downloader/internal/model"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load loads configuration from environment variables
func Load() *model.Config {
	godotenv.Load()

	return &model.Config{
		Server: model.ServerConfig{
			Port:        getEnvInt("SERVER_PORT", 8080),
			Host:        getEnvStr("SERVER_HOST", "0.0.0.0"),
			ReadTimeout: getEnvInt("SERVER_READ_TIMEOUT", 30),
			IdleTimeout: getEnvInt("SERVER_IDLE_TIMEOUT", 120),
		},
		Extractor: model.ExtractorConfig{
			RequestTimeout: getEnvInt("REQUEST_TIMEOUT", 30),
			CookiesJSON:    getEnvStr("YOUTUBE_COOKIES", ""),
			UserAgent:      getEnvStr("USER_AGENT", defaultUserAgent),
			AcceptLanguage: getEnvStr("ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		},
		Logging: model.LoggingConfig{
			Level:    getEnvStr("LOG_LEVEL", "info"),
			FilePath: getEnvStr("LOG_FILE", ""),
		},
		Cache: model.CacheConfig{
			TTLSeconds:      getEnvInt("CACHE_TTL_SECONDS", 600),
			CleanupInterval: getEnvInt("CACHE_CLEANUP_INTERVAL", 300),
		},
		Sessions: model.SessionConfig{
			TTLSeconds:      getEnvInt("SESSION_TTL_SECONDS", 3600),
			CleanupInterval: getEnvInt("SESSION_CLEANUP_INTERVAL", 600),
		},
		RateLimit: model.RateLimitConfig{
			Enabled:           getEnvBool("RATELIMIT_ENABLED", false),
			RequestsPerMinute: getEnvInt("RATELIMIT_REQUESTS_PER_MINUTE", 60),
			BurstSize:         getEnvInt("RATELIMIT_BURST_SIZE", 10),
			CleanupInterval:   getEnvInt("RATELIMIT_CLEANUP_INTERVAL", 1800),
		},
	}
}

func getEnvStr(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	valStr := getEnvStr(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	valStr := strings.ToLower(getEnvStr(key, ""))
	if valStr == "true" || valStr == "1" || valStr == "yes" {
		return true
	}
	if valStr == "false" || valStr == "0" || valStr == "no" {
		return false
	}
	return defaultVal
}
