package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the registrar reads from the environment.
type Config struct {
	Port         string
	DatabasePath string
	CSRFSecret   string
	CSRFTokenTTL time.Duration
	WorkerCount  int
}

// Load reads configuration from a .env file (when present) and the
// environment, falling back to development defaults.
func Load() *Config {
	// A missing .env file is fine; env vars alone are enough.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "registrar.db"),
		CSRFSecret:   getEnv("CSRF_SECRET", "dev-secret-change-in-production"),
		CSRFTokenTTL: getEnvAsDuration("CSRF_TOKEN_TTL", time.Hour),
		WorkerCount:  getEnvAsInt("NOTIFICATION_WORKERS", 2),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
