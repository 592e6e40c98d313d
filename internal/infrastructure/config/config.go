// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Reuse store backends
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Graph API
	PageAccessToken string
	GraphAPIURL     string
	GraphAPIVersion string
	HTTPTimeout     time.Duration

	// Reuse store
	ReuseStore string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Metrics
	MetricsPort string

	// Broadcast
	BroadcastConcurrency int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		PageAccessToken: getEnv("PAGE_ACCESS_TOKEN", ""),
		GraphAPIURL:     getEnv("GRAPH_API_URL", "https://graph.facebook.com"),
		GraphAPIVersion: getEnv("GRAPH_API_VERSION", "v2.11"),
		HTTPTimeout:     time.Duration(getEnvAsInt("HTTP_TIMEOUT", 30)) * time.Second,

		ReuseStore: getEnv("REUSE_STORE", StoreMemory),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "messenger"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		MetricsPort: getEnv("METRICS_PORT", ""),

		BroadcastConcurrency: getEnvAsInt("BROADCAST_CONCURRENCY", 8),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
