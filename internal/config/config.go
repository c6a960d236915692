package config

import (
	"os"
	"strings"
)

// Config holds the application configuration. Everything comes from the
// environment with workable defaults, so a bare start serves the API with
// in-memory storage and no external services.
type Config struct {
	// Environment
	Environment string
	Port        string
	ProjectName string

	// Storage
	DatabaseURL string // optional; patterns stay in memory when empty

	// HTTP
	CORSOrigins []string

	// Observability
	SentryDSN string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		ProjectName: getEnv("PROJECT_NAME", "Pattern Music Studio API"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "*")),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
