package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	// Dev-only fixed identity for requests without a bearer token
	DevUserID string
	// Feed cache: in-process unless RedisURL is set
	RedisURL     string
	FeedCacheTTL time.Duration
	// Timeouts
	RequestTimeout time.Duration
	ViewTimeout    time.Duration
	// Apply schema on start
	AutoMigrate bool
	// Logging and tracing
	LogDir       string
	OTLPEndpoint string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
		DevUserID:       getEnv("DEV_USER_ID", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		FeedCacheTTL:    getDuration("FEED_CACHE_TTL", 30*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		ViewTimeout:     getDuration("VIEW_TIMEOUT", 3*time.Second),
		AutoMigrate:     getBool("AUTO_MIGRATE", env != "prod"),
		LogDir:          getEnv("LOG_DIR", ""),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}
