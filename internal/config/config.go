package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// DatabaseURL points at the PostgreSQL run ledger. Empty disables the ledger
	// for one-shot CLI loads.
	DatabaseURL string
	MaxDBConns  int32
	RedisURL    string

	JWTSecret         string
	JWTExpiry         time.Duration
	BcryptCost        int
	AdminUsername     string
	AdminPasswordHash string
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
	// LoginRateLimit is the number of login attempts allowed per IP per minute.
	LoginRateLimit int
	BrotliQuality  int

	Seed           int64
	StudentCount   int
	BatchSize      int
	LargeBatchSize int
	NodeWriters    int
	QueryCacheTTL  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "pretty"),

		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "neo4j"),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		MaxDBConns:  int32(getEnvInt("MAX_DB_CONNS", 4)),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:         getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		LoginRateLimit:    getEnvInt("LOGIN_RATE_LIMIT", 10),
		BrotliQuality:     getEnvInt("BROTLI_QUALITY", 5),

		Seed:           getEnvInt64("GENERATOR_SEED", 2024),
		StudentCount:   getEnvInt("STUDENT_COUNT", 5600),
		BatchSize:      getEnvInt("BATCH_SIZE", 500),
		LargeBatchSize: getEnvInt("LARGE_BATCH_SIZE", 1000),
		NodeWriters:    getEnvInt("NODE_WRITERS", 4),
		QueryCacheTTL:  time.Duration(getEnvInt("QUERY_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
