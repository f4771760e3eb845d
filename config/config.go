package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by STORE_BACKEND.
const (
	StoreBackendSupabase = "supabase"
	StoreBackendPostgres = "postgres"
	StoreBackendSQLite   = "sqlite"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Site content
	ContentDir     string
	StaticDir      string
	AllowedOrigins []string
	// Submission store
	StoreBackend string
	SupabaseUrl  string
	SupabaseKey  string
	DBUrl        string
	SQLitePath   string
	StoreTimeout time.Duration
	// Outbound mail relay
	SMTPHost       string
	SMTPPort       string
	SenderName     string
	SenderEmail    string // Also the SMTP login
	SenderPassword string
	SMTPTimeout    time.Duration
	// Redis/Upstash Configuration (duplicate submission guard)
	UpstashRedisURL      string
	UpstashRedisPassword string
	IdempotencyTTL       time.Duration
	// Keep-alive client
	ContactAPIURL string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ContentDir:     getEnv("CONTENT_DIR", "content"),
		StaticDir:      getEnv("STATIC_DIR", "static"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendSupabase)),
		// Strip the trailing slash so paths never double up (.co//rest)
		SupabaseUrl:  strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:  getEnv("SUPABASE_KEY", getEnv("SUPABASE_PUBLIC_KEY", getEnv("SUPABASE_ANON_KEY", ""))),
		DBUrl:        getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "data/portfolio.db"),
		StoreTimeout: getEnvSeconds("STORE_TIMEOUT_SECONDS", 10),

		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SenderName:     getEnv("SENDER_NAME", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		SenderPassword: getEnv("SENDER_PASSWORD", ""),
		SMTPTimeout:    getEnvSeconds("SMTP_TIMEOUT_SECONDS", 10),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		IdempotencyTTL:       getEnvSeconds("IDEMPOTENCY_TTL_SECONDS", 600),

		ContactAPIURL: getEnv("CONTACT_API_URL", ""),
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Duplicate submission guard will use in-memory fallback.")
	}

	return cfg, nil
}

// DefaultSenderName fills SenderName with name when SENDER_NAME is unset or blank.
func (c *Config) DefaultSenderName(name string) {
	if strings.TrimSpace(c.SenderName) == "" {
		c.SenderName = name
	}
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

// getEnvSeconds reads a positive number of seconds; non-positive values fall back.
func getEnvSeconds(key string, fallback int) time.Duration {
	seconds := getEnvInt(key, fallback)
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
