// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first when present, so local development does not need exported vars.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store mode values for Config.Store.
const (
	StorePostgres = "postgres"
	StoreLocal    = "local"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// Store selects the persistence backend: "postgres" (hosted store) or
	// "local" (offline JSON snapshot). Defaults to "postgres".
	Store string

	// DatabaseURL is the Postgres connection string.
	// Required when Store is "postgres".
	DatabaseURL string

	// LocalDBPath is the snapshot file used by the local store.
	// Defaults to "livestock-local.json". Empty STORE_PATH keeps the default;
	// the local store itself treats an empty path as in-memory only.
	LocalDBPath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// AuthEmail and AuthPasswordHash are the staff credential: the sign-in
	// email and the bcrypt hash of its password. Required when Store is
	// "postgres"; ignored in local mode, which accepts any credentials.
	AuthEmail        string
	AuthPasswordHash string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB;
	// trip payloads are tiny, so this is generous.
	MaxBodyBytes int64
}

// Load reads configuration from the environment (and a .env file, if one
// exists) and returns a Config. Returns an error listing any required
// variables that are not set.
func Load() (Config, error) {
	// Missing .env is the normal production case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Store:            getEnv("STORE", StorePostgres),
		LocalDBPath:      getEnv("STORE_PATH", "livestock-local.json"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes:     getEnvInt64("MAX_BODY_BYTES", 1<<20),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AuthEmail:        os.Getenv("AUTH_EMAIL"),
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreLocal {
		return Config{}, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreLocal, cfg.Store)
	}

	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if cfg.Store == StorePostgres {
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if cfg.AuthEmail == "" {
			missing = append(missing, "AUTH_EMAIL")
		}
		if cfg.AuthPasswordHash == "" {
			missing = append(missing, "AUTH_PASSWORD_HASH")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt64 parses the environment variable named by key as an integer,
// or returns fallback if it is unset or not a positive number.
func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
