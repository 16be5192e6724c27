package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	HTTPAddr      string
	DBDSN         string
	LogLevel      string
	MigrationsDir string
	ProdOrigins   string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// HTTP listen address (default: :9090, the port the clients expect)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":9090")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Log level for zerolog (default: info)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Directory holding golang-migrate SQL files
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	// Allowed CORS origins (comma separated, default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
