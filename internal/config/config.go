package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. It is built once at startup and
// handed to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	APIKey      string
	DatabaseDSN string
	LogLevel    string
	LogFile     string
	HTTPAddr    string
}

// Load reads settings from the environment, after loading a .env file
// if one is present in the working directory.
func Load() Config {
	// Best effort; a missing .env just means plain environment lookup.
	_ = godotenv.Load()

	return Config{
		APIKey:      getenv("API_KEY", "change-me"),
		DatabaseDSN: getenv("DATABASE_DSN", "root:root@tcp(localhost:3306)/items?parseTime=true"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFile:     getenv("LOG_FILE", "./logs/app.log"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
	}
}

// EnsureLogDirectory creates the parent directory of the configured
// log file if it does not exist yet.
func (c Config) EnsureLogDirectory() error {
	dir := filepath.Dir(c.LogFile)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
