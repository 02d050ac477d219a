package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"API_KEY", "DATABASE_DSN", "LOG_LEVEL", "LOG_FILE", "HTTP_ADDR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.APIKey != "change-me" {
		t.Errorf("expected default API key, got %q", cfg.APIKey)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.LogFile != "./logs/app.log" {
		t.Errorf("expected default log file, got %q", cfg.LogFile)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.DatabaseDSN == "" {
		t.Error("expected a default DSN")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "supersecret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg := Load()

	if cfg.APIKey != "supersecret" {
		t.Errorf("expected API key from env, got %q", cfg.APIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.LogLevel)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected addr from env, got %q", cfg.HTTPAddr)
	}
}

func TestEnsureLogDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{LogFile: filepath.Join(dir, "nested", "logs", "app.log")}

	if err := cfg.EnsureLogDirectory(); err != nil {
		t.Fatalf("EnsureLogDirectory failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "nested", "logs"))
	if err != nil {
		t.Fatalf("expected log directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}
