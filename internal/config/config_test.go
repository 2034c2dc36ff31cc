package config_test

import (
	"testing"
	"time"

	"github.com/dotgov/registrar/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DatabasePath != "registrar.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "registrar.db")
	}
	if cfg.CSRFTokenTTL != time.Hour {
		t.Errorf("CSRFTokenTTL = %v, want %v", cfg.CSRFTokenTTL, time.Hour)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", cfg.WorkerCount)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("CSRF_TOKEN_TTL", "15m")
	t.Setenv("NOTIFICATION_WORKERS", "4")

	cfg := config.Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9999")
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/tmp/other.db")
	}
	if cfg.CSRFTokenTTL != 15*time.Minute {
		t.Errorf("CSRFTokenTTL = %v, want 15m", cfg.CSRFTokenTTL)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("CSRF_TOKEN_TTL", "soon")
	t.Setenv("NOTIFICATION_WORKERS", "many")

	cfg := config.Load()

	if cfg.CSRFTokenTTL != time.Hour {
		t.Errorf("CSRFTokenTTL = %v, want the default on a malformed value", cfg.CSRFTokenTTL)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want the default on a malformed value", cfg.WorkerCount)
	}
}
