package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FOODADMIN_API_BASE_URL", "http://localhost:3000/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %s, want 10s", cfg.API.Timeout)
	}
	if cfg.Journal.Stream != "admin" || cfg.Journal.SnapshotEvery != 100 {
		t.Errorf("Journal = %+v", cfg.Journal)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Tracing.Stdout {
		t.Error("Tracing.Stdout should default to false")
	}
}

func TestLoad_OverridesAndAlternates(t *testing.T) {
	t.Setenv("FOODADMIN_API_BASE_URL", "https://backend.example/api")
	t.Setenv("FOODADMIN_API_TIMEOUT", "3s")
	t.Setenv("ADDR", "127.0.0.1:9000")
	t.Setenv("DATABASE_URL", "sqlite:file:x.db")
	t.Setenv("FOODADMIN_SNAPSHOT_EVERY", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_STDOUT", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %s", cfg.API.Timeout)
	}
	if cfg.Journal.URL != "sqlite:file:x.db" || cfg.Journal.SnapshotEvery != 0 {
		t.Errorf("Journal = %+v", cfg.Journal)
	}
	if cfg.Logging.Level != "debug" || !cfg.Tracing.Stdout {
		t.Errorf("cfg = %+v", cfg)
	}
	if strings.Contains(cfg.String(), "x.db") {
		t.Errorf("String() leaks database url: %s", cfg.String())
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	t.Setenv("FOODADMIN_API_BASE_URL", "")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "FOODADMIN_API_BASE_URL") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad duration", "FOODADMIN_API_TIMEOUT", "soon", "invalid duration"},
		{"bad int", "FOODADMIN_SNAPSHOT_EVERY", "many", "invalid integer"},
		{"bad bool", "OTEL_STDOUT", "maybe", "invalid boolean"},
		{"bad level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"negative snapshots", "FOODADMIN_SNAPSHOT_EVERY", "-1", "FOODADMIN_SNAPSHOT_EVERY"},
		{"relative url", "FOODADMIN_API_BASE_URL", "/api", "absolute http(s) URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FOODADMIN_API_BASE_URL", "http://localhost:3000/api")
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
