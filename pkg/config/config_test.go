package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd for production env")
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Upstream.Timeout; got != 10*time.Second {
		t.Fatalf("expected upstream timeout 10s, got %v", got)
	}

	if got := cfg.Draft.TTL; got != 24*time.Hour {
		t.Fatalf("expected draft ttl 24h, got %v", got)
	}

	if cfg.Print.SignatureName != "Abdun Nafih" {
		t.Fatalf("unexpected signature name %q", cfg.Print.SignatureName)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNonHTTPUpstream(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvUpstreamBaseURL, "ftp://example.lk/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http upstream base url to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvAppPort, "8081")
	t.Setenv(EnvJWTSecret, "test-secret")
	t.Setenv(EnvJWTIssuer, "procuretrack")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvUpstreamBaseURL, "https://erp.example.lk/api")
}
