package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Fatalf("expected 30m default token ttl, got %s", cfg.TokenTTL())
	}
}

// The process must refuse to start without an externally supplied secret.
func TestLoad_MissingSecretFailsFast(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when JWT_SECRET is absent")
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL_MINUTES", "0")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for zero token ttl")
	}
}

func TestLoad_CustomTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL_MINUTES", "15")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL() != 15*time.Minute {
		t.Fatalf("expected 15m token ttl, got %s", cfg.TokenTTL())
	}
}
