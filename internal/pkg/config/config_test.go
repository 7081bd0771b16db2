package config

import (
	"context"
	"os"
	"testing"
	"time"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "PORT", "ENV", "JWT_TTL", "HASH_COST", "HASH_WORKERS", "MONGO_DB", "CORS_ORIGINS")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("expected default JWT TTL 24h, got %s", cfg.JWTTTL)
	}
	if cfg.Hash.Cost != 10 {
		t.Errorf("expected default hash cost 10, got %d", cfg.Hash.Cost)
	}
	if cfg.Mongo.Database != "commodity_market" {
		t.Errorf("unexpected mongo db: %q", cfg.Mongo.Database)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if !cfg.Development() {
		t.Error("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("HASH_COST", "12")
	t.Setenv("HASH_WORKERS", "4")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Hash.Cost != 12 || cfg.Hash.Workers != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.JWTTTL != 90*time.Minute {
		t.Errorf("expected 90m, got %s", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Development() {
		t.Error("production must not be development")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	unset(t, "JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}
