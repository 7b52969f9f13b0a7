package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.CheckinMargin != 2*time.Hour {
		t.Fatalf("expected default margin 2h, got %s", cfg.CheckinMargin)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 default origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://tickets.example.com")
	t.Setenv("CHECKIN_MARGIN", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://tickets.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.CheckinMargin != 30*time.Minute {
		t.Fatalf("expected margin 30m, got %s", cfg.CheckinMargin)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CHECKIN_MARGIN", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
