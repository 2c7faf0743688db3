package config

import "testing"

func TestLoadRequiresAuthSecret(t *testing.T) {
	t.Setenv("BOARDHUB_AUTH_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when signing secret is absent")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOARDHUB_AUTH_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development default, got %q", cfg.AppEnv)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected empty database url, got %q", cfg.DatabaseURL)
	}
	if cfg.MaxRequestBodySize != 1<<20 {
		t.Fatalf("unexpected body size cap: %d", cfg.MaxRequestBodySize)
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com , ,https://b.example.com"}
	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if (&Config{}).GetCORSAllowedOrigins() != nil {
		t.Fatal("expected nil for empty origins")
	}
}
