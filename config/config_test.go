package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want release", cfg.Server.Mode)
	}
	if cfg.Tiers.DirectTimeout != 10*time.Second {
		t.Errorf("Tiers.DirectTimeout = %v, want 10s", cfg.Tiers.DirectTimeout)
	}
	if cfg.Tiers.PreviewBaseURL != "https://api.microlink.io" {
		t.Errorf("Tiers.PreviewBaseURL = %q", cfg.Tiers.PreviewBaseURL)
	}
	if cfg.Tiers.RenderTimeout != 55*time.Second {
		t.Errorf("Tiers.RenderTimeout = %v, want 55s", cfg.Tiers.RenderTimeout)
	}
	if cfg.Tiers.CountryCode != "il" {
		t.Errorf("Tiers.CountryCode = %q, want il", cfg.Tiers.CountryCode)
	}
	if cfg.Auth.Enabled {
		t.Error("Auth.Enabled = true, want false by default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WISHU_PORT", "9090")
	t.Setenv("WISHU_DIRECT_TIMEOUT", "3s")
	t.Setenv("WISHU_API_KEYS", "key-a, key-b,")
	t.Setenv("WISHU_RATE_RPS", "2.5")
	t.Setenv("SCRAPINGBEE_API_KEY", "sb-test")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Tiers.DirectTimeout != 3*time.Second {
		t.Errorf("Tiers.DirectTimeout = %v, want 3s", cfg.Tiers.DirectTimeout)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-a" || cfg.Auth.APIKeys[1] != "key-b" {
		t.Errorf("Auth.APIKeys = %v, want [key-a key-b]", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want 2.5", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Tiers.RenderAPIKey != "sb-test" {
		t.Errorf("Tiers.RenderAPIKey = %q, want sb-test", cfg.Tiers.RenderAPIKey)
	}
}

func TestEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("WISHU_PORT", "not-a-number")
	t.Setenv("WISHU_DIRECT_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Tiers.DirectTimeout != 10*time.Second {
		t.Errorf("Tiers.DirectTimeout = %v, want default 10s", cfg.Tiers.DirectTimeout)
	}
}
