package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Tiers     TiersConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// TiersConfig controls the three acquisition tiers.
type TiersConfig struct {
	// DirectTimeout is the deadline for the Tier 1 direct fetch.
	DirectTimeout time.Duration // default: 10s

	// PreviewBaseURL is the Tier 2 link-preview API endpoint.
	PreviewBaseURL string // default: "https://api.microlink.io"

	// PreviewTimeout is the deadline for the Tier 2 call.
	PreviewTimeout time.Duration // default: 15s

	// RenderBaseURL is the Tier 3 rendering-proxy endpoint.
	RenderBaseURL string // default: "https://app.scrapingbee.com/api/v1/"

	// RenderAPIKey is the Tier 3 credential. Empty means the tier is
	// unavailable; the pipeline degrades gracefully.
	RenderAPIKey string

	// RenderTimeout is the deadline for the Tier 3 call, sized for full
	// JavaScript rendering behind a stealth proxy.
	RenderTimeout time.Duration // default: 55s

	// RenderWait is the post-render settle time requested from the provider.
	RenderWait time.Duration // default: 5s

	// CountryCode routes the render proxy through the target market.
	CountryCode string // default: "il"
}

// AuthConfig controls API key authentication. Disabled by default: the
// production caller is an anonymous browser client.
type AuthConfig struct {
	Enabled bool
	APIKeys []string
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// The render credential is read from SCRAPINGBEE_API_KEY, matching the name
// the deployment already provisions.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("WISHU_HOST", "0.0.0.0"),
			Port: envIntOr("WISHU_PORT", 8080),
			Mode: envOr("WISHU_MODE", "release"),
		},
		Tiers: TiersConfig{
			DirectTimeout:  envDurationOr("WISHU_DIRECT_TIMEOUT", 10*time.Second),
			PreviewBaseURL: envOr("WISHU_PREVIEW_URL", "https://api.microlink.io"),
			PreviewTimeout: envDurationOr("WISHU_PREVIEW_TIMEOUT", 15*time.Second),
			RenderBaseURL:  envOr("WISHU_RENDER_URL", "https://app.scrapingbee.com/api/v1/"),
			RenderAPIKey:   os.Getenv("SCRAPINGBEE_API_KEY"),
			RenderTimeout:  envDurationOr("WISHU_RENDER_TIMEOUT", 55*time.Second),
			RenderWait:     envDurationOr("WISHU_RENDER_WAIT", 5*time.Second),
			CountryCode:    envOr("WISHU_COUNTRY_CODE", "il"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("WISHU_AUTH_ENABLED", false),
			APIKeys: envSliceOr("WISHU_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("WISHU_RATE_RPS", 5.0),
			Burst:             envIntOr("WISHU_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("WISHU_LOG_LEVEL", "info"),
			Format: envOr("WISHU_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
