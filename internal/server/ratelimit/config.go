package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns the service configuration for a default per-minute
// limit. A non-positive limit disables rate limiting.
func NewConfig(perMinute int) *Config {
	if perMinute <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Generation spends credits and does the most work
		{Path: "/api/briefs/generate", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Credential endpoints are brute-force targets
		{Path: "/api/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/auth/", Method: "PUT", Limit: 20, Window: time.Minute, Burst: 5},

		// Reads use the default limit; health is unlimited (see matcher)
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
