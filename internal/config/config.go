// Package config provides configuration loading and validation for the
// briefly service and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend names accepted for the ledger and brief store.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Identity provider names.
const (
	IdentityJWT      = "jwt"
	IdentityFirebase = "firebase"
)

// AppConfig is the service configuration. Values come from defaults, then an
// optional YAML file, then environment variables.
type AppConfig struct {
	Port                    int      `yaml:"port"`
	DatabaseURL             string   `yaml:"database_url"`
	RedisURL                string   `yaml:"redis_url"`
	LedgerBackend           string   `yaml:"ledger_backend"`
	StoreBackend            string   `yaml:"store_backend"`
	UserBackend             string   `yaml:"user_backend"`
	IdentityProvider        string   `yaml:"identity_provider"`
	FirebaseCredentialsPath string   `yaml:"firebase_credentials_path"`
	CORSAllowedOrigins      []string `yaml:"cors_allowed_origins"`
	StartingCredits         int64    `yaml:"starting_credits"`
	ReferralBonus           int64    `yaml:"referral_bonus"`
	GenerationCost          int64    `yaml:"generation_cost"`
	RateLimitPerMinute      int      `yaml:"rate_limit_per_minute"`
	LogLevel                string   `yaml:"log_level"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() AppConfig {
	return AppConfig{
		Port:               8080,
		LedgerBackend:      BackendMemory,
		StoreBackend:       BackendMemory,
		UserBackend:        BackendMemory,
		IdentityProvider:   IdentityJWT,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		StartingCredits:    5,
		ReferralBonus:      5,
		GenerationCost:     1,
		RateLimitPerMinute: 60,
		LogLevel:           "info",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply. The result is validated.
func Load(path string) (*AppConfig, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) mergeFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *AppConfig) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int64) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
		return nil
	}

	str("DATABASE_URL", &c.DatabaseURL)
	str("REDIS_URL", &c.RedisURL)
	str("LEDGER_BACKEND", &c.LedgerBackend)
	str("STORE_BACKEND", &c.StoreBackend)
	str("USER_BACKEND", &c.UserBackend)
	str("IDENTITY_PROVIDER", &c.IdentityProvider)
	str("FIREBASE_CREDENTIALS_PATH", &c.FirebaseCredentialsPath)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}

	var port, rate int64 = int64(c.Port), int64(c.RateLimitPerMinute)
	for key, dst := range map[string]*int64{
		"PORT":                  &port,
		"RATE_LIMIT_PER_MINUTE": &rate,
		"STARTING_CREDITS":      &c.StartingCredits,
		"REFERRAL_BONUS":        &c.ReferralBonus,
		"GENERATION_COST":       &c.GenerationCost,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	c.Port = int(port)
	c.RateLimitPerMinute = int(rate)
	return nil
}

// Validate checks backend names, required URLs and numeric ranges.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}

	backends := map[string]string{
		"ledger_backend": c.LedgerBackend,
		"store_backend":  c.StoreBackend,
	}
	for field, value := range backends {
		switch value {
		case BackendMemory:
		case BackendPostgres:
			if c.DatabaseURL == "" {
				return fmt.Errorf("config error: %s %q requires DATABASE_URL", field, value)
			}
		case BackendRedis:
			if c.RedisURL == "" {
				return fmt.Errorf("config error: %s %q requires REDIS_URL", field, value)
			}
		default:
			return fmt.Errorf("config error: unknown %s %q", field, value)
		}
	}

	switch c.UserBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: user_backend %q requires DATABASE_URL", c.UserBackend)
		}
	default:
		return fmt.Errorf("config error: unknown user_backend %q", c.UserBackend)
	}

	switch c.IdentityProvider {
	case IdentityJWT:
	case IdentityFirebase:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("config error: identity_provider %q requires FIREBASE_CREDENTIALS_PATH", c.IdentityProvider)
		}
	default:
		return fmt.Errorf("config error: unknown identity_provider %q", c.IdentityProvider)
	}

	if c.StartingCredits < 0 || c.ReferralBonus < 0 {
		return fmt.Errorf("config error: starting_credits and referral_bonus must be non-negative")
	}
	if c.GenerationCost < 1 {
		return fmt.Errorf("config error: generation_cost must be at least 1, got %d", c.GenerationCost)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: rate_limit_per_minute must be non-negative")
	}
	return nil
}

// NeedsPostgres reports whether any component is configured to use Postgres.
func (c *AppConfig) NeedsPostgres() bool {
	return c.LedgerBackend == BackendPostgres || c.StoreBackend == BackendPostgres || c.UserBackend == BackendPostgres
}

// NeedsRedis reports whether any component is configured to use Redis.
func (c *AppConfig) NeedsRedis() bool {
	return c.LedgerBackend == BackendRedis || c.StoreBackend == BackendRedis
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
