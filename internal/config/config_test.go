package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(5), cfg.StartingCredits)
	assert.Equal(t, int64(5), cfg.ReferralBonus)
	assert.Equal(t, int64(1), cfg.GenerationCost)
	assert.False(t, cfg.NeedsPostgres())
	assert.False(t, cfg.NeedsRedis())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "briefly.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
ledger_backend: redis
redis_url: redis://localhost:6379/0
starting_credits: 10
cors_allowed_origins:
  - https://app.example.com
`), 0o600))

	for _, key := range []string{"PORT", "LEDGER_BACKEND", "CORS_ALLOWED_ORIGINS", "IDENTITY_PROVIDER"} {
		t.Setenv(key, "")
	}
	t.Setenv("STARTING_CREDITS", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendRedis, cfg.LedgerBackend)
	assert.Equal(t, int64(7), cfg.StartingCredits)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.NeedsRedis())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.applyEnv(envMap(map[string]string{
		"PORT":                 "3001",
		"DATABASE_URL":         "postgres://localhost/briefly",
		"STORE_BACKEND":        "postgres",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://briefly.ng ,",
		"GENERATION_COST":      "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, []string{"http://localhost:3000", "https://briefly.ng"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(2), cfg.GenerationCost)
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.NeedsPostgres())
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	cfg := Defaults()
	err := cfg.applyEnv(envMap(map[string]string{"REFERRAL_BONUS": "lots"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFERRAL_BONUS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{"unknown ledger backend", func(c *AppConfig) { c.LedgerBackend = "etcd" }, "unknown ledger_backend"},
		{"postgres without url", func(c *AppConfig) { c.StoreBackend = BackendPostgres }, "requires DATABASE_URL"},
		{"redis without url", func(c *AppConfig) { c.LedgerBackend = BackendRedis }, "requires REDIS_URL"},
		{"users on redis", func(c *AppConfig) { c.UserBackend = BackendRedis }, "unknown user_backend"},
		{"firebase without credentials", func(c *AppConfig) { c.IdentityProvider = IdentityFirebase }, "FIREBASE_CREDENTIALS_PATH"},
		{"unknown identity", func(c *AppConfig) { c.IdentityProvider = "saml" }, "unknown identity_provider"},
		{"zero cost", func(c *AppConfig) { c.GenerationCost = 0 }, "generation_cost"},
		{"negative bonus", func(c *AppConfig) { c.ReferralBonus = -1 }, "non-negative"},
		{"bad port", func(c *AppConfig) { c.Port = 0 }, "port out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
