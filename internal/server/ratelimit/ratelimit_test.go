package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *time.Time) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(60))

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/briefs/generate", "POST")
		require.True(t, allowed, "request %d", i)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/api/briefs/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 7*time.Second)
}

func TestLimiter_Refills(t *testing.T) {
	l, now := newTestLimiter(t, NewConfig(60))

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("c", "/api/briefs/generate", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/api/briefs/generate", "POST")
	require.False(t, allowed)

	*now = now.Add(7 * time.Second)
	allowed, _ = l.Allow("c", "/api/briefs/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(60))

	for i := 0; i < 3; i++ {
		l.Allow("a", "/api/briefs/generate", "POST")
	}
	allowed, _ := l.Allow("a", "/api/briefs/generate", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/api/briefs/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_DefaultLimitSharedAcrossReadPaths(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(2))

	allowed, info := l.Allow("c", "/api/user/credits", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)
	allowed, _ = l.Allow("c", "/api/user/briefs", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/catalog", "GET")
	assert.False(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(1))
	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("c", HealthPath, "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Lists(t *testing.T) {
	cfg := NewConfig(1)
	cfg.Whitelist = ParseIPList([]string{"10.0.0.1", ""})
	cfg.Blacklist = ParseIPList([]string{"10.0.0.2"})
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/catalog", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/api/catalog", "GET")
	assert.False(t, allowed)
	assert.Len(t, cfg.Whitelist, 1)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(0))
	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("c", "/api/briefs/generate", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, now := newTestLimiter(t, NewConfig(60))
	l.Allow("a", "/api/catalog", "GET")
	l.Allow("b", "/api/catalog", "GET")
	require.Equal(t, 2, l.size())

	*now = now.Add(30 * time.Minute)
	l.Allow("b", "/api/catalog", "GET")
	*now = now.Add(31 * time.Minute)
	l.cleanupBuckets()

	assert.Equal(t, 1, l.size())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(NewConfig(60))
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name   string
		path   string
		method string
		want   string
	}{
		{"exact", "/api/briefs/generate", "POST", "/api/briefs/generate"},
		{"prefix", "/api/auth/login", "POST", "/api/auth/"},
		{"prefix put", "/api/auth/password", "PUT", "/api/auth/"},
		{"method mismatch", "/api/briefs/generate", "GET", ""},
		{"no match", "/api/catalog", "GET", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Path)
		})
	}

	health := MatchEndpoint(HealthPath, "GET", configs)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit)
}
