package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrant_Memory(t *testing.T) {
	memoryEnv(t)

	out, err := executeCommand(t, "grant", "--user", "user-1", "--amount", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "CREDITS")
	assert.Contains(t, out, "Balance:  5")
	assert.Contains(t, out, "+5")
}

func TestGrant_RedisPersistsAcrossRuns(t *testing.T) {
	mr := miniredis.RunT(t)
	memoryEnv(t)
	t.Setenv("LEDGER_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())

	_, err := executeCommand(t, "grant", "--user", "user-1", "--amount", "5", "--reason", "promo")
	require.NoError(t, err)

	out, err := executeCommand(t, "grant", "-u", "user-1", "-a", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:  8")
	assert.Contains(t, out, "promo")
}

func TestGrant_RejectsNonPositiveAmount(t *testing.T) {
	memoryEnv(t)

	_, err := executeCommand(t, "grant", "--user", "user-1", "--amount", "0")
	require.Error(t, err)
}

func TestGrant_RequiresFlags(t *testing.T) {
	memoryEnv(t)

	_, err := executeCommand(t, "grant", "--amount", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}
