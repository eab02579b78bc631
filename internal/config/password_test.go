package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Run("default cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")
		t.Setenv("PASSWORD_PEPPER", "")
		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
		assert.Empty(t, cfg.Pepper)
	})

	t.Run("cost out of range", func(t *testing.T) {
		for _, cost := range []string{"9", "15"} {
			t.Setenv("BCRYPT_COST", cost)
			_, err := NewPasswordConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "out of range")
		}
	})

	t.Run("non-numeric cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "high")
		_, err := NewPasswordConfig()
		assert.Error(t, err)
	})
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, cfg.VerifyPassword("secret1", hash))
	assert.False(t, cfg.VerifyPassword("secret2", hash))
	assert.False(t, cfg.VerifyPassword("secret1", ""))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "server-side"}
	plain := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := peppered.HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret1", hash))
	assert.False(t, plain.VerifyPassword("secret1", hash))
}
