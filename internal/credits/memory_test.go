package credits_test

import (
	"testing"

	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/credits/creditstest"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLedger(t *testing.T) {
	creditstest.Run(t, func(t *testing.T) credits.Ledger {
		return credits.NewMemoryLedger()
	})
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, credits.DefaultHistoryLimit, credits.NormalizeLimit(0))
	assert.Equal(t, credits.DefaultHistoryLimit, credits.NormalizeLimit(-3))
	assert.Equal(t, 7, credits.NormalizeLimit(7))
}

func TestInsufficientCreditError_Message(t *testing.T) {
	err := &credits.InsufficientCreditError{UserID: "u1", Balance: 0, Required: 1}
	assert.Equal(t, "insufficient credits for user u1: have 0, need 1", err.Error())
}
