package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testSecret = "cli-test-secret-that-is-long-enough-0123456789"

// executeCommand runs the root command in-process with flags reset to their
// defaults and returns everything written to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// memoryEnv points every backend at process memory.
func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("USER_BACKEND", "memory")
	t.Setenv("IDENTITY_PROVIDER", "jwt")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BCRYPT_COST", "10")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validIntake = `{
  "client_name": "Acme",
  "project_type": "Logo Design",
  "budget": 75000,
  "brand_personality": "modern"
}`
