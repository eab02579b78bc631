// Package main provides the briefly CLI: the HTTP API server plus offline
// tools for composing and validating briefs and managing credits.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "briefly",
	Short:         "Credit-gated creative brief generator",
	Long:          "Briefly turns a short project intake into a complete creative brief. Generation over the API costs credits; the CLI can also compose briefs offline.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		logLevel.SetLevel(zap.DebugLevel)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = logLevel
	return cfg.Build()
}

// applyLogLevel sets the configured level unless --verbose already forced debug.
func applyLogLevel(level string) error {
	if verbose || level == "" {
		return nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logLevel.SetLevel(lvl)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
