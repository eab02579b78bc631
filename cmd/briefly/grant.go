package main

import (
	"fmt"

	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Add credits to a user's balance",
	Long:  "Grants credits through the configured ledger backend and prints the user's recent history.",
	RunE:  runGrant,
}

var (
	grantUser   string
	grantAmount int64
	grantReason string
)

func init() {
	grantCmd.Flags().StringVarP(&grantUser, "user", "u", "", "User ID to credit (required)")
	grantCmd.Flags().Int64VarP(&grantAmount, "amount", "a", 0, "Number of credits to grant (required)")
	grantCmd.Flags().StringVarP(&grantReason, "reason", "r", credits.ReasonManual, "Reason recorded in the ledger")

	for _, name := range []string{"user", "amount"} {
		if err := grantCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(grantCmd)
}

func runGrant(cmd *cobra.Command, _ []string) error {
	if err := credits.ValidateAmount(grantAmount); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.LedgerBackend == config.BackendMemory {
		logger.Warn("ledger backend is in-memory; the grant will not outlive this process")
	}

	ctx := cmd.Context()
	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	balance, err := b.Ledger.Grant(ctx, grantUser, grantAmount, grantReason)
	if err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}
	logger.Info("credits granted",
		zap.String("user_id", grantUser),
		zap.Int64("amount", grantAmount),
		zap.Int64("balance", balance),
	)

	history, err := b.Ledger.History(ctx, grantUser, credits.DefaultHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to read credit history: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintLedger(grantUser, balance, history)
	return nil
}
