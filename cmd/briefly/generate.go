package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/observability"
	"github.com/jonathan/briefly/internal/rendering"
	"github.com/jonathan/briefly/internal/schemas"
	"github.com/jonathan/briefly/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compose a brief offline from an intake JSON file",
	Long:  "Validates a ProjectIntake JSON file and composes a brief from it without touching any credit ledger. The brief is written as JSON or exported as a Markdown or LaTeX document.",
	RunE:  runGenerate,
}

var (
	generateInput  string
	generateOutput string
	generateQuiet  bool
	generateFormat string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "Path to ProjectIntake JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to write the brief JSON (default: stdout)")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "Do not print the brief summary")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "json", "Output format: json, markdown or latex")

	if err := generateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(generateInput)
	if err != nil {
		return fmt.Errorf("failed to read intake file: %w", err)
	}

	if err := schemas.ValidateIntake(content); err != nil {
		return fmt.Errorf("intake %s is invalid: %w", generateInput, err)
	}

	var in types.ProjectIntake
	if err := json.Unmarshal(content, &in); err != nil {
		return fmt.Errorf("failed to unmarshal intake JSON: %w", err)
	}

	b, err := brief.NewComposer().Compose(in)
	if err != nil {
		return fmt.Errorf("failed to compose brief: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal brief: %w", err)
	}
	if err := schemas.ValidateBrief(data); err != nil {
		return fmt.Errorf("composed brief failed schema validation: %w", err)
	}

	if generateFormat != "json" {
		format, err := rendering.ParseFormat(generateFormat)
		if err != nil {
			return err
		}
		doc, err := rendering.Render(b, format)
		if err != nil {
			return fmt.Errorf("failed to render brief: %w", err)
		}
		data = []byte(doc)
	}

	out := cmd.OutOrStdout()
	if generateOutput == "" {
		_, err := fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
		return err
	}

	if err := os.WriteFile(generateOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write brief: %w", err)
	}
	logger.Debug("brief written", zap.String("path", generateOutput), zap.String("brief_id", b.ID))

	if !generateQuiet {
		observability.NewPrinter(out).PrintBrief(b)
	}
	return nil
}
