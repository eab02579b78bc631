package main

import (
	"fmt"
	"os"

	"github.com/jonathan/briefly/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a brief JSON file against the brief schema",
	Long:  "Checks that a brief JSON file carries every section and field. A custom schema file may be supplied instead of the built-in one.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to brief JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (default: built-in brief schema)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateSchema != "" {
		if err := schemas.ValidateJSON(validateSchema, validateInput); err != nil {
			return err
		}
	} else {
		content, err := os.ReadFile(validateInput)
		if err != nil {
			return fmt.Errorf("failed to read brief file: %w", err)
		}
		if err := schemas.ValidateBrief(content); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", validateInput)
	return err
}
