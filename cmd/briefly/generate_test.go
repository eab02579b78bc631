package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/briefly/internal/schemas"
	"github.com/jonathan/briefly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Stdout(t *testing.T) {
	in := writeFile(t, "intake.json", validIntake)

	out, err := executeCommand(t, "generate", "--in", in)
	require.NoError(t, err)

	var b types.Brief
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "Logo Design Brief for Acme", b.Title)
	assert.Equal(t, "Logo Design", b.Category)
	assert.Equal(t, 75000.0, b.Sections.Budget.TotalBudget)
	assert.NoError(t, schemas.ValidateBrief([]byte(out)))
}

func TestGenerate_ToFile(t *testing.T) {
	in := writeFile(t, "intake.json", validIntake)
	outPath := filepath.Join(t.TempDir(), "brief.json")

	out, err := executeCommand(t, "generate", "--in", in, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "LOGO DESIGN BRIEF FOR ACME")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateBrief(data))
}

func TestGenerate_Quiet(t *testing.T) {
	in := writeFile(t, "intake.json", validIntake)
	outPath := filepath.Join(t.TempDir(), "brief.json")

	out, err := executeCommand(t, "generate", "-i", in, "-o", outPath, "-q")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, outPath)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "missing in flag",
			args:    func(*testing.T) []string { return []string{"generate"} },
			wantErr: `required flag(s) "in" not set`,
		},
		{
			name: "missing file",
			args: func(t *testing.T) []string {
				return []string{"generate", "--in", filepath.Join(t.TempDir(), "nope.json")}
			},
			wantErr: "failed to read intake file",
		},
		{
			name: "missing client name",
			args: func(t *testing.T) []string {
				return []string{"generate", "--in", writeFile(t, "intake.json", `{"client_name":"","project_type":"Logo Design"}`)}
			},
			wantErr: "is invalid",
		},
		{
			name: "unknown field",
			args: func(t *testing.T) []string {
				return []string{"generate", "--in", writeFile(t, "intake.json", `{"client_name":"A","project_type":"B","colour":"red"}`)}
			},
			wantErr: "is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerate_Formats(t *testing.T) {
	in := writeFile(t, "intake.json", validIntake)

	out, err := executeCommand(t, "generate", "--in", in, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Logo Design Brief for Acme")
	assert.Contains(t, out, "₦75,000")

	texPath := filepath.Join(t.TempDir(), "brief.tex")
	_, err = executeCommand(t, "generate", "--in", in, "--format", "latex", "--out", texPath, "--quiet")
	require.NoError(t, err)
	data, err := os.ReadFile(texPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\documentclass`)

	_, err = executeCommand(t, "generate", "--in", in, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
