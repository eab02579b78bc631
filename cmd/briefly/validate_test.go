package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ComposedBrief(t *testing.T) {
	in := writeFile(t, "intake.json", validIntake)
	briefPath := filepath.Join(t.TempDir(), "brief.json")
	_, err := executeCommand(t, "generate", "--in", in, "--out", briefPath, "--quiet")
	require.NoError(t, err)

	out, err := executeCommand(t, "validate", "--in", briefPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidate_MissingSection(t *testing.T) {
	path := filepath.Join("..", "..", "internal", "schemas", "testdata", "brief_missing_section.json")

	_, err := executeCommand(t, "validate", "--in", path)
	require.Error(t, err)
}

func TestValidate_CustomSchema(t *testing.T) {
	schema := writeFile(t, "schema.json", `{
  "type": "object",
  "required": ["name"],
  "properties": {"name": {"type": "string"}}
}`)
	good := writeFile(t, "good.json", `{"name": "ok"}`)
	bad := writeFile(t, "bad.json", `{"other": 1}`)

	out, err := executeCommand(t, "validate", "--in", good, "--schema", schema)
	require.NoError(t, err)
	assert.Contains(t, out, "good.json is valid")

	_, err = executeCommand(t, "validate", "--in", bad, "--schema", schema)
	require.Error(t, err)
}
