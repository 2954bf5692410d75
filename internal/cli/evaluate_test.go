package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/abrigo/internal/store"
)

// execute runs the root command with args and returns stdout, stderr, and
// the execution error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEvaluate_TextOutput(t *testing.T) {
	out, _, err := execute(t, "evaluate", "RATO,BOLA", "RATO,NOVELO", "Rex,Fofo")
	require.NoError(t, err)
	assert.Equal(t, "Fofo - abrigo\nRex - pessoa 1\n", out)
}

func TestEvaluate_JSONOutput(t *testing.T) {
	out, _, err := execute(t, "evaluate", "RATO,BOLA", "RATO,NOVELO", "Rex,Fofo", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Fofo - abrigo", "Rex - pessoa 1"}, data["lines"])
}

func TestEvaluate_ValidationErrorExitCode(t *testing.T) {
	out, _, err := execute(t, "evaluate", "RATO,RATO", "", "Rex")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Brinquedo inválido")
}

func TestEvaluate_ValidationErrorJSON(t *testing.T) {
	out, _, err := execute(t, "evaluate", "RATO,BOLA", "", "Lulu", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_ANIMAL", resp.Error.Code)
	assert.Equal(t, "Animal inválido", resp.Error.Message)
}

func TestEvaluate_WrongArgCount(t *testing.T) {
	_, _, err := execute(t, "evaluate", "RATO,BOLA")
	require.Error(t, err)
}

func TestEvaluate_RecordsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abrigo.db")

	_, _, err := execute(t, "evaluate", "RATO,BOLA", "RATO,NOVELO", "Rex,Fofo", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Rex,Fofo", runs[0].AnimalOrder)
	assert.Equal(t, 1, runs[0].Placed)
	assert.Equal(t, 2, runs[0].Total)
}

func TestEvaluate_RecordsFailedRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abrigo.db")

	_, _, err := execute(t, "evaluate", "RATO,RATO", "", "Rex", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Brinquedo inválido", runs[0].ErrorLabel)
}

func TestEvaluate_CustomCatalogConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "shelter.cue")
	writeFile(t, configPath, `
toys: ["OSSO"]
animal: {
	Thor: { species: "cão", toys: ["OSSO"] }
}
`)

	out, _, err := execute(t, "evaluate", "OSSO", "", "Thor", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "Thor - pessoa 1\n", out)
}

func TestEvaluate_BadConfigIsCommandError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.cue")
	writeFile(t, configPath, `toys: [`)

	_, _, err := execute(t, "evaluate", "RATO", "", "Rex", "--config", configPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
