package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "abrigo.db")

	_, _, err := execute(t, "evaluate", "RATO,BOLA", "RATO,NOVELO", "Rex,Fofo", "--db", dbPath)
	require.NoError(t, err)
	_, _, err = execute(t, "evaluate", "RATO,RATO", "", "Rex", "--db", dbPath)
	require.Error(t, err) // validation failure, still recorded

	return dbPath
}

func TestHistory_List(t *testing.T) {
	dbPath := seedHistory(t)

	out, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Rex,Fofo")
	assert.Contains(t, out, "Brinquedo inválido")
	assert.Contains(t, out, "1/2 placed")
}

func TestHistory_ListJSON(t *testing.T) {
	dbPath := seedHistory(t)

	out, _, err := execute(t, "history", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	runs, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, runs, 2)

	// UUIDv7 IDs sort newest first, so the failed run leads.
	newest, ok := runs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Brinquedo inválido", newest["error"])
}

func TestHistory_Show(t *testing.T) {
	dbPath := seedHistory(t)

	// Discover the successful run's ID through the JSON listing.
	out, _, err := execute(t, "history", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	runs := resp.Data.([]any)
	oldest := runs[len(runs)-1].(map[string]any)
	runID := oldest["id"].(string)

	detail, _, err := execute(t, "history", runID, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, detail, "adopter1: RATO,BOLA")
	assert.Contains(t, detail, "Rex - pessoa 1")
	assert.Contains(t, detail, "Fofo - abrigo")
}

func TestHistory_ShowUnknownRun(t *testing.T) {
	dbPath := seedHistory(t)

	_, _, err := execute(t, "history", "no-such-run", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	out, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded runs")
}

func TestHistory_RequiresDatabaseFlag(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
}
