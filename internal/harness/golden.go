package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/abrigo/internal/engine"
)

// ResultSnapshot captures the complete outcome of a scenario execution for
// golden file comparison. JSON serialization is deterministic: map keys are
// sorted by encoding/json and the trace preserves decision order.
type ResultSnapshot struct {
	ScenarioName string                        `json:"scenario_name"`
	Error        string                        `json:"error,omitempty"`
	Lines        []string                      `json:"lines,omitempty"`
	Placements   map[string]engine.Destination `json:"placements,omitempty"`
	Trace        []engine.Decision             `json:"trace,omitempty"`
}

// RunWithGolden executes a scenario and compares the result snapshot
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected engine output; this
// complements the scenario's own expect clause by pinning the full trace.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario, nil)
	if err != nil {
		return err
	}

	snapshot := ResultSnapshot{ScenarioName: scenario.Name}
	if result.EngineError != nil {
		snapshot.Error = result.EngineError.Label()
	} else {
		snapshot.Lines = result.EngineResult.Lines
		snapshot.Placements = result.EngineResult.Placements
		snapshot.Trace = result.EngineResult.Trace
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
