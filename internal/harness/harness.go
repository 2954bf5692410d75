// Package harness provides a conformance testing framework for the adoption
// engine.
//
// Scenarios are YAML files carrying the three raw inputs and the expected
// outcome (placements, rendered lines, or a validation error). The harness
// runs each scenario against the real engine and reports detailed
// mismatches; golden.go adds goldie-based golden file comparison of the
// full result snapshot.
//
// The harness drives the actual engine - nothing is mocked or manufactured.
// Every scenario runs against a fresh, immutable catalog, so scenarios are
// independent and order-insensitive.
package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/abrigo/internal/catalog"
	"github.com/roach88/abrigo/internal/engine"
)

// Result holds the outcome of one scenario execution.
type Result struct {
	// Pass is true when the engine outcome matched every expectation.
	Pass bool

	// Errors lists expectation mismatches, one message per failure.
	Errors []string

	// EngineResult is the successful engine output, nil on validation error.
	EngineResult *engine.Result

	// EngineError is the validation error, nil on success.
	EngineError *engine.ValidationError
}

// Run executes a scenario against the given catalog and checks its
// expectations. A nil catalog means the compiled-in default.
//
// The returned error covers harness-level faults only (e.g. an unexpected
// non-validation error); expectation mismatches are reported via
// Result.Pass and Result.Errors.
func Run(scenario *Scenario, cat *catalog.Catalog) (*Result, error) {
	if cat == nil {
		cat = catalog.Default()
	}

	result := &Result{Pass: true}

	res, err := engine.Evaluate(cat, scenario.Adopter1, scenario.Adopter2, scenario.Order)
	if err != nil {
		var verr *engine.ValidationError
		if !errors.As(err, &verr) {
			return nil, fmt.Errorf("engine returned non-validation error: %w", err)
		}
		result.EngineError = verr
		checkError(scenario, verr, result)
		return result, nil
	}

	result.EngineResult = res
	checkSuccess(scenario, res, result)
	return result, nil
}

// checkError validates expectations for a run rejected by input validation.
func checkError(scenario *Scenario, verr *engine.ValidationError, result *Result) {
	if scenario.Expect.Error == "" {
		result.fail("expected success, got error %q", verr.Label())
		return
	}
	if verr.Label() != scenario.Expect.Error {
		result.fail("expected error %q, got %q", scenario.Expect.Error, verr.Label())
	}
}

// checkSuccess validates placements and rendered lines for a successful run.
func checkSuccess(scenario *Scenario, res *engine.Result, result *Result) {
	if scenario.Expect.Error != "" {
		result.fail("expected error %q, got success", scenario.Expect.Error)
		return
	}

	if scenario.Expect.Placements != nil {
		if len(scenario.Expect.Placements) != len(res.Placements) {
			result.fail("expected %d placements, got %d",
				len(scenario.Expect.Placements), len(res.Placements))
		}
		for animal, want := range scenario.Expect.Placements {
			got, ok := res.Placements[animal]
			if !ok {
				result.fail("animal %q missing from placements", animal)
				continue
			}
			if string(got) != want {
				result.fail("animal %q: expected %q, got %q", animal, want, got)
			}
		}
	}

	if scenario.Expect.Lines != nil {
		if len(scenario.Expect.Lines) != len(res.Lines) {
			result.fail("expected %d output lines, got %d",
				len(scenario.Expect.Lines), len(res.Lines))
			return
		}
		for i, want := range scenario.Expect.Lines {
			if res.Lines[i] != want {
				result.fail("line %d: expected %q, got %q", i, want, res.Lines[i])
			}
		}
	}
}

// fail records an expectation mismatch.
func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
