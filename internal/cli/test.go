package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/abrigo/internal/catalog"
	"github.com/roach88/abrigo/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Config string // optional CUE catalog override
	Filter string // scenario filter (glob pattern on scenario name)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the adoption engine.

Each scenario file supplies the two adopter inventories, the animal
processing order, and the expected outcome (placements, output lines,
or a validation error).

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, malformed scenarios, etc.)

Examples:
  abrigo test ./scenarios
  abrigo test ./scenarios --filter "tie-*"
  abrigo test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE catalog config file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose name matches this glob")

	return cmd
}

func runTest(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	scenarios, err := harness.LoadScenarios(scenariosDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}

	result := TestResult{}
	for _, scenario := range scenarios {
		if opts.Filter != "" {
			match, globErr := filepath.Match(opts.Filter, scenario.Name)
			if globErr != nil {
				return WrapExitError(ExitCommandError, "invalid filter pattern", globErr)
			}
			if !match {
				continue
			}
		}

		formatter.VerboseLog("running scenario: %s", scenario.Name)
		run, runErr := runScenario(scenario, cat)
		result.Scenarios = append(result.Scenarios, run)
		if runErr != nil {
			return WrapExitError(ExitCommandError, "harness failure", runErr)
		}
		if run.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	result.Total = result.Passed + result.Failed

	if err := outputTestResult(formatter, result); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func runScenario(scenario *harness.Scenario, cat *catalog.Catalog) (ScenarioResult, error) {
	res, err := harness.Run(scenario, cat)
	if err != nil {
		return ScenarioResult{Name: scenario.Name, Pass: false, Errors: []string{err.Error()}}, err
	}
	return ScenarioResult{Name: scenario.Name, Pass: res.Pass, Errors: res.Errors}, nil
}

func outputTestResult(formatter *OutputFormatter, result TestResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, s := range result.Scenarios {
		status := "PASS"
		if !s.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s\n", status, s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(formatter.Writer, "      %s\n", e)
		}
	}
	fmt.Fprintf(formatter.Writer, "\n%d passed, %d failed, %d total\n",
		result.Passed, result.Failed, result.Total)
	return nil
}
