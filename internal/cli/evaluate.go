package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/abrigo/internal/catalog"
	"github.com/roach88/abrigo/internal/engine"
	"github.com/roach88/abrigo/internal/store"
)

// EvaluateOptions holds flags for the evaluate command.
type EvaluateOptions struct {
	*RootOptions
	Database string // optional run-history database
	Config   string // optional CUE catalog override

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator store.RunIDGenerator
}

// EvaluateData is the success payload for the evaluate command.
type EvaluateData struct {
	Lines      []string                      `json:"lines"`
	Placements map[string]engine.Destination `json:"placements"`
	Trace      []engine.Decision             `json:"trace,omitempty"`
	RunID      string                        `json:"run_id,omitempty"`
}

// NewEvaluateCommand creates the evaluate command.
func NewEvaluateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvaluateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "evaluate <adopter1-toys> <adopter2-toys> <animal-order>",
		Short: "Decide adoptions for two adopters",
		Long: `Run the adoption engine for two adopters and an animal processing order.

Each argument is a comma-separated list; whitespace around tokens is
ignored. The result is one line per animal, sorted by animal name.

Exit codes:
  0 - Decision produced
  1 - Input rejected by validation (invalid toy or animal)
  2 - Command error (bad config, database failure, etc.)

Examples:
  abrigo evaluate "RATO,BOLA" "RATO,NOVELO" "Rex,Fofo"
  abrigo evaluate "SKATE,RATO,BOLA" "LASER" "Rex,Loco" --format json
  abrigo evaluate "RATO,BOLA" "" "Rex" --db ./abrigo.db`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE catalog config file (default: built-in catalog)")

	return cmd
}

func runEvaluate(opts *EvaluateOptions, toys1, toys2, order string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

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

	res, evalErr := engine.Evaluate(cat, toys1, toys2, order)

	runID := ""
	if opts.Database != "" {
		runID, err = recordRun(opts, toys1, toys2, order, res, evalErr)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		slog.Debug("run recorded", "id", runID, "db", opts.Database)
	}

	if evalErr != nil {
		var verr *engine.ValidationError
		if !errors.As(evalErr, &verr) {
			return WrapExitError(ExitCommandError, "evaluation failed", evalErr)
		}
		if err := formatter.Error(string(verr.Code), verr.Label(), verr.Message); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		return NewExitError(ExitFailure, verr.Label())
	}

	return outputEvaluateSuccess(formatter, res, runID)
}

func outputEvaluateSuccess(formatter *OutputFormatter, res *engine.Result, runID string) error {
	if formatter.Format == "json" {
		return formatter.Success(EvaluateData{
			Lines:      res.Lines,
			Placements: res.Placements,
			Trace:      res.Trace,
			RunID:      runID,
		})
	}

	for _, line := range res.Lines {
		fmt.Fprintln(formatter.Writer, line)
	}
	if formatter.Verbose {
		for _, d := range res.Trace {
			formatter.VerboseLog("decision: %s -> %s (%s)", d.Animal, d.Destination, d.Reason)
		}
		if runID != "" {
			formatter.VerboseLog("recorded as run %s", runID)
		}
	}
	return nil
}

// recordRun persists the evaluation outcome and returns the run ID.
func recordRun(opts *EvaluateOptions, toys1, toys2, order string, res *engine.Result, evalErr error) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	gen := opts.IDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}
	id := gen.Generate()

	ctx := context.Background()
	if evalErr != nil {
		var verr *engine.ValidationError
		if !errors.As(evalErr, &verr) {
			return "", evalErr
		}
		if err := st.RecordFailure(ctx, id, toys1, toys2, order, verr); err != nil {
			return "", err
		}
		return id, nil
	}

	if err := st.RecordSuccess(ctx, id, toys1, toys2, order, res, engine.Tokenize(order)); err != nil {
		return "", err
	}
	return id, nil
}

// loadCatalog returns the catalog from a CUE config file, or the compiled-in
// default when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// configureLogging sets the process-wide slog handler.
// Logs go to stderr so they never corrupt JSON output on stdout.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
