package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/abrigo/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryRun is one listed run in the history payload.
type HistoryRun struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	AnimalOrder string `json:"animal_order"`
	Error       string `json:"error,omitempty"`
	Placed      int    `json:"placed"`
	Total       int    `json:"total"`
}

// HistoryDetail is the payload for a single-run lookup.
type HistoryDetail struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"created_at"`
	Adopter1Toys string   `json:"adopter1_toys"`
	Adopter2Toys string   `json:"adopter2_toys"`
	AnimalOrder  string   `json:"animal_order"`
	Error        string   `json:"error,omitempty"`
	Placements   []string `json:"placements,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Inspect recorded evaluation runs",
		Long: `List evaluation runs recorded with 'evaluate --db', newest first,
or show one run in full when a run ID is given.

Examples:
  abrigo history --db ./abrigo.db
  abrigo history --db ./abrigo.db --limit 10
  abrigo history 0190d3a8-5b1c-7c3e-9f00-6a1b2c3d4e5f --db ./abrigo.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(opts, args[0], cmd)
			}
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = no limit)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	runs := make([]HistoryRun, 0, len(summaries))
	for _, s := range summaries {
		runs = append(runs, HistoryRun{
			ID:          s.ID,
			CreatedAt:   s.CreatedAt,
			AnimalOrder: s.AnimalOrder,
			Error:       s.ErrorLabel,
			Placed:      s.Placed,
			Total:       s.Total,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded runs")
		return nil
	}
	for _, r := range runs {
		outcome := fmt.Sprintf("%d/%d placed", r.Placed, r.Total)
		if r.Error != "" {
			outcome = r.Error
		}
		fmt.Fprintf(formatter.Writer, "%s  %s  [%s]  %s\n", r.ID, r.CreatedAt, r.AnimalOrder, outcome)
	}
	return nil
}

func runHistoryShow(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetRun(cmd.Context(), runID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			if outErr := formatter.Error(ErrCodeNotFound, err.Error(), nil); outErr != nil {
				return WrapExitError(ExitCommandError, "failed to write output", outErr)
			}
			return NewExitError(ExitCommandError, err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	detail := HistoryDetail{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		Adopter1Toys: rec.Adopter1Toys,
		Adopter2Toys: rec.Adopter2Toys,
		AnimalOrder:  rec.AnimalOrder,
		Error:        rec.ErrorLabel,
	}
	for _, p := range rec.Placements {
		detail.Placements = append(detail.Placements, fmt.Sprintf("%s - %s", p.Animal, p.Destination))
	}

	if formatter.Format == "json" {
		return formatter.Success(detail)
	}

	fmt.Fprintf(formatter.Writer, "run:      %s\n", detail.ID)
	fmt.Fprintf(formatter.Writer, "created:  %s\n", detail.CreatedAt)
	fmt.Fprintf(formatter.Writer, "adopter1: %s\n", detail.Adopter1Toys)
	fmt.Fprintf(formatter.Writer, "adopter2: %s\n", detail.Adopter2Toys)
	fmt.Fprintf(formatter.Writer, "order:    %s\n", detail.AnimalOrder)
	if detail.Error != "" {
		fmt.Fprintf(formatter.Writer, "error:    %s\n", detail.Error)
		return nil
	}
	for _, line := range detail.Placements {
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

// openHistory opens the run-history database for reading.
func openHistory(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		slog.Error("failed to open database", "path", path, "error", err)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
