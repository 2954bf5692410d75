package store

import (
	"context"
	"fmt"

	"github.com/roach88/abrigo/internal/engine"
)

// RunRecord is one recorded engine evaluation.
type RunRecord struct {
	ID           string
	CreatedAt    string // RFC 3339 UTC, assigned by the database
	Adopter1Toys string // raw input as given
	Adopter2Toys string
	AnimalOrder  string

	// ErrorCode and ErrorLabel are empty on success.
	ErrorCode  string
	ErrorLabel string

	// Placements holds "<animal> - <destino>" outcomes in processing order.
	// Empty for failed runs.
	Placements []PlacementRow
}

// PlacementRow is one animal's recorded outcome.
type PlacementRow struct {
	Position    int
	Animal      string
	Destination engine.Destination
}

// Failed reports whether the recorded run ended in a validation error.
func (r *RunRecord) Failed() bool {
	return r.ErrorCode != ""
}

// RecordSuccess stores a successful evaluation with its placements.
// The placement rows are written in processing-order positions, inside a
// single transaction so a run is never half-recorded.
func (s *Store) RecordSuccess(ctx context.Context, id, toys1, toys2, order string, res *engine.Result, processing []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, adopter1_toys, adopter2_toys, animal_order)
		VALUES (?, ?, ?, ?)
	`, id, toys1, toys2, order)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for pos, animal := range processing {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO placements (run_id, position, animal, destination)
			VALUES (?, ?, ?, ?)
		`, id, pos, animal, string(res.Placements[animal]))
		if err != nil {
			return fmt.Errorf("record placement %q: %w", animal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordFailure stores an evaluation rejected by input validation.
func (s *Store) RecordFailure(ctx context.Context, id, toys1, toys2, order string, verr *engine.ValidationError) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, adopter1_toys, adopter2_toys, animal_order, error_code, error_label)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, toys1, toys2, order, string(verr.Code), verr.Label())
	if err != nil {
		return fmt.Errorf("record failed run: %w", err)
	}
	return nil
}
