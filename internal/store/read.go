package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/abrigo/internal/engine"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of a history listing.
type RunSummary struct {
	ID          string
	CreatedAt   string
	AnimalOrder string
	ErrorLabel  string // empty on success
	Placed      int    // animals placed with an adopter
	Total       int    // animals processed
}

// ListRuns returns the most recent runs, newest first.
// limit <= 0 means no limit. Returns an empty slice (not nil) when the
// history is empty.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
		SELECT r.id, r.created_at, r.animal_order,
		       COALESCE(r.error_label, ''),
		       COALESCE(SUM(CASE WHEN p.destination != 'abrigo' THEN 1 ELSE 0 END), 0),
		       COUNT(p.animal)
		FROM runs r
		LEFT JOIN placements p ON p.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		if err := rows.Scan(&sum.ID, &sum.CreatedAt, &sum.AnimalOrder,
			&sum.ErrorLabel, &sum.Placed, &sum.Total); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return summaries, nil
}

// GetRun returns one recorded run with its placements in processing order.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	rec := &RunRecord{}
	var errCode, errLabel sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, adopter1_toys, adopter2_toys, animal_order, error_code, error_label
		FROM runs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.CreatedAt, &rec.Adopter1Toys, &rec.Adopter2Toys,
		&rec.AnimalOrder, &errCode, &errLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	rec.ErrorCode = errCode.String
	rec.ErrorLabel = errLabel.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, animal, destination
		FROM placements
		WHERE run_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row PlacementRow
		var dest string
		if err := rows.Scan(&row.Position, &row.Animal, &dest); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		row.Destination = engine.Destination(dest)
		rec.Placements = append(rec.Placements, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}

	return rec, nil
}
