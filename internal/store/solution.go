package store

import (
	"database/sql"
	"errors"
	"time"
)

// Solution is the solver outcome for a scan. Error is set instead of the
// move fields when solving failed.
type Solution struct {
	ScanID    string
	Raw       string
	Notation  string
	MoveCount int
	Error     string
	CreatedAt time.Time
}

// SolutionRepository stores solver outcomes.
type SolutionRepository struct {
	db *sql.DB
}

// Solutions returns the solution repository for this store.
func (s *Store) Solutions() *SolutionRepository {
	return &SolutionRepository{db: s.db}
}

// Save records sol, replacing any earlier outcome for the same scan.
func (r *SolutionRepository) Save(sol *Solution) error {
	sol.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO solutions (scan_id, raw, notation, move_count, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(scan_id) DO UPDATE SET
			raw = excluded.raw,
			notation = excluded.notation,
			move_count = excluded.move_count,
			error = excluded.error,
			created_at = excluded.created_at`,
		sol.ScanID, sol.Raw, sol.Notation, sol.MoveCount, sol.Error, sol.CreatedAt,
	)
	return err
}

// GetByScanID retrieves the solution recorded for a scan.
func (r *SolutionRepository) GetByScanID(scanID string) (*Solution, error) {
	sol := &Solution{}

	err := r.db.QueryRow(
		`SELECT scan_id, raw, notation, move_count, error, created_at
		 FROM solutions WHERE scan_id = ?`,
		scanID,
	).Scan(&sol.ScanID, &sol.Raw, &sol.Notation, &sol.MoveCount, &sol.Error, &sol.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sol, nil
}
