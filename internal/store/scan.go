package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("store: not found")

// ScanStatus is the lifecycle state of a stored scan.
type ScanStatus string

const (
	ScanStatusScanning ScanStatus = "scanning"
	ScanStatusScanned  ScanStatus = "scanned"
	ScanStatusSolved   ScanStatus = "solved"
	ScanStatusFailed   ScanStatus = "failed"
)

// Scan is one scanning run.
type Scan struct {
	ID string
	// CubeString is the 54-letter scan-palette string, empty until complete.
	CubeString string
	// Translated is CubeString in solver letters.
	Translated string
	Status     ScanStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScanRepository provides CRUD operations for scans.
type ScanRepository struct {
	db *sql.DB
}

// Scans returns the scan repository for this store.
func (s *Store) Scans() *ScanRepository {
	return &ScanRepository{db: s.db}
}

// Create inserts sc, assigning a new ID when it has none.
func (r *ScanRepository) Create(sc *Scan) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.Status == "" {
		sc.Status = ScanStatusScanning
	}
	now := time.Now()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO scans (id, cube_string, translated, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.CubeString, sc.Translated, string(sc.Status), sc.CreatedAt, sc.UpdatedAt,
	)
	return err
}

// GetByID retrieves a scan by its ID.
func (r *ScanRepository) GetByID(id string) (*Scan, error) {
	sc := &Scan{}
	var status string

	err := r.db.QueryRow(
		`SELECT id, cube_string, translated, status, created_at, updated_at
		 FROM scans WHERE id = ?`,
		id,
	).Scan(&sc.ID, &sc.CubeString, &sc.Translated, &status, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sc.Status = ScanStatus(status)
	return sc, nil
}

// List returns the most recent scans first. A limit of 0 or less returns
// every scan.
func (r *ScanRepository) List(limit int) ([]*Scan, error) {
	query := `SELECT id, cube_string, translated, status, created_at, updated_at
		 FROM scans ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		sc := &Scan{}
		var status string
		if err := rows.Scan(&sc.ID, &sc.CubeString, &sc.Translated, &status, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		sc.Status = ScanStatus(status)
		scans = append(scans, sc)
	}

	return scans, rows.Err()
}

// Update writes the cube strings and status of sc.
func (r *ScanRepository) Update(sc *Scan) error {
	sc.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE scans SET cube_string = ?, translated = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		sc.CubeString, sc.Translated, string(sc.Status), sc.UpdatedAt, sc.ID,
	)
	if err != nil {
		return err
	}

	return requireRow(result)
}

// Delete removes a scan with its faces and solution.
func (r *ScanRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
