package store

import (
	"database/sql"
	"time"
)

// Face is one confirmed face of a scan.
type Face struct {
	ScanID    string
	Slot      string
	Colors    string
	Sequence  int
	CreatedAt time.Time
}

// FaceRepository stores confirmed faces.
type FaceRepository struct {
	db *sql.DB
}

// Faces returns the face repository for this store.
func (s *Store) Faces() *FaceRepository {
	return &FaceRepository{db: s.db}
}

// Add records f. A second face for the same slot of a scan is rejected by
// the schema.
func (r *FaceRepository) Add(f *Face) error {
	f.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO scan_faces (scan_id, slot, colors, sequence, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		f.ScanID, f.Slot, f.Colors, f.Sequence, f.CreatedAt,
	)
	return err
}

// ListByScan returns the faces of a scan in the order they were confirmed.
func (r *FaceRepository) ListByScan(scanID string) ([]Face, error) {
	rows, err := r.db.Query(
		`SELECT scan_id, slot, colors, sequence, created_at
		 FROM scan_faces WHERE scan_id = ? ORDER BY sequence`,
		scanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faces []Face
	for rows.Next() {
		var f Face
		if err := rows.Scan(&f.ScanID, &f.Slot, &f.Colors, &f.Sequence, &f.CreatedAt); err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}

	return faces, rows.Err()
}
