package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id TEXT PRIMARY KEY,
			cube_string TEXT NOT NULL DEFAULT '',
			translated TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK(status IN ('scanning', 'scanned', 'solved', 'failed')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// One row per confirmed face; sequence is the bind order.
		`CREATE TABLE IF NOT EXISTS scan_faces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
			slot TEXT NOT NULL,
			colors TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(scan_id, slot)
		)`,

		`CREATE TABLE IF NOT EXISTS solutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT NOT NULL UNIQUE REFERENCES scans(id) ON DELETE CASCADE,
			raw TEXT NOT NULL DEFAULT '',
			notation TEXT NOT NULL DEFAULT '',
			move_count INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_scan_faces_scan_id ON scan_faces(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
