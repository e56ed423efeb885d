package store

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS saved_schedules (
			id             TEXT PRIMARY KEY,
			hash           TEXT NOT NULL,
			data           TEXT NOT NULL,
			last_access_dt DATETIME NOT NULL,
			created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_saved_schedules_hash ON saved_schedules(hash);
		CREATE INDEX IF NOT EXISTS idx_saved_schedules_access ON saved_schedules(last_access_dt);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating saved_schedules table: %w", err)
	}

	return nil
}
