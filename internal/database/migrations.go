package database

import "fmt"

type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in order; a store records the highest version
// it has seen.
var migrations = []migration{
	{
		version: 1,
		name:    "sessions_and_events",
		sql: `
			-- Sessions: one row per game played
			CREATE TABLE sessions (
				id TEXT PRIMARY KEY,
				scenario TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'playing',
				outcome TEXT NOT NULL DEFAULT 'undecided',
				turns INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				ended_at DATETIME
			);
			CREATE INDEX idx_sessions_status ON sessions(status);

			-- Battle events: append-only log for replay/debugging
			CREATE TABLE battle_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id TEXT NOT NULL,
				turn INTEGER NOT NULL,
				event_type TEXT NOT NULL,
				place TEXT NOT NULL DEFAULT '',
				insect TEXT NOT NULL DEFAULT '',
				message TEXT NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_battle_events_session ON battle_events(session_id);
		`,
	},
	{
		version: 2,
		name:    "recent_sessions_index",
		sql:     `CREATE INDEX idx_sessions_created ON sessions(created_at DESC);`,
	},
}

// SchemaVersion returns the newest migration applied to the store.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.conn.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	return version, err
}

// migrate applies every migration newer than the store's schema version.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.conn.Beginx()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
