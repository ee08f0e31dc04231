// Package database stores battle history in SQLite.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB is the battle history store: one row per session and an append-only
// event log per session.
type DB struct {
	conn *sqlx.DB
}

// historyDSN turns on foreign keys so deleting a session drops its events,
// and WAL so history can be read while a game is writing it.
func historyDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// New opens the history store at path, creating the file and its directory
// if needed, and brings the schema up to date.
func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sqlx.Connect("sqlite", historyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	// Single writer connection.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate history store: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
