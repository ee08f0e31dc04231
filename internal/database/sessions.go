package database

import (
	"database/sql"
	"errors"
	"time"
)

// SessionStatus represents the current status of a session.
type SessionStatus string

const (
	SessionPlaying  SessionStatus = "playing"
	SessionFinished SessionStatus = "finished"
)

// Session is one recorded game.
type Session struct {
	ID        string        `db:"id" json:"id"`
	Scenario  string        `db:"scenario" json:"scenario"`
	Status    SessionStatus `db:"status" json:"status"`
	Outcome   string        `db:"outcome" json:"outcome"`
	Turns     int           `db:"turns" json:"turns"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	EndedAt   *time.Time    `db:"ended_at" json:"ended_at,omitempty"`
}

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// CreateSession records the start of a game.
func (db *DB) CreateSession(id, scenario string) (*Session, error) {
	now := time.Now()
	_, err := db.conn.Exec(`
		INSERT INTO sessions (id, scenario, status, created_at)
		VALUES (?, ?, ?, ?)
	`, id, scenario, SessionPlaying, now)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Scenario:  scenario,
		Status:    SessionPlaying,
		Outcome:   "undecided",
		CreatedAt: now,
	}, nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(id string) (*Session, error) {
	var s Session
	err := db.conn.Get(&s, `
		SELECT id, scenario, status, outcome, turns, created_at, ended_at
		FROM sessions WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FinishSession marks a session as ended with its outcome.
func (db *DB) FinishSession(id, outcome string, turns int) error {
	res, err := db.conn.Exec(`
		UPDATE sessions SET status = ?, outcome = ?, turns = ?, ended_at = ?
		WHERE id = ?
	`, SessionFinished, outcome, turns, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RecentSessions returns the newest sessions first.
func (db *DB) RecentSessions(limit int) ([]Session, error) {
	var sessions []Session
	err := db.conn.Select(&sessions, `
		SELECT id, scenario, status, outcome, turns, created_at, ended_at
		FROM sessions ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	return sessions, err
}

// DeleteSession removes a session along with its battle events.
func (db *DB) DeleteSession(id string) error {
	res, err := db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
