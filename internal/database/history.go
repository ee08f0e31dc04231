package database

import (
	"log/slog"
	"time"

	"ants-vs-bees/internal/game"
)

// HistoryEvent represents a single battle event in the history log.
type HistoryEvent struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	Turn      int       `db:"turn"`
	EventType string    `db:"event_type"`
	Place     string    `db:"place"`
	Insect    string    `db:"insect"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// AddHistoryEvent appends a battle event to a session's history.
func (db *DB) AddHistoryEvent(sessionID string, e game.Event) error {
	_, err := db.conn.Exec(`
		INSERT INTO battle_events (session_id, turn, event_type, place, insect, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, e.Turn, string(e.Type), e.Place, e.Insect, e.Message, time.Now())
	return err
}

// GetHistory retrieves all events for a session, ordered chronologically.
func (db *DB) GetHistory(sessionID string) ([]HistoryEvent, error) {
	var events []HistoryEvent
	err := db.conn.Select(&events, `
		SELECT id, session_id, turn, event_type, place, insect, message, created_at
		FROM battle_events
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	return events, err
}

// GetHistorySince retrieves events after a given ID (for incremental updates).
func (db *DB) GetHistorySince(sessionID string, afterID int64) ([]HistoryEvent, error) {
	var events []HistoryEvent
	err := db.conn.Select(&events, `
		SELECT id, session_id, turn, event_type, place, insect, message, created_at
		FROM battle_events
		WHERE session_id = ? AND id > ?
		ORDER BY id ASC
	`, sessionID, afterID)
	return events, err
}

// ClearHistory deletes all history for a session.
func (db *DB) ClearHistory(sessionID string) error {
	_, err := db.conn.Exec(`DELETE FROM battle_events WHERE session_id = ?`, sessionID)
	return err
}

// Recorder returns a game.Recorder that writes to the session's history.
// Write failures are logged, not returned, so a full disk never stalls a turn.
func (db *DB) Recorder(sessionID string) game.Recorder {
	return game.RecorderFunc(func(e game.Event) {
		if err := db.AddHistoryEvent(sessionID, e); err != nil {
			slog.Warn("failed to record battle event", "session", sessionID, "type", e.Type, "error", err)
		}
	})
}
