package protocol

import "ants-vs-bees/internal/game"

// ==================== Command Payloads ====================

// DeployPayload places a new defender.
type DeployPayload struct {
	Type string `json:"type"` // grower, thrower, eater, scuba, guard
	At   string `json:"at"`   // "row,col"
}

// RemovePayload clears the top defender from a cell.
type RemovePayload struct {
	At string `json:"at"`
}

// BoostPayload applies a discovered boost to a defender.
type BoostPayload struct {
	Name string `json:"name"`
	At   string `json:"at"`
}

// EndTurnPayload advances the game by one turn.
type EndTurnPayload struct {
	// No additional fields needed
}

// HistoryPayload asks for battle events recorded after AfterID.
type HistoryPayload struct {
	AfterID int64 `json:"after_id,omitempty"`
}

// ==================== Result Payloads ====================

// ActionResultPayload is the response to every command.
type ActionResultPayload struct {
	Success bool      `json:"success"`
	Action  string    `json:"action"`
	Code    ErrorCode `json:"code,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// GameStatePayload carries the full board after each command.
type GameStatePayload struct {
	State game.Snapshot `json:"state"`
}

// GameEndedPayload is sent once the game is decided.
type GameEndedPayload struct {
	GameID  string `json:"game_id"`
	Outcome string `json:"outcome"` // won, lost
	Turns   int    `json:"turns"`
}

// HistoryEntry is one recorded battle event.
type HistoryEntry struct {
	ID      int64  `json:"id"`
	Turn    int    `json:"turn"`
	Type    string `json:"type"`
	Place   string `json:"place,omitempty"`
	Insect  string `json:"insect,omitempty"`
	Message string `json:"message,omitempty"`
}

// GameHistoryPayload answers a history request.
type GameHistoryPayload struct {
	GameID string         `json:"game_id"`
	Events []HistoryEntry `json:"events"`
}

// ==================== System Payloads ====================

// WelcomePayload is sent on connection.
type WelcomePayload struct {
	ServerVersion string   `json:"server_version"`
	GameID        string   `json:"game_id"`
	Scenario      string   `json:"scenario"`
	Kinds         []string `json:"kinds"`
}
