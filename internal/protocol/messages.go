// Package protocol defines the network message types for client-server communication.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Command message types, sent by the client.
const (
	TypeDeploy  MessageType = "deploy"
	TypeRemove  MessageType = "remove"
	TypeBoost   MessageType = "boost"
	TypeEndTurn MessageType = "end_turn"
	TypeHistory MessageType = "history"
)

// Game flow message types, sent by the server.
const (
	TypeGameState    MessageType = "state"
	TypeActionResult MessageType = "action_result"
	TypeGameEnded    MessageType = "game_ended"
	TypeGameHistory  MessageType = "game_history"
)

// System message types
const (
	TypeWelcome MessageType = "welcome"
	TypeError   MessageType = "error"
	TypePing    MessageType = "ping"
	TypePong    MessageType = "pong"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeUnknownType           ErrorCode = "unknown_type"
	ErrCodeInsufficientResources ErrorCode = "insufficient_resources"
	ErrCodeOccupied              ErrorCode = "occupied"
	ErrCodeInvalidLocation       ErrorCode = "invalid_location"
	ErrCodeNoSuchBoost           ErrorCode = "no_such_boost"
	ErrCodeNoDefender            ErrorCode = "no_defender"
	ErrCodeInvalidMessage        ErrorCode = "invalid_message"
	ErrCodeRateLimited           ErrorCode = "rate_limited"
	ErrCodeGameOver              ErrorCode = "game_over"
	ErrCodeInternalError         ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
