package server

import (
	"errors"

	"ants-vs-bees/internal/game"
	"ants-vs-bees/internal/protocol"
)

var (
	errUnknownMessage = errors.New("unknown message type")
	errInvalidPayload = errors.New("invalid payload")
	errRateLimited    = errors.New("too many messages")
	errGameOver       = errors.New("game is over")
)

// errorCode maps an error to the code sent to clients.
func errorCode(err error) protocol.ErrorCode {
	switch {
	case errors.Is(err, game.ErrUnknownType):
		return protocol.ErrCodeUnknownType
	case errors.Is(err, game.ErrInsufficientResources):
		return protocol.ErrCodeInsufficientResources
	case errors.Is(err, game.ErrOccupied):
		return protocol.ErrCodeOccupied
	case errors.Is(err, game.ErrInvalidLocation):
		return protocol.ErrCodeInvalidLocation
	case errors.Is(err, game.ErrNoSuchBoost):
		return protocol.ErrCodeNoSuchBoost
	case errors.Is(err, game.ErrNoDefender):
		return protocol.ErrCodeNoDefender
	case errors.Is(err, errInvalidPayload), errors.Is(err, errUnknownMessage):
		return protocol.ErrCodeInvalidMessage
	case errors.Is(err, errRateLimited):
		return protocol.ErrCodeRateLimited
	case errors.Is(err, errGameOver):
		return protocol.ErrCodeGameOver
	default:
		return protocol.ErrCodeInternalError
	}
}

// Handlers processes incoming messages.
type Handlers struct {
	server *Server
}

// NewHandlers creates a new handler set.
func NewHandlers(server *Server) *Handlers {
	return &Handlers{server: server}
}

// Handle routes a message to the appropriate handler.
func (h *Handlers) Handle(client *Client, msg *protocol.Message) {
	var err error

	switch msg.Type {
	case protocol.TypeDeploy:
		err = h.handleDeploy(client, msg)
	case protocol.TypeRemove:
		err = h.handleRemove(client, msg)
	case protocol.TypeBoost:
		err = h.handleBoost(client, msg)
	case protocol.TypeEndTurn:
		err = h.handleEndTurn(client, msg)
	case protocol.TypeHistory:
		err = h.handleHistory(client, msg)
	case protocol.TypePing:
		client.SendPayload(protocol.TypePong, msg.ID, struct{}{})
	default:
		err = errUnknownMessage
	}

	if err != nil {
		client.sendError(msg.ID, err)
	}
}

func (h *Handlers) handleDeploy(client *Client, msg *protocol.Message) error {
	var payload protocol.DeployPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return errInvalidPayload
	}
	if client.ended {
		return errGameOver
	}
	h.respond(client, msg, client.Game.Deploy(payload.Type, payload.At))
	return nil
}

func (h *Handlers) handleRemove(client *Client, msg *protocol.Message) error {
	var payload protocol.RemovePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return errInvalidPayload
	}
	if client.ended {
		return errGameOver
	}
	h.respond(client, msg, client.Game.Remove(payload.At))
	return nil
}

func (h *Handlers) handleBoost(client *Client, msg *protocol.Message) error {
	var payload protocol.BoostPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return errInvalidPayload
	}
	if client.ended {
		return errGameOver
	}
	h.respond(client, msg, client.Game.Boost(payload.Name, payload.At))
	return nil
}

func (h *Handlers) handleEndTurn(client *Client, msg *protocol.Message) error {
	if client.ended {
		return errGameOver
	}
	client.Game.EndTurn()
	h.respond(client, msg, nil)

	outcome := client.Game.Outcome()
	if outcome == game.OutcomeUndecided {
		return nil
	}

	client.finish()
	client.SendPayload(protocol.TypeGameEnded, "", protocol.GameEndedPayload{
		GameID:  client.Game.ID,
		Outcome: outcome.String(),
		Turns:   client.Game.Turn(),
	})
	return nil
}

func (h *Handlers) handleHistory(client *Client, msg *protocol.Message) error {
	var payload protocol.HistoryPayload
	if len(msg.Payload) > 0 {
		if err := msg.ParsePayload(&payload); err != nil {
			return errInvalidPayload
		}
	}

	events, err := h.server.db.GetHistorySince(client.Game.ID, payload.AfterID)
	if err != nil {
		return err
	}

	entries := make([]protocol.HistoryEntry, len(events))
	for i, e := range events {
		entries[i] = protocol.HistoryEntry{
			ID:      e.ID,
			Turn:    e.Turn,
			Type:    e.EventType,
			Place:   e.Place,
			Insect:  e.Insect,
			Message: e.Message,
		}
	}
	client.SendPayload(protocol.TypeGameHistory, msg.ID, protocol.GameHistoryPayload{
		GameID: client.Game.ID,
		Events: entries,
	})
	return nil
}

// respond sends the action result for msg followed by the updated board.
func (h *Handlers) respond(client *Client, msg *protocol.Message, err error) {
	result := protocol.ActionResultPayload{
		Success: err == nil,
		Action:  string(msg.Type),
	}
	if err != nil {
		result.Code = errorCode(err)
		result.Error = err.Error()
	}
	client.SendPayload(protocol.TypeActionResult, msg.ID, result)
	client.sendState()
}
