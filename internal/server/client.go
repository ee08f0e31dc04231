package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ants-vs-bees/internal/game"
	"ants-vs-bees/internal/protocol"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
)

// Client is one connected player and the game they are playing.
type Client struct {
	server  *Server
	conn    *websocket.Conn
	send    chan *protocol.Message
	limiter *rate.Limiter
	log     *slog.Logger

	Game  *game.Game
	ended bool
}

// NewClient starts a session for conn: it records the session and builds a
// game from the server's scenario with history recording attached.
func NewClient(s *Server, conn *websocket.Conn) (*Client, error) {
	sessionID := uuid.New().String()
	if _, err := s.db.CreateSession(sessionID, s.scenario.Name); err != nil {
		return nil, err
	}

	g, err := s.scenario.NewGame(s.db.Recorder(sessionID))
	if err != nil {
		return nil, err
	}
	g.ID = sessionID

	c := &Client{
		server:  s,
		conn:    conn,
		send:    make(chan *protocol.Message, 256),
		limiter: rate.NewLimiter(s.msgRate, s.msgBurst),
		log:     s.log.With("game", sessionID),
		Game:    g,
	}
	c.log.Info("game started", "scenario", s.scenario.Name)
	return c, nil
}

// Send queues a message to be sent to the client.
func (c *Client) Send(msg *protocol.Message) {
	select {
	case c.send <- msg:
	default:
		// Channel full, client too slow
		c.log.Warn("send buffer full, closing connection")
		c.conn.Close(websocket.StatusPolicyViolation, "too slow")
	}
}

// SendPayload creates and sends a message with the given type and payload.
func (c *Client) SendPayload(msgType protocol.MessageType, replyTo string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		c.log.Error("failed to build message", "type", msgType, "error", err)
		return
	}
	if replyTo != "" {
		msg.ID = replyTo
	}
	c.Send(msg)
}

// ReadPump reads commands until the connection closes or ctx ends.
// Commands are handled one at a time, so the game needs no locking.
func (c *Client) ReadPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)

	for {
		msgType, data, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				c.log.Debug("websocket read ended", "error", err)
			}
			return
		}

		// Only process text messages
		if msgType != websocket.MessageText {
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", errInvalidPayload)
			continue
		}

		if !c.limiter.Allow() {
			c.sendError(msg.ID, errRateLimited)
			continue
		}

		c.server.handlers.Handle(c, &msg)
	}
}

// WritePump writes queued messages and keeps the connection alive with pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-c.send:
			data, err := json.Marshal(msg)
			if err != nil {
				c.log.Error("failed to marshal message", "error", err)
				continue
			}

			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err = c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// sendWelcome sends the welcome message to a new client.
func (c *Client) sendWelcome() {
	kinds := game.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	c.SendPayload(protocol.TypeWelcome, "", protocol.WelcomePayload{
		ServerVersion: ServerVersion,
		GameID:        c.Game.ID,
		Scenario:      c.server.scenario.Name,
		Kinds:         names,
	})
}

// sendState sends the current board.
func (c *Client) sendState() {
	c.SendPayload(protocol.TypeGameState, "", protocol.GameStatePayload{State: c.Game.Snapshot()})
}

// sendError sends an error response.
func (c *Client) sendError(msgID string, err error) {
	c.SendPayload(protocol.TypeError, msgID, protocol.ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	})
}

// finish closes the session record when the connection goes away.
func (c *Client) finish() {
	if c.ended {
		return
	}
	c.ended = true
	if err := c.server.db.FinishSession(c.Game.ID, c.Game.Outcome().String(), c.Game.Turn()); err != nil {
		c.log.Warn("failed to finish session", "error", err)
	}
	c.log.Info("game closed", "outcome", c.Game.Outcome().String(), "turn", c.Game.Turn())
}
