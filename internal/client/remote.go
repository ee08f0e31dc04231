package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ants-vs-bees/internal/game"
	"ants-vs-bees/internal/protocol"
)

// ServerError is a command rejected by the server.
type ServerError struct {
	Code    protocol.ErrorCode
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Remote plays a game hosted by a server, one command at a time.
type Remote struct {
	net     *NetworkClient
	inbox   chan *protocol.Message
	state   game.Snapshot
	welcome protocol.WelcomePayload
	timeout time.Duration
}

// Dial connects to the server at addr and waits for the opening board.
func Dial(ctx context.Context, addr string, log *slog.Logger) (*Remote, error) {
	r := &Remote{
		inbox:   make(chan *protocol.Message, 64),
		timeout: 10 * time.Second,
	}
	r.net = NewNetworkClient(log)
	// Both callbacks run on the read goroutine, so closing here is safe.
	r.net.OnMessage = func(msg *protocol.Message) { r.inbox <- msg }
	r.net.OnDisconnect = func(error) { close(r.inbox) }

	if err := r.net.Connect(ctx, addr); err != nil {
		return nil, err
	}

	for {
		msg, err := r.next(ctx)
		if err != nil {
			r.Close()
			return nil, err
		}
		switch msg.Type {
		case protocol.TypeWelcome:
			if err := msg.ParsePayload(&r.welcome); err != nil {
				r.Close()
				return nil, err
			}
		case protocol.TypeGameState:
			if err := r.setState(msg); err != nil {
				r.Close()
				return nil, err
			}
			return r, nil
		}
	}
}

// GameID returns the server's ID for this game.
func (r *Remote) GameID() string {
	return r.welcome.GameID
}

// Snapshot returns the last board received.
func (r *Remote) Snapshot() game.Snapshot {
	return r.state
}

// Deploy places a defender of the named type at "row,col".
func (r *Remote) Deploy(typeName, at string) error {
	return r.do(protocol.TypeDeploy, protocol.DeployPayload{Type: typeName, At: at})
}

// Remove clears the top defender at "row,col".
func (r *Remote) Remove(at string) error {
	return r.do(protocol.TypeRemove, protocol.RemovePayload{At: at})
}

// Boost applies a boost to the defender at "row,col".
func (r *Remote) Boost(name, at string) error {
	return r.do(protocol.TypeBoost, protocol.BoostPayload{Name: name, At: at})
}

// EndTurn advances the game by one turn.
func (r *Remote) EndTurn() error {
	return r.do(protocol.TypeEndTurn, protocol.EndTurnPayload{})
}

// Close disconnects from the server.
func (r *Remote) Close() {
	r.net.Disconnect()
}

// do sends a command and waits for its result and the board that follows.
func (r *Remote) do(msgType protocol.MessageType, payload interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	id, err := r.net.SendPayload(msgType, payload)
	if err != nil {
		return err
	}

	var result *protocol.ActionResultPayload
	for {
		msg, err := r.next(ctx)
		if err != nil {
			return err
		}

		switch msg.Type {
		case protocol.TypeError:
			if msg.ID != id {
				continue
			}
			var e protocol.ErrorPayload
			if err := msg.ParsePayload(&e); err != nil {
				return err
			}
			return &ServerError{Code: e.Code, Message: e.Message}

		case protocol.TypeActionResult:
			if msg.ID != id {
				continue
			}
			result = &protocol.ActionResultPayload{}
			if err := msg.ParsePayload(result); err != nil {
				return err
			}

		case protocol.TypeGameState:
			if err := r.setState(msg); err != nil {
				return err
			}
			if result == nil {
				continue
			}
			if !result.Success {
				return &ServerError{Code: result.Code, Message: result.Error}
			}
			return nil
		}
	}
}

func (r *Remote) next(ctx context.Context) (*protocol.Message, error) {
	select {
	case msg, ok := <-r.inbox:
		if !ok {
			return nil, ErrNotConnected
		}
		return msg, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for server: %w", ctx.Err())
	}
}

func (r *Remote) setState(msg *protocol.Message) error {
	var payload protocol.GameStatePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	r.state = payload.State
	return nil
}
