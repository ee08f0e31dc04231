package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ants-vs-bees/internal/config"
	"ants-vs-bees/internal/game"
	"ants-vs-bees/internal/protocol"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"
)

// Helper to start a server on a one-tunnel scenario with a single bee.
func createTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	scenario := config.Default()
	scenario.Name = "test"
	scenario.Food = 10
	scenario.Tunnels = 1
	scenario.Length = 3
	scenario.Seed = 1
	scenario.Waves = []game.Wave{{Turn: 0, Count: 1}}

	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.Scenario = scenario
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.db.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType, payload interface{}) string {
	t.Helper()
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(msg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return msg.ID
}

func read(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	return &msg
}

// expect reads one message and checks its type.
func expect(t *testing.T, conn *websocket.Conn, want protocol.MessageType) *protocol.Message {
	t.Helper()
	msg := read(t, conn)
	if msg.Type != want {
		t.Fatalf("Expected %s, got %s: %s", want, msg.Type, msg.Payload)
	}
	return msg
}

func TestHealth(t *testing.T) {
	_, ts := createTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestWelcomeAndDeploy(t *testing.T) {
	_, ts := createTestServer(t, Config{})
	conn := dial(t, ts)

	var welcome protocol.WelcomePayload
	expect(t, conn, protocol.TypeWelcome).ParsePayload(&welcome)
	if welcome.GameID == "" || welcome.Scenario != "test" || len(welcome.Kinds) != 5 {
		t.Errorf("Unexpected welcome: %+v", welcome)
	}
	expect(t, conn, protocol.TypeGameState)

	id := send(t, conn, protocol.TypeDeploy, protocol.DeployPayload{Type: "thrower", At: "0,0"})
	resultMsg := expect(t, conn, protocol.TypeActionResult)
	if resultMsg.ID != id {
		t.Errorf("Expected reply to carry request ID %s, got %s", id, resultMsg.ID)
	}
	var result protocol.ActionResultPayload
	resultMsg.ParsePayload(&result)
	if !result.Success || result.Action != "deploy" {
		t.Errorf("Unexpected result: %+v", result)
	}

	var state protocol.GameStatePayload
	expect(t, conn, protocol.TypeGameState).ParsePayload(&state)
	if state.State.Food != 6 || state.State.Tunnels[0][0].Defender != "thrower" {
		t.Errorf("Unexpected state: %+v", state.State)
	}

	send(t, conn, protocol.TypeDeploy, protocol.DeployPayload{Type: "thrower", At: "0,0"})
	expect(t, conn, protocol.TypeActionResult).ParsePayload(&result)
	if result.Success || result.Code != protocol.ErrCodeOccupied || result.Error != "occupied" {
		t.Errorf("Expected occupied failure, got %+v", result)
	}
	expect(t, conn, protocol.TypeGameState)
}

func TestInvalidMessages(t *testing.T) {
	_, ts := createTestServer(t, Config{})
	conn := dial(t, ts)
	expect(t, conn, protocol.TypeWelcome)
	expect(t, conn, protocol.TypeGameState)

	var e protocol.ErrorPayload
	send(t, conn, "dance", nil)
	expect(t, conn, protocol.TypeError).ParsePayload(&e)
	if e.Code != protocol.ErrCodeInvalidMessage {
		t.Errorf("Expected invalid_message, got %+v", e)
	}

	send(t, conn, protocol.TypeDeploy, "not an object")
	expect(t, conn, protocol.TypeError).ParsePayload(&e)
	if e.Code != protocol.ErrCodeInvalidMessage {
		t.Errorf("Expected invalid_message, got %+v", e)
	}
}

func TestPlayToVictory(t *testing.T) {
	s, ts := createTestServer(t, Config{})
	conn := dial(t, ts)
	var welcome protocol.WelcomePayload
	expect(t, conn, protocol.TypeWelcome).ParsePayload(&welcome)
	expect(t, conn, protocol.TypeGameState)

	send(t, conn, protocol.TypeDeploy, protocol.DeployPayload{Type: "thrower", At: "0,0"})
	expect(t, conn, protocol.TypeActionResult)
	expect(t, conn, protocol.TypeGameState)

	var ended protocol.GameEndedPayload
	for turn := 0; turn < 10 && ended.Outcome == ""; turn++ {
		send(t, conn, protocol.TypeEndTurn, protocol.EndTurnPayload{})
		expect(t, conn, protocol.TypeActionResult)
		expect(t, conn, protocol.TypeGameState)
		if s.ActiveGames() != 1 {
			t.Fatalf("Expected 1 active game, got %d", s.ActiveGames())
		}
		// game_ended follows the state on the deciding turn only.
		if turn >= 3 {
			expect(t, conn, protocol.TypeGameEnded).ParsePayload(&ended)
		}
	}
	if ended.Outcome != "won" || ended.GameID != welcome.GameID {
		t.Fatalf("Expected won, got %+v", ended)
	}

	session, err := s.db.GetSession(welcome.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if session.Outcome != "won" || session.Turns != 4 {
		t.Errorf("Unexpected session record: %+v", session)
	}

	var e protocol.ErrorPayload
	send(t, conn, protocol.TypeEndTurn, protocol.EndTurnPayload{})
	expect(t, conn, protocol.TypeError).ParsePayload(&e)
	if e.Code != protocol.ErrCodeGameOver {
		t.Errorf("Expected game_over, got %+v", e)
	}

	var history protocol.GameHistoryPayload
	send(t, conn, protocol.TypeHistory, protocol.HistoryPayload{})
	expect(t, conn, protocol.TypeGameHistory).ParsePayload(&history)
	if len(history.Events) == 0 || history.Events[0].Type != "deploy" {
		t.Fatalf("Expected history starting with deploy, got %+v", history.Events)
	}
	last := history.Events[len(history.Events)-1]
	if last.Type != "outcome" || last.Message != "won" {
		t.Errorf("Expected history to end with the outcome, got %+v", last)
	}
}

func TestRateLimit(t *testing.T) {
	_, ts := createTestServer(t, Config{MessageRate: rate.Limit(0.001), MessageBurst: 1})
	conn := dial(t, ts)
	expect(t, conn, protocol.TypeWelcome)
	expect(t, conn, protocol.TypeGameState)

	send(t, conn, protocol.TypePing, nil)
	expect(t, conn, protocol.TypePong)

	var e protocol.ErrorPayload
	send(t, conn, protocol.TypePing, nil)
	expect(t, conn, protocol.TypeError).ParsePayload(&e)
	if e.Code != protocol.ErrCodeRateLimited {
		t.Errorf("Expected rate_limited, got %+v", e)
	}
}
