// Package server implements the Ants vs. Bees game server.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"ants-vs-bees/internal/config"
	"ants-vs-bees/internal/database"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"
)

// ServerVersion is reported to clients in the welcome message.
const ServerVersion = "0.1.0"

// Server is the main game server. Every connection plays its own game.
type Server struct {
	db       *database.DB
	scenario *config.Scenario
	handlers *Handlers
	log      *slog.Logger
	addr     string
	server   *http.Server

	msgRate  rate.Limit
	msgBurst int

	active atomic.Int64
}

// Config holds server configuration.
type Config struct {
	Addr     string
	DBPath   string
	Scenario *config.Scenario
	Logger   *slog.Logger

	// MessageRate and MessageBurst bound how fast one connection may send
	// commands. Zero values pick the defaults.
	MessageRate  rate.Limit
	MessageBurst int
}

const (
	defaultMessageRate  rate.Limit = 5
	defaultMessageBurst            = 20
)

// New creates a new server.
func New(cfg Config) (*Server, error) {
	if cfg.Scenario == nil {
		cfg.Scenario = config.Default()
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MessageRate == 0 {
		cfg.MessageRate = defaultMessageRate
	}
	if cfg.MessageBurst == 0 {
		cfg.MessageBurst = defaultMessageBurst
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{
		db:       db,
		scenario: cfg.Scenario,
		log:      cfg.Logger,
		addr:     cfg.Addr,
		msgRate:  cfg.MessageRate,
		msgBurst: cfg.MessageBurst,
	}
	s.handlers = NewHandlers(s)

	return s, nil
}

// Handler returns the HTTP routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Recent sessions, newest first
	mux.HandleFunc("/api/sessions", s.handleListSessions)

	return mux
}

// Start starts the server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("Ants vs. Bees server",
		"address", "http://localhost"+s.addr,
		"websocket", "ws://localhost"+s.addr+"/ws",
		"scenario", s.scenario.Name)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ActiveGames returns the number of connections currently playing.
func (s *Server) ActiveGames() int64 {
	return s.active.Load()
}

// handleWebSocket accepts a connection and plays one game on it until the
// client goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow all origins for now
	})
	if err != nil {
		s.log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	client, err := NewClient(s, conn)
	if err != nil {
		s.log.Error("failed to start game", "error", err)
		conn.Close(websocket.StatusInternalError, "failed to start game")
		return
	}

	s.active.Add(1)
	defer s.active.Add(-1)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go client.WritePump(ctx)

	client.sendWelcome()
	client.sendState()
	client.ReadPump(ctx)

	client.finish()
	conn.Close(websocket.StatusNormalClosure, "")
}

// handleListSessions returns recently played sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := s.db.RecentSessions(20)
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}
