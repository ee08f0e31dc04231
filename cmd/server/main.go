package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ants-vs-bees/internal/config"
	"ants-vs-bees/internal/server"
)

func main() {
	port := flag.String("port", "30000", "Server port")
	dbPath := flag.String("db", "data/history.db", "Database path")
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (built-in default if empty)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Use PORT env var if set (required for Render.com and similar platforms)
	actualPort := *port
	if envPort := os.Getenv("PORT"); envPort != "" {
		actualPort = envPort
		logger.Info("using PORT from environment", "port", actualPort)
	}

	// Use DB_PATH env var if set, for cloud deployments with persistent disks
	actualDBPath := *dbPath
	if envDBPath := os.Getenv("DB_PATH"); envDBPath != "" {
		actualDBPath = envDBPath
		logger.Info("using DB_PATH from environment", "path", actualDBPath)
	}

	actualScenario := *scenarioPath
	if envScenario := os.Getenv("SCENARIO"); envScenario != "" {
		actualScenario = envScenario
	}

	scenario := config.Default()
	if actualScenario != "" {
		var err error
		scenario, err = config.Load(actualScenario)
		if err != nil {
			logger.Error("failed to load scenario", "path", actualScenario, "error", err)
			os.Exit(1)
		}
	}
	if err := scenario.ApplyEnv(); err != nil {
		logger.Error("invalid scenario environment", "error", err)
		os.Exit(1)
	}

	cfg := server.Config{
		Addr:     ":" + actualPort,
		DBPath:   actualDBPath,
		Scenario: scenario,
		Logger:   logger,
	}

	srv, err := server.New(cfg)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Handle shutdown gracefully
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	logger.Info("server running", "addr", cfg.Addr, "database", cfg.DBPath)

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
