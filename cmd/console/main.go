// Command console plays Ants vs. Bees in the terminal, either locally or
// against a game server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ants-vs-bees/internal/client"
	"ants-vs-bees/internal/config"
	"ants-vs-bees/internal/game"

	"github.com/mattn/go-isatty"
)

// localGame adapts game.Game to the player interface.
type localGame struct {
	*game.Game
}

func (l localGame) EndTurn() error {
	l.Game.EndTurn()
	return nil
}

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (built-in default if empty)")
	connect := flag.String("connect", "", "Play on a server at host:port instead of locally")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var p player
	if *connect != "" {
		remote, err := client.Dial(context.Background(), *connect, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", *connect, err)
			os.Exit(1)
		}
		defer remote.Close()
		p = remote
	} else {
		scenario := config.Default()
		if *scenarioPath != "" {
			var err error
			scenario, err = config.Load(*scenarioPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load scenario: %v\n", err)
				os.Exit(1)
			}
		}
		if err := scenario.ApplyEnv(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid scenario environment: %v\n", err)
			os.Exit(1)
		}
		g, err := scenario.NewGame(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start game: %v\n", err)
			os.Exit(1)
		}
		p = localGame{g}
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if err := run(os.Stdin, os.Stdout, p, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
