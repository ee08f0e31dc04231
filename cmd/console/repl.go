package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ants-vs-bees/internal/game"
	"ants-vs-bees/internal/render"

	"github.com/kballard/go-shellquote"
)

// player is a game the console can drive, local or remote.
type player interface {
	Deploy(typeName, at string) error
	Remove(at string) error
	Boost(name, at string) error
	EndTurn() error
	Snapshot() game.Snapshot
}

const help = `commands:
  deploy <type> <row,col>   place a defender
  remove <row,col>          remove the top defender
  boost <name> <row,col>    apply a discovered boost
  end                       end the turn (an empty line also works)
  kinds                     list defender types
  quit                      leave the game
`

// run reads commands from in until the game is decided, input ends or the
// player quits. Rejected commands are reported and play continues.
func run(in io.Reader, out io.Writer, p player, interactive bool) error {
	if err := render.Board(out, p.Snapshot()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		args, err := shellquote.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		cmd := "end"
		if len(args) > 0 {
			cmd = strings.ToLower(args[0])
			args = args[1:]
		}

		switch cmd {
		case "quit", "exit":
			return nil
		case "help", "?":
			fmt.Fprint(out, help)
			continue
		case "kinds":
			render.Kinds(out, game.Kinds())
			continue
		}

		if err := apply(p, cmd, args); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		snap := p.Snapshot()
		if err := render.Board(out, snap); err != nil {
			return err
		}
		if snap.Outcome != game.OutcomeUndecided.String() {
			return nil
		}
	}
}

// apply runs one game command.
func apply(p player, cmd string, args []string) error {
	switch cmd {
	case "deploy", "d":
		if len(args) != 2 {
			return fmt.Errorf("usage: deploy <type> <row,col>")
		}
		return p.Deploy(args[0], args[1])
	case "remove", "r":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <row,col>")
		}
		return p.Remove(args[0])
	case "boost", "b":
		if len(args) != 2 {
			return fmt.Errorf("usage: boost <name> <row,col>")
		}
		return p.Boost(args[0], args[1])
	case "end", "e":
		return p.EndTurn()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}
