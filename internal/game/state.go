// Package game contains the turn engine for Ants vs. Bees: the insect
// arena, the tunnel graph, the hive and the colony's turn phases.
// Front ends drive it through Game.
package game

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Outcome is the result of evaluating the board.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "undecided"
	}
}

// Wave schedules Count bees to leave the hive on Turn.
type Wave struct {
	Turn  int `json:"turn" yaml:"turn"`
	Count int `json:"count" yaml:"count"`
}

// Game is the turn controller and the public mutation API.
type Game struct {
	ID     string
	colony *Colony
	turn   int
	log    *slog.Logger
}

// NewGame creates a colony from opts and schedules the waves.
func NewGame(opts Options, waves []Wave) *Game {
	colony := NewColony(opts)
	hive := colony.Hive()
	for _, w := range waves {
		hive.AddWave(w.Turn, w.Count)
	}
	return &Game{
		ID:     uuid.New().String(),
		colony: colony,
		log:    colony.log,
	}
}

// Colony exposes the underlying colony for read access.
func (g *Game) Colony() *Colony {
	return g.colony
}

// Turn returns the current turn number, starting at 0.
func (g *Game) Turn() int {
	return g.turn
}

// Food returns the colony's food balance.
func (g *Game) Food() int {
	return g.colony.Food()
}

// Boosts returns boost names with positive inventory.
func (g *Game) Boosts() []string {
	return g.colony.AvailableBoosts()
}

// HiveCount returns the bees still waiting in the hive.
func (g *Game) HiveCount() int {
	return g.colony.Hive().BeeCount()
}

// Deploy places a new defender of the named type at "row,col".
func (g *Game) Deploy(typeName, at string) error {
	kind, ok := ParseKind(typeName)
	if !ok {
		return ErrUnknownType
	}
	place, err := g.locate(at)
	if err != nil {
		return err
	}
	_, err = g.colony.Deploy(kind, place)
	return err
}

// Remove clears the top defender at "row,col". Removing from an empty cell
// succeeds.
func (g *Game) Remove(at string) error {
	place, err := g.locate(at)
	if err != nil {
		return err
	}
	g.colony.Remove(place)
	return nil
}

// Boost tags the defender at "row,col" with the named boost.
func (g *Game) Boost(name, at string) error {
	place, err := g.locate(at)
	if err != nil {
		return err
	}
	return g.colony.ApplyBoost(name, place)
}

// EndTurn runs the turn protocol: defenders, bees, hazards, then the
// wave scheduled for this turn. New bees do not act until next turn.
func (g *Game) EndTurn() {
	c := g.colony
	c.turn = g.turn

	c.AntsAct()
	c.BeesAct()
	c.PlacesAct()
	c.Hive().Invade(g.turn)

	c.emit(EventTurnEnd, "", nil, "")
	g.turn++
	c.turn = g.turn

	if o := g.Outcome(); o != OutcomeUndecided {
		g.log.Info("game decided", "game", g.ID, "outcome", o.String(), "turn", g.turn)
		c.emit(EventOutcome, "", nil, o.String())
	}
}

// Outcome reports a loss as soon as a bee reaches the queen, and a win once
// no bee remains in the tunnels or the hive.
func (g *Game) Outcome() Outcome {
	c := g.colony
	if c.Queen().BeeCount() > 0 {
		return OutcomeLost
	}
	if c.BeesInTunnels() == 0 && c.Hive().BeeCount() == 0 {
		return OutcomeWon
	}
	return OutcomeUndecided
}

// locate parses "row,col" into a tunnel cell.
func (g *Game) locate(at string) (*Place, error) {
	row, col, err := ParseCoord(at)
	if err != nil {
		return nil, err
	}
	place, ok := g.colony.Place(row, col)
	if !ok {
		return nil, ErrInvalidLocation
	}
	return place, nil
}

// ParseCoord parses "row,col". Any malformed input is ErrInvalidLocation.
func ParseCoord(at string) (int, int, error) {
	parts := strings.Split(at, ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidLocation
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, ErrInvalidLocation
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, ErrInvalidLocation
	}
	return row, col, nil
}
