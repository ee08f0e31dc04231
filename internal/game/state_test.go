package game

import (
	"errors"
	"testing"
)

// Helper to create a test game with scripted randomness
func createTestGame(food, tunnels, length int, waves []Wave) *Game {
	return NewGame(Options{
		Food:      food,
		Tunnels:   tunnels,
		Length:    length,
		BeeArmor:  3,
		BeeDamage: Some(1),
		Boosts:    map[string]int{},
		Rand:      &scriptedRand{ints: []int{0, 1, 2, 0, 1, 2}},
		Logger:    quietLogger,
	}, waves)
}

func TestDeploy_RoundTrip(t *testing.T) {
	g := createTestGame(10, 1, 4, nil)

	if err := g.Deploy("thrower", "0,0"); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if g.Food() != 6 {
		t.Fatalf("Expected food 6, got %d", g.Food())
	}
	if err := g.Deploy("thrower", "0,0"); !errors.Is(err, ErrOccupied) {
		t.Fatalf("Expected occupied, got %v", err)
	}
	if g.Food() != 6 {
		t.Errorf("Expected food 6, got %d", g.Food())
	}
}

func TestDeploy_Errors(t *testing.T) {
	g := createTestGame(3, 2, 4, nil)

	tests := []struct {
		kind, at string
		want     error
	}{
		{"wizard", "0,0", ErrUnknownType},
		{"thrower", "0,0", ErrInsufficientResources},
		{"grower", "2,0", ErrInvalidLocation},
		{"grower", "0,4", ErrInvalidLocation},
		{"grower", "-1,0", ErrInvalidLocation},
		{"grower", "a,b", ErrInvalidLocation},
		{"grower", "1", ErrInvalidLocation},
		{"grower", "1,2,3", ErrInvalidLocation},
		{"grower", "", ErrInvalidLocation},
	}
	for _, tt := range tests {
		if err := g.Deploy(tt.kind, tt.at); !errors.Is(err, tt.want) {
			t.Errorf("Deploy(%q, %q): Expected %v, got %v", tt.kind, tt.at, tt.want, err)
		}
	}
	if err := g.Deploy("grower", " 1 , 2 "); err != nil {
		t.Errorf("Expected padded coordinates to parse: %v", err)
	}
	if err := g.Deploy("wizard", "0,0"); err.Error() != "unknown type" {
		t.Errorf("Expected user-facing message, got %q", err)
	}
}

func TestRemoveAndBoost(t *testing.T) {
	g := createTestGame(10, 1, 3, nil)

	if err := g.Remove("0,9"); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected invalid location, got %v", err)
	}
	if err := g.Remove("0,1"); err != nil {
		t.Errorf("Expected removing from empty cell to succeed, got %v", err)
	}
	if err := g.Boost(BoostRange, "x"); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected invalid location, got %v", err)
	}
	if err := g.Boost(BoostRange, "0,1"); !errors.Is(err, ErrNoSuchBoost) {
		t.Errorf("Expected no such boost, got %v", err)
	}

	g.Colony().DiscoverBoost(BoostRange)
	if err := g.Boost(BoostRange, "0,1"); !errors.Is(err, ErrNoDefender) {
		t.Errorf("Expected no defender, got %v", err)
	}
	if err := g.Deploy("thrower", "0,1"); err != nil {
		t.Fatal(err)
	}
	if err := g.Boost(BoostRange, "0,1"); err != nil {
		t.Errorf("Expected boost applied, got %v", err)
	}
	if err := g.Remove("0,1"); err != nil {
		t.Fatal(err)
	}
	if cell := g.Snapshot().Tunnels[0][1]; cell.Defender != "" {
		t.Errorf("Expected cell empty after remove, got %q", cell.Defender)
	}
	if g.Food() != 6 {
		t.Errorf("Expected no refund, food %d", g.Food())
	}
}

func TestEndTurn_WaveArrivesOnSchedule(t *testing.T) {
	g := createTestGame(0, 3, 4, []Wave{{Turn: 2, Count: 3}})

	if g.HiveCount() != 3 {
		t.Fatalf("Expected 3 bees staged in hive, got %d", g.HiveCount())
	}
	for i := 0; i < 2; i++ {
		g.EndTurn()
		if g.Colony().BeesInTunnels() != 0 {
			t.Fatalf("turn %d: Expected no bees yet", i)
		}
	}
	g.EndTurn()

	if g.Turn() != 3 {
		t.Errorf("Expected turn 3, got %d", g.Turn())
	}
	if g.HiveCount() != 0 {
		t.Errorf("Expected hive empty, got %d", g.HiveCount())
	}
	atEntries := 0
	for _, entry := range g.Colony().Entries() {
		atEntries += entry.BeeCount()
	}
	if atEntries != 3 {
		t.Errorf("Expected 3 bees at the entries (they must not act on arrival), got %d", atEntries)
	}
}

func TestOutcome(t *testing.T) {
	g := createTestGame(0, 2, 3, []Wave{{Turn: 0, Count: 2}})
	if g.Outcome() != OutcomeUndecided {
		t.Fatalf("Expected undecided with bees in hive, got %s", g.Outcome())
	}

	g.EndTurn()
	if g.Outcome() != OutcomeUndecided {
		t.Fatalf("Expected undecided with bees in tunnels, got %s", g.Outcome())
	}

	c := g.Colony()
	for _, p := range c.Places() {
		for _, bee := range p.Bees() {
			c.ReduceArmor(bee, bee.Armor)
		}
	}
	if g.Outcome() != OutcomeWon {
		t.Errorf("Expected won once every bee is gone, got %s", g.Outcome())
	}
}

func TestOutcome_QueenInvadedLoses(t *testing.T) {
	g := createTestGame(0, 1, 2, []Wave{{Turn: 5, Count: 4}})
	c := g.Colony()
	addBee(c, c.Queen(), 3, 1)
	addBee(c, mustPlace(t, c, 0, 1), 3, 1)

	if g.Outcome() != OutcomeLost {
		t.Errorf("Expected lost, got %s", g.Outcome())
	}
}

func TestEndTurn_BeesReachQueen(t *testing.T) {
	g := createTestGame(0, 1, 2, []Wave{{Turn: 0, Count: 1}})

	g.EndTurn() // wave lands at position 1
	g.EndTurn() // moves to 0
	if g.Outcome() != OutcomeUndecided {
		t.Fatalf("Expected undecided, got %s", g.Outcome())
	}
	g.EndTurn() // reaches the queen
	if g.Outcome() != OutcomeLost {
		t.Errorf("Expected lost, got %s", g.Outcome())
	}
}

func TestEndTurn_ThrowerDefends(t *testing.T) {
	g := createTestGame(4, 1, 4, []Wave{{Turn: 0, Count: 1}})
	if err := g.Deploy("thrower", "0,0"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10 && g.Outcome() == OutcomeUndecided; i++ {
		g.EndTurn()
	}
	if g.Outcome() != OutcomeWon {
		t.Errorf("Expected thrower to win a one-bee game, got %s", g.Outcome())
	}
}

func TestSnapshot(t *testing.T) {
	g := createTestGame(20, 2, 3, []Wave{{Turn: 1, Count: 2}})
	g.Deploy("thrower", "1,2")
	g.Deploy("guard", "1,2")
	g.Colony().DiscoverBoost(BoostFreeze)

	s := g.Snapshot()
	if s.Turn != 0 || s.Food != 12 || s.HiveBees != 2 {
		t.Errorf("Unexpected header: %+v", s)
	}
	if len(s.Tunnels) != 2 || len(s.Tunnels[1]) != 3 {
		t.Fatalf("Expected 2x3 grid")
	}
	cell := s.Tunnels[1][2]
	if cell.Defender != "thrower" || cell.Guard != "guard" {
		t.Errorf("Unexpected cell: %+v", cell)
	}
	if len(s.Boosts) != 1 || s.Boosts[0] != BoostFreeze {
		t.Errorf("Expected freeze boost listed, got %v", s.Boosts)
	}
	if s.Outcome != "undecided" {
		t.Errorf("Expected undecided, got %s", s.Outcome)
	}
}
