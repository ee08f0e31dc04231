package game

import (
	"errors"
	"testing"
)

func TestNewColony_Layout(t *testing.T) {
	c := createTestColony(3, 4, 0, nil)

	if c.Tunnels() != 3 || c.Length() != 4 {
		t.Fatalf("Expected 3x4 colony, got %dx%d", c.Tunnels(), c.Length())
	}
	if len(c.Places()) != 12 {
		t.Errorf("Expected 12 places, got %d", len(c.Places()))
	}
	for tunnel, entry := range c.Entries() {
		want := mustPlace(t, c, tunnel, 3)
		if entry.ID != want.ID {
			t.Errorf("tunnel %d: Expected entry %s, got %s", tunnel, want.Name, entry.Name)
		}
		if _, ok := entry.Entrance(); ok {
			t.Errorf("tunnel %d: Expected entry to have no entrance", tunnel)
		}
	}
	if exit, ok := mustPlace(t, c, 1, 0).Exit(); !ok || exit.ID != c.Queen().ID {
		t.Error("Expected position 0 to exit to the queen")
	}
	if _, ok := c.Place(3, 0); ok {
		t.Error("Expected tunnel 3 to be out of range")
	}
	for _, name := range DefaultBoosts {
		if c.BoostCount(name) != 0 {
			t.Errorf("Expected %s seeded at 0", name)
		}
	}
}

func TestNewColony_StartingBoosts(t *testing.T) {
	c := NewColony(Options{Tunnels: 1, Length: 1, Logger: quietLogger})

	want := map[string]int{BoostRange: 1, BoostSticky: 1, BoostFreeze: 1, BoostBlast: 0}
	for name, n := range want {
		if c.BoostCount(name) != n {
			t.Errorf("Expected %d %s, got %d", n, name, c.BoostCount(name))
		}
	}
	got := c.AvailableBoosts()
	if len(got) != 3 || got[0] != BoostFreeze || got[1] != BoostRange || got[2] != BoostSticky {
		t.Errorf("Expected freeze, range and sticky available at turn 0, got %v", got)
	}

	custom := NewColony(Options{Tunnels: 1, Length: 1, Logger: quietLogger, Boosts: map[string]int{BoostBlast: 2}})
	if custom.BoostCount(BoostBlast) != 2 || custom.BoostCount(BoostRange) != 0 {
		t.Errorf("Expected configured inventory, got %v", custom.AvailableBoosts())
	}
}

func TestNewColony_BeeDamage(t *testing.T) {
	tests := []struct {
		damage Option[int]
		want   int
	}{
		{None[int](), 1},
		{Some(0), 0},
		{Some(3), 3},
	}
	for _, tt := range tests {
		c := NewColony(Options{Tunnels: 1, Length: 1, Logger: quietLogger, BeeDamage: tt.damage})
		if c.Hive().BeeDamage != tt.want {
			t.Errorf("BeeDamage %+v: Expected %d, got %d", tt.damage, tt.want, c.Hive().BeeDamage)
		}
	}
}

func TestDeploy_UnitCosts(t *testing.T) {
	want := map[Kind]int{KindGrower: 1, KindThrower: 4, KindEater: 4, KindScuba: 5, KindGuard: 4}
	for _, k := range Kinds() {
		if k.Cost != want[k.Kind] {
			t.Errorf("%s: Expected cost %d, got %d", k.Name, want[k.Kind], k.Cost)
		}
	}

	c := createTestColony(1, 2, 5, nil)
	mustDeploy(t, c, KindEater, mustPlace(t, c, 0, 0))
	mustDeploy(t, c, KindGrower, mustPlace(t, c, 0, 1))
	if c.Food() != 0 {
		t.Errorf("Expected eater and grower to cost 5 together, food %d", c.Food())
	}
}

func TestDeploy_OccupiedKeepsFood(t *testing.T) {
	c := createTestColony(1, 2, 10, nil)
	p := mustPlace(t, c, 0, 0)

	if _, err := c.Deploy(KindThrower, p); err != nil {
		t.Fatalf("Expected deploy to succeed: %v", err)
	}
	if c.Food() != 6 {
		t.Fatalf("Expected food 6, got %d", c.Food())
	}
	if _, err := c.Deploy(KindThrower, p); !errors.Is(err, ErrOccupied) {
		t.Fatalf("Expected ErrOccupied, got %v", err)
	}
	if c.Food() != 6 {
		t.Errorf("Expected food still 6, got %d", c.Food())
	}
}

func TestDeploy_InsufficientFoodPlacesNothing(t *testing.T) {
	c := createTestColony(1, 2, 3, nil)
	p := mustPlace(t, c, 0, 0)

	if _, err := c.Deploy(KindThrower, p); !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("Expected ErrInsufficientResources, got %v", err)
	}
	if _, ok := p.Defender(); ok {
		t.Error("Expected no defender placed")
	}
	if c.Food() != 3 {
		t.Errorf("Expected food unchanged, got %d", c.Food())
	}
}

func TestApplyBoost(t *testing.T) {
	c := createTestColony(1, 2, 100, nil)
	p := mustPlace(t, c, 0, 0)

	if err := c.ApplyBoost(BoostRange, p); !errors.Is(err, ErrNoSuchBoost) {
		t.Fatalf("Expected ErrNoSuchBoost, got %v", err)
	}
	c.DiscoverBoost(BoostRange)
	if err := c.ApplyBoost(BoostRange, p); !errors.Is(err, ErrNoDefender) {
		t.Fatalf("Expected ErrNoDefender, got %v", err)
	}

	thrower := mustDeploy(t, c, KindThrower, p)
	if err := c.ApplyBoost(BoostRange, p); err != nil {
		t.Fatalf("Expected boost to apply: %v", err)
	}
	if b, ok := thrower.Boost.Get(); !ok || b != BoostRange {
		t.Error("Expected lone thrower tagged")
	}

	thrower.Boost = None[string]()
	guard := mustDeploy(t, c, KindGuard, p)
	if err := c.ApplyBoost(BoostRange, p); err != nil {
		t.Fatalf("Expected boost to apply: %v", err)
	}
	if b, ok := guard.Boost.Get(); !ok || b != BoostRange {
		t.Error("Expected the guard, as top defender, to be tagged")
	}
	if thrower.Boost.IsSome() {
		t.Error("Expected the guarded thrower left untagged")
	}
	if c.BoostCount(BoostRange) != 1 {
		t.Errorf("Expected inventory untouched, got %d", c.BoostCount(BoostRange))
	}
}

func TestDiscoverBoost_NewName(t *testing.T) {
	c := createTestColony(1, 1, 0, nil)
	c.DiscoverBoost("honey")
	c.DiscoverBoost("honey")
	if c.BoostCount("honey") != 2 {
		t.Errorf("Expected 2 honey, got %d", c.BoostCount("honey"))
	}
}

// A guarded defender is run once by its guard and once by the regular
// traversal, so it acts twice.
func TestAntsAct_GuardedDefenderActsTwice(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.1, 0.1, 0.1}}
	c := createTestColony(1, 2, 5, rng)
	p := mustPlace(t, c, 0, 0)
	mustDeploy(t, c, KindGrower, p)
	mustDeploy(t, c, KindGuard, p)

	c.AntsAct()

	if c.Food() != 2 {
		t.Errorf("Expected guarded grower to act twice (food 2), got %d", c.Food())
	}
}

func TestAntsAct_UnguardedActsOnce(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.1, 0.1}}
	c := createTestColony(2, 2, 2, rng)
	mustDeploy(t, c, KindGrower, mustPlace(t, c, 0, 0))
	mustDeploy(t, c, KindGrower, mustPlace(t, c, 1, 1))

	c.AntsAct()

	if c.Food() != 2 {
		t.Errorf("Expected one food per grower, got %d", c.Food())
	}
}

func TestBeesAct_EachBeeOnce(t *testing.T) {
	c := createTestColony(1, 4, 0, nil)
	bee := addBee(c, mustPlace(t, c, 0, 3), 3, 1)

	c.BeesAct()

	if id, _ := bee.Place.Get(); id != mustPlace(t, c, 0, 2).ID {
		t.Error("Expected bee to advance exactly one cell")
	}
}

func TestBeesAct_KilledDefenderNotProcessedByWater(t *testing.T) {
	c := NewColony(Options{
		Tunnels: 1,
		Length:  2,
		Food:    100,
		Water:   func(int, int) bool { return true },
		Rand:    &scriptedRand{},
		Logger:  quietLogger,
	})
	p := mustPlace(t, c, 0, 0)
	drowned := 0
	c.rec = RecorderFunc(func(e Event) {
		if e.Type == EventDrown {
			drowned++
		}
	})
	mustDeploy(t, c, KindThrower, p)
	addBee(c, p, 3, 5)

	c.BeesAct()
	c.PlacesAct()

	if drowned != 0 {
		t.Errorf("Expected stung thrower not to drown as well, got %d drownings", drowned)
	}
}
