package game

import (
	"io"
	"log/slog"
	"testing"
)

// scriptedRand replays fixed rolls. When a script runs out, Float64 returns
// 0.99 (a grower no-op) and Intn returns 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Helper to create a small dry colony with scripted randomness
func createTestColony(tunnels, length, food int, rng Rand) *Colony {
	if rng == nil {
		rng = &scriptedRand{}
	}
	return NewColony(Options{
		Food:    food,
		Tunnels: tunnels,
		Length:  length,
		Boosts:  map[string]int{},
		Rand:    rng,
		Logger:  quietLogger,
	})
}

func mustPlace(t *testing.T, c *Colony, tunnel, pos int) *Place {
	t.Helper()
	p, ok := c.Place(tunnel, pos)
	if !ok {
		t.Fatalf("no place at %d,%d", tunnel, pos)
	}
	return p
}

func mustDeploy(t *testing.T, c *Colony, kind Kind, p *Place) *Insect {
	t.Helper()
	ant, err := c.Deploy(kind, p)
	if err != nil {
		t.Fatalf("deploy %s at %s: %v", kind, p.Name, err)
	}
	return ant
}

func addBee(c *Colony, p *Place, armor, damage int) *Insect {
	bee := c.newInsect(KindBee)
	bee.Armor = armor
	bee.Damage = damage
	p.AddBee(bee)
	return bee
}
