// Package maps generates tunnel layouts: how many tunnels a colony has,
// how long they are, and which cells are flooded.
package maps

// Layout is a generated tunnel arrangement.
type Layout struct {
	Name    string
	Tunnels int
	Length  int

	// Water[tunnel][position] is true for flooded cells.
	Water [][]bool
}

// Generator produces a layout of the given size.
type Generator interface {
	Generate(tunnels, length int) *Layout
}

// GeneratorFunc adapts a cell predicate to Generator.
type GeneratorFunc struct {
	Name  string
	Water func(tunnel, position, length int) bool
}

// Generate implements Generator.
func (f GeneratorFunc) Generate(tunnels, length int) *Layout {
	l := newLayout(f.Name, tunnels, length)
	for t := range l.Water {
		for p := range l.Water[t] {
			l.Water[t][p] = f.Water(t, p, length)
		}
	}
	return l
}

func newLayout(name string, tunnels, length int) *Layout {
	water := make([][]bool, tunnels)
	for t := range water {
		water[t] = make([]bool, length)
	}
	return &Layout{Name: name, Tunnels: tunnels, Length: length, Water: water}
}

// IsWater reports whether a cell is flooded. Cells off the layout are dry.
func (l *Layout) IsWater(tunnel, position int) bool {
	if tunnel < 0 || tunnel >= len(l.Water) || position < 0 || position >= len(l.Water[tunnel]) {
		return false
	}
	return l.Water[tunnel][position]
}

// WaterCount returns the number of flooded cells.
func (l *Layout) WaterCount() int {
	n := 0
	for _, row := range l.Water {
		for _, w := range row {
			if w {
				n++
			}
		}
	}
	return n
}
