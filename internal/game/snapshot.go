package game

// Cell is the read-only view of one tunnel cell.
type Cell struct {
	Name     string `json:"name"`
	Water    bool   `json:"water"`
	Defender string `json:"defender,omitempty"`
	Armor    int    `json:"armor,omitempty"`
	Boost    string `json:"boost,omitempty"`
	Guard    string `json:"guard,omitempty"`
	Bees     int    `json:"bees"`
}

// Snapshot is everything a renderer needs to draw the board.
type Snapshot struct {
	GameID    string   `json:"game_id"`
	Turn      int      `json:"turn"`
	Food      int      `json:"food"`
	Boosts    []string `json:"boosts"`
	Tunnels   [][]Cell `json:"tunnels"`
	QueenBees int      `json:"queen_bees"`
	HiveBees  int      `json:"hive_bees"`
	Outcome   string   `json:"outcome"`
}

// Snapshot captures the current board.
func (g *Game) Snapshot() Snapshot {
	c := g.colony
	s := Snapshot{
		GameID:    g.ID,
		Turn:      g.turn,
		Food:      c.Food(),
		Boosts:    c.AvailableBoosts(),
		Tunnels:   make([][]Cell, c.Tunnels()),
		QueenBees: c.Queen().BeeCount(),
		HiveBees:  c.Hive().BeeCount(),
		Outcome:   g.Outcome().String(),
	}
	for t := range s.Tunnels {
		row := make([]Cell, c.Length())
		for pos := range row {
			p, _ := c.Place(t, pos)
			cell := Cell{Name: p.Name, Water: p.Water, Bees: p.BeeCount()}
			if a, ok := p.GuardedDefender(); ok {
				cell.Defender = a.Name()
				cell.Armor = a.Armor
				if b, ok := a.Boost.Get(); ok {
					cell.Boost = b
				}
			}
			if gd, ok := p.Guard(); ok {
				cell.Guard = gd.Name()
			}
			row[pos] = cell
		}
		s.Tunnels[t] = row
	}
	return s
}
