package game

import "fmt"

// PlaceID addresses a place in the colony arena.
type PlaceID int

// Place is one step of a tunnel. It holds at most one ordinary defender,
// at most one guard, and any number of bees in arrival order.
type Place struct {
	ID    PlaceID
	Name  string
	Water bool

	exit     Option[PlaceID] // toward the queen
	entrance Option[PlaceID] // toward the hive

	ant   Option[InsectID]
	guard Option[InsectID]
	bees  []InsectID

	colony *Colony
}

// Exit returns the next place toward the queen.
func (p *Place) Exit() (*Place, bool) {
	return p.colony.resolvePlace(p.exit)
}

// Entrance returns the next place toward the hive.
func (p *Place) Entrance() (*Place, bool) {
	return p.colony.resolvePlace(p.entrance)
}

// Defender returns the insect that absorbs stings here: the guard if
// present, otherwise the ordinary defender.
func (p *Place) Defender() (*Insect, bool) {
	if g, ok := p.colony.resolveInsect(p.guard); ok {
		return g, true
	}
	return p.colony.resolveInsect(p.ant)
}

// GuardedDefender returns the ordinary defender, ignoring any guard.
func (p *Place) GuardedDefender() (*Insect, bool) {
	return p.colony.resolveInsect(p.ant)
}

// Guard returns the guard occupying this place.
func (p *Place) Guard() (*Insect, bool) {
	return p.colony.resolveInsect(p.guard)
}

// Bees returns the bees here in arrival order. The slice is a copy.
func (p *Place) Bees() []*Insect {
	out := make([]*Insect, 0, len(p.bees))
	for _, id := range p.bees {
		if b, ok := p.colony.insects[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// BeeCount returns the number of bees here.
func (p *Place) BeeCount() int {
	return len(p.bees)
}

// NearestBee walks toward the hive and returns the earliest-arrived bee in
// the first place whose distance lies in [minDist, maxDist].
func (p *Place) NearestBee(maxDist, minDist int) (*Insect, bool) {
	cur, dist := p, 0
	for dist <= maxDist {
		if dist >= minDist && len(cur.bees) > 0 {
			if b, ok := p.colony.insects[cur.bees[0]]; ok {
				return b, true
			}
		}
		next, ok := cur.Entrance()
		if !ok {
			break
		}
		cur = next
		dist++
	}
	return nil, false
}

// PlaceDefender puts an ant into the guard or ordinary slot as its kind
// dictates. It reports false without changes if that slot is taken.
func (p *Place) PlaceDefender(ant *Insect) bool {
	if !ant.IsAnt() {
		panic(fmt.Sprintf("place %s: %s is not a defender", p.Name, ant.Name()))
	}
	slot := &p.ant
	if ant.IsGuard() {
		slot = &p.guard
	}
	if slot.IsSome() {
		return false
	}
	*slot = Some(ant.ID)
	ant.Place = Some(p.ID)
	return true
}

// RemoveDefender removes and returns the guard if there is one, otherwise
// the ordinary defender.
func (p *Place) RemoveDefender() (*Insect, bool) {
	slot := &p.guard
	if !slot.IsSome() {
		slot = &p.ant
	}
	ant, ok := p.colony.resolveInsect(*slot)
	if !ok {
		return nil, false
	}
	*slot = None[InsectID]()
	ant.Place = None[PlaceID]()
	return ant, true
}

// AddBee appends a bee to the back of the arrival order.
func (p *Place) AddBee(bee *Insect) {
	if cur, ok := bee.Place.Get(); ok && cur != p.ID {
		panic(fmt.Sprintf("bee %d added to %s while still in place %d", bee.ID, p.Name, cur))
	}
	p.bees = append(p.bees, bee.ID)
	bee.Place = Some(p.ID)
}

// RemoveBee removes a bee and clears its place.
func (p *Place) RemoveBee(bee *Insect) {
	for i, id := range p.bees {
		if id == bee.ID {
			p.bees = append(p.bees[:i], p.bees[i+1:]...)
			bee.Place = None[PlaceID]()
			return
		}
	}
}

// RemoveAllBees empties the place and returns the bees that were here.
func (p *Place) RemoveAllBees() []*Insect {
	removed := p.Bees()
	for _, b := range removed {
		b.Place = None[PlaceID]()
	}
	p.bees = nil
	return removed
}

// AdvanceBee moves a bee one step toward the queen. A bee with nowhere to
// go stays put.
func (p *Place) AdvanceBee(bee *Insect) {
	next, ok := p.Exit()
	if !ok {
		return
	}
	p.RemoveBee(bee)
	next.AddBee(bee)
}

// RemoveInsect takes an insect out of whichever slot holds it.
func (p *Place) RemoveInsect(i *Insect) {
	if !i.IsAnt() {
		p.RemoveBee(i)
		return
	}
	for _, slot := range []*Option[InsectID]{&p.guard, &p.ant} {
		if id, ok := slot.Get(); ok && id == i.ID {
			*slot = None[InsectID]()
			i.Place = None[PlaceID]()
			return
		}
	}
}

// act drowns whatever cannot survive in water.
func (p *Place) act() {
	if !p.Water {
		return
	}
	if g, ok := p.Guard(); ok {
		p.RemoveInsect(g)
		p.colony.drown(p, g)
	}
	if a, ok := p.GuardedDefender(); ok && !kinds[a.Kind].waterproof {
		p.RemoveInsect(a)
		p.colony.drown(p, a)
	}
}

// String implements fmt.Stringer.
func (p *Place) String() string {
	return p.Name
}
