package game

import (
	"fmt"
	"log/slog"
	"sort"
)

// Options configures a new colony.
type Options struct {
	Food    int
	Tunnels int
	Length  int

	// Water reports whether the cell at (tunnel, position) is flooded.
	// Nil means a dry colony.
	Water func(tunnel, position int) bool

	// Boosts is the starting inventory. Nil means StartingBoosts().
	Boosts map[string]int

	// BeeArmor of 0 means the stock bee armor. BeeDamage is optional so
	// that harmless bees can be configured; None means 1.
	BeeArmor  int
	BeeDamage Option[int]

	Rand     Rand
	Logger   *slog.Logger
	Recorder Recorder
}

// Colony owns the tunnel network, the food and boost economy, and every
// insect in play. Places and insects live in arenas addressed by ID.
type Colony struct {
	food   int
	boosts map[string]int

	places []*Place
	grid   [][]PlaceID
	queen  PlaceID
	hive   *Hive

	insects map[InsectID]*Insect
	nextID  InsectID

	rng  Rand
	log  *slog.Logger
	rec  Recorder
	turn int
}

// NewColony builds the tunnels, the queen's chamber and an empty hive.
func NewColony(opts Options) *Colony {
	if opts.Tunnels < 1 || opts.Length < 1 {
		panic(fmt.Sprintf("colony needs at least one tunnel cell, got %dx%d", opts.Tunnels, opts.Length))
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BeeArmor == 0 {
		opts.BeeArmor = kinds[KindBee].armor
	}
	beeDamage, ok := opts.BeeDamage.Get()
	if !ok {
		beeDamage = 1
	}
	if opts.Boosts == nil {
		opts.Boosts = StartingBoosts()
	}

	c := &Colony{
		food:    opts.Food,
		boosts:  make(map[string]int),
		insects: make(map[InsectID]*Insect),
		rng:     opts.Rand,
		log:     opts.Logger,
		rec:     opts.Recorder,
	}
	for _, name := range DefaultBoosts {
		c.boosts[name] = 0
	}
	for name, n := range opts.Boosts {
		c.boosts[name] = n
	}

	queen := c.newPlace("queen", false)
	c.queen = queen.ID

	c.grid = make([][]PlaceID, opts.Tunnels)
	for t := 0; t < opts.Tunnels; t++ {
		exit := queen
		c.grid[t] = make([]PlaceID, opts.Length)
		for pos := 0; pos < opts.Length; pos++ {
			water := opts.Water != nil && opts.Water(t, pos)
			name := fmt.Sprintf("tunnel_%d_%d", t, pos)
			if water {
				name = fmt.Sprintf("water_%d_%d", t, pos)
			}
			p := c.newPlace(name, water)
			p.exit = Some(exit.ID)
			if exit != queen {
				exit.entrance = Some(p.ID)
			}
			c.grid[t][pos] = p.ID
			exit = p
		}
	}

	hivePlace := c.newPlace("hive", false)
	c.hive = &Hive{
		Place:     hivePlace,
		BeeArmor:  opts.BeeArmor,
		BeeDamage: beeDamage,
		waves:     make(map[int][]InsectID),
	}
	return c
}

func (c *Colony) newPlace(name string, water bool) *Place {
	p := &Place{ID: PlaceID(len(c.places)), Name: name, Water: water, colony: c}
	c.places = append(c.places, p)
	return p
}

func (c *Colony) newInsect(kind Kind) *Insect {
	c.nextID++
	info := kinds[kind]
	i := &Insect{ID: c.nextID, Kind: kind, Armor: info.armor, Cost: info.cost}
	c.insects[i.ID] = i
	return i
}

// Food returns the food balance.
func (c *Colony) Food() int {
	return c.food
}

// AddFood changes the food balance.
func (c *Colony) AddFood(n int) {
	c.food += n
}

// DiscoverBoost adds one unit of the named boost to the inventory.
func (c *Colony) DiscoverBoost(name string) {
	c.boosts[name]++
	c.emit(EventDiscover, "", nil, "discovered "+name)
}

// BoostCount returns the inventory of a boost.
func (c *Colony) BoostCount(name string) int {
	return c.boosts[name]
}

// AvailableBoosts returns boost names with positive inventory, sorted.
func (c *Colony) AvailableBoosts() []string {
	var names []string
	for name, n := range c.boosts {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Tunnels returns the number of tunnels.
func (c *Colony) Tunnels() int {
	return len(c.grid)
}

// Length returns the number of positions per tunnel.
func (c *Colony) Length() int {
	if len(c.grid) == 0 {
		return 0
	}
	return len(c.grid[0])
}

// Place returns the cell at (tunnel, position).
func (c *Colony) Place(tunnel, position int) (*Place, bool) {
	if tunnel < 0 || tunnel >= len(c.grid) || position < 0 || position >= len(c.grid[tunnel]) {
		return nil, false
	}
	return c.places[c.grid[tunnel][position]], true
}

// Places returns every tunnel cell, tunnel-major then position-minor.
func (c *Colony) Places() []*Place {
	out := make([]*Place, 0, len(c.grid)*c.Length())
	for _, row := range c.grid {
		for _, id := range row {
			out = append(out, c.places[id])
		}
	}
	return out
}

// Entries returns the hive-side end of each tunnel.
func (c *Colony) Entries() []*Place {
	out := make([]*Place, len(c.grid))
	for t, row := range c.grid {
		out[t] = c.places[row[len(row)-1]]
	}
	return out
}

// Queen returns the queen's chamber.
func (c *Colony) Queen() *Place {
	return c.places[c.queen]
}

// Hive returns the bee hive.
func (c *Colony) Hive() *Hive {
	return c.hive
}

// Insect looks up an insect still in play.
func (c *Colony) Insect(id InsectID) (*Insect, bool) {
	i, ok := c.insects[id]
	return i, ok
}

// BeesInTunnels counts bees anywhere in the tunnel network.
func (c *Colony) BeesInTunnels() int {
	n := 0
	for _, p := range c.Places() {
		n += p.BeeCount()
	}
	return n
}

// Deploy pays for a new defender of the given kind and places it.
func (c *Colony) Deploy(kind Kind, place *Place) (*Insect, error) {
	if !kind.IsAnt() {
		return nil, ErrUnknownType
	}
	info := kinds[kind]
	if c.food < info.cost {
		return nil, ErrInsufficientResources
	}

	ant := c.newInsect(kind)
	if !place.PlaceDefender(ant) {
		delete(c.insects, ant.ID)
		return nil, ErrOccupied
	}
	c.food -= info.cost

	c.log.Debug("deployed", "kind", ant.Name(), "place", place.Name, "food", c.food)
	c.emit(EventDeploy, place.Name, ant, "")
	return ant, nil
}

// Remove takes the top defender (guard first) out of a place. It reports
// false if the place was empty. No food is refunded.
func (c *Colony) Remove(place *Place) (*Insect, bool) {
	ant, ok := place.RemoveDefender()
	if !ok {
		return nil, false
	}
	c.retire(ant)
	c.log.Debug("removed", "kind", ant.Name(), "place", place.Name)
	c.emit(EventRemove, place.Name, ant, "")
	return ant, true
}

// ApplyBoost tags the top defender in a place (the guard, if any) with a
// boost. Inventory is not consumed here.
func (c *Colony) ApplyBoost(name string, place *Place) error {
	if c.boosts[name] <= 0 {
		return ErrNoSuchBoost
	}
	ant, ok := place.Defender()
	if !ok {
		return ErrNoDefender
	}
	ant.Boost = Some(name)
	c.emit(EventBoost, place.Name, ant, name)
	return nil
}

// Act runs one insect's per-turn behavior.
func (c *Colony) Act(i *Insect) {
	kinds[i.Kind].act(c, i)
}

// ReduceArmor damages an insect and reports whether it expired.
func (c *Colony) ReduceArmor(i *Insect, amount int) bool {
	return kinds[i.Kind].reduceArmor(c, i, amount)
}

// AntsAct runs every placed defender. A guard first triggers the defender
// it shields, so a guarded defender acts twice per turn.
func (c *Colony) AntsAct() {
	var order []InsectID
	for _, p := range c.Places() {
		if id, ok := p.guard.Get(); ok {
			order = append(order, id)
		}
		if id, ok := p.ant.Get(); ok {
			order = append(order, id)
		}
	}

	for _, id := range order {
		ant, ok := c.active(id)
		if !ok {
			continue
		}
		if ant.IsGuard() {
			if place, ok := c.placeOf(ant); ok {
				if guarded, ok := place.GuardedDefender(); ok {
					c.Act(guarded)
				}
			}
			if !ant.Alive() || !ant.Place.IsSome() {
				continue
			}
		}
		c.Act(ant)
	}
}

// BeesAct runs every bee in the tunnels once, in place order.
func (c *Colony) BeesAct() {
	var order []InsectID
	for _, p := range c.Places() {
		order = append(order, p.bees...)
	}
	for _, id := range order {
		if bee, ok := c.active(id); ok {
			c.Act(bee)
		}
	}
}

// PlacesAct resolves water hazards in every tunnel cell.
func (c *Colony) PlacesAct() {
	for _, p := range c.Places() {
		p.act()
	}
}

// active returns an insect that is alive and on the board.
func (c *Colony) active(id InsectID) (*Insect, bool) {
	i, ok := c.insects[id]
	if !ok || !i.Alive() || !i.Place.IsSome() {
		return nil, false
	}
	return i, true
}

func (c *Colony) placeOf(i *Insect) (*Place, bool) {
	return c.resolvePlace(i.Place)
}

func (c *Colony) resolvePlace(ref Option[PlaceID]) (*Place, bool) {
	id, ok := ref.Get()
	if !ok {
		return nil, false
	}
	return c.places[id], true
}

func (c *Colony) resolveInsect(ref Option[InsectID]) (*Insect, bool) {
	id, ok := ref.Get()
	if !ok {
		return nil, false
	}
	i, ok := c.insects[id]
	return i, ok
}

// expire takes a spent insect out of its place and the arena. Calling it
// again for the same insect does nothing.
func (c *Colony) expire(i *Insect) {
	if _, ok := c.insects[i.ID]; !ok {
		return
	}
	where := ""
	if p, ok := c.placeOf(i); ok {
		where = p.Name
		p.RemoveInsect(i)
	}
	c.retire(i)
	c.log.Debug("expired", "kind", i.Name(), "id", i.ID, "place", where)
	c.emit(EventKill, where, i, "")
}

// retire drops an insect from the arena, along with any bee it was
// digesting.
func (c *Colony) retire(i *Insect) {
	if id, ok := i.held.Get(); ok {
		c.digest(id)
		i.held = None[InsectID]()
	}
	delete(c.insects, i.ID)
}

func (c *Colony) drown(p *Place, i *Insect) {
	c.retire(i)
	c.log.Debug("drowned", "kind", i.Name(), "place", p.Name)
	c.emit(EventDrown, p.Name, i, "")
}

// digest permanently removes a swallowed bee.
func (c *Colony) digest(id InsectID) {
	bee, ok := c.insects[id]
	if !ok {
		return
	}
	delete(c.insects, id)
	c.emit(EventDigest, "", bee, "")
}

// regurgitate returns an eater's held bee to the eater's place.
func (c *Colony) regurgitate(eater *Insect) {
	id, ok := eater.held.Get()
	if !ok {
		return
	}
	eater.held = None[InsectID]()
	bee, ok := c.insects[id]
	if !ok {
		return
	}
	place, ok := c.placeOf(eater)
	if !ok {
		c.digest(id)
		return
	}
	place.AddBee(bee)
}

func (c *Colony) emit(typ EventType, place string, i *Insect, msg string) {
	if c.rec == nil {
		return
	}
	e := Event{Turn: c.turn, Type: typ, Place: place, Message: msg}
	if i != nil {
		e.Insect = i.Name()
	}
	c.rec.Record(e)
}
