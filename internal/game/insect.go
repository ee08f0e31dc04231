package game

// InsectID addresses an insect in the colony arena.
type InsectID int

// Kind is the tagged variant of an insect.
type Kind int

const (
	KindGrower Kind = iota
	KindThrower
	KindEater
	KindScuba
	KindGuard
	KindBee
)

// String returns the type name used by front ends.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "unknown"
}

// IsAnt reports whether the kind is a defender.
func (k Kind) IsAnt() bool {
	return k != KindBee
}

// ParseKind looks up a deployable defender kind by name.
func ParseKind(name string) (Kind, bool) {
	for k, info := range kinds {
		if k.IsAnt() && info.name == name {
			return k, true
		}
	}
	return 0, false
}

// Status is a one-turn condition on a bee.
type Status int

const (
	StatusNone Status = iota
	StatusStuck
	StatusCold
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStuck:
		return "stuck"
	case StatusCold:
		return "cold"
	default:
		return "none"
	}
}

// Boost names seeded into every colony inventory.
const (
	BoostRange  = "range"
	BoostSticky = "sticky"
	BoostFreeze = "freeze"
	BoostBlast  = "blast"
)

// DefaultBoosts is the pre-seeded boost vocabulary, in grower band order.
var DefaultBoosts = []string{BoostRange, BoostSticky, BoostFreeze, BoostBlast}

// StartingBoosts returns the inventory a new colony opens with: one of each
// leaf boost and no blast.
func StartingBoosts() map[string]int {
	return map[string]int{
		BoostRange:  1,
		BoostSticky: 1,
		BoostFreeze: 1,
		BoostBlast:  0,
	}
}

// Insect is any unit on the board. Ant-only and bee-only fields are
// zero for the other side.
type Insect struct {
	ID    InsectID
	Kind  Kind
	Armor int
	Place Option[PlaceID]

	// Defender fields.
	Cost  int
	Boost Option[string]

	// Attacker fields.
	Damage int
	Status Status

	// Eater digestion.
	held        Option[InsectID]
	turnsEating int
}

// Name returns the insect's type name.
func (i *Insect) Name() string {
	return i.Kind.String()
}

// IsAnt reports whether the insect is a defender.
func (i *Insect) IsAnt() bool {
	return i.Kind.IsAnt()
}

// IsGuard reports whether the insect occupies the guard slot.
func (i *Insect) IsGuard() bool {
	return kinds[i.Kind].guard
}

// Alive reports whether the insect still has armor.
func (i *Insect) Alive() bool {
	return i.Armor > 0
}

// Holding returns the bee an eater is digesting.
func (i *Insect) Holding() (InsectID, bool) {
	return i.held.Get()
}

// TurnsEating returns an eater's digestion counter.
func (i *Insect) TurnsEating() int {
	return i.turnsEating
}

// kindInfo is the per-kind behavior table entry.
type kindInfo struct {
	name       string
	cost       int
	armor      int
	guard      bool
	waterproof bool

	act         func(c *Colony, self *Insect)
	reduceArmor func(c *Colony, self *Insect, amount int) bool
}

var kinds map[Kind]kindInfo

func init() {
	kinds = map[Kind]kindInfo{
		KindGrower:  {name: "grower", cost: 1, armor: 1, act: growerAct, reduceArmor: baseReduceArmor},
		KindThrower: {name: "thrower", cost: 4, armor: 1, act: throwerAct, reduceArmor: baseReduceArmor},
		KindEater:   {name: "eater", cost: 4, armor: 2, act: eaterAct, reduceArmor: eaterReduceArmor},
		KindScuba:   {name: "scuba", cost: 5, armor: 1, waterproof: true, act: throwerAct, reduceArmor: baseReduceArmor},
		KindGuard:   {name: "guard", cost: 4, armor: 2, guard: true, act: guardAct, reduceArmor: baseReduceArmor},
		KindBee:     {name: "bee", armor: 3, act: beeAct, reduceArmor: baseReduceArmor},
	}
}

// KindInfo describes a deployable defender for front ends.
type KindInfo struct {
	Kind  Kind
	Name  string
	Cost  int
	Armor int
}

// Kinds lists the deployable defender kinds in declaration order.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(kinds))
	for k := KindGrower; k < KindBee; k++ {
		info := kinds[k]
		out = append(out, KindInfo{Kind: k, Name: info.name, Cost: info.cost, Armor: info.armor})
	}
	return out
}

// baseReduceArmor subtracts armor and removes the insect from play once
// it is spent.
func baseReduceArmor(c *Colony, self *Insect, amount int) bool {
	self.Armor -= amount
	if self.Armor > 0 {
		return false
	}
	c.expire(self)
	return true
}
