package game

// growerBands maps cumulative roll thresholds to boost grants. Rolls below
// growerFoodBand add food; rolls at or above the last band do nothing.
var growerBands = []struct {
	upper float64
	boost string
}{
	{0.70, BoostRange},
	{0.80, BoostSticky},
	{0.90, BoostFreeze},
	{0.95, BoostBlast},
}

const growerFoodBand = 0.60

const (
	throwerReach        = 3
	throwerBoostedReach = 5
	blastDamage         = 10
	digestTurns         = 3
)

func growerAct(c *Colony, self *Insect) {
	self.Boost = None[string]()

	roll := c.rng.Float64()
	if roll < growerFoodBand {
		c.AddFood(1)
		return
	}
	for _, band := range growerBands {
		if roll < band.upper {
			c.DiscoverBoost(band.boost)
			return
		}
	}
}

// throwerAct serves both throwers and scubas. A boost is spent only by a
// throw that found a target.
func throwerAct(c *Colony, self *Insect) {
	place, ok := c.placeOf(self)
	if !ok {
		return
	}

	boost, boosted := self.Boost.Get()
	if boosted && boost == BoostBlast {
		for bee, ok := place.NearestBee(0, 0); ok; bee, ok = place.NearestBee(0, 0) {
			c.ReduceArmor(bee, blastDamage)
		}
		c.log.Debug("blast", "place", place.Name, "insect", self.ID)
		c.ReduceArmor(self, blastDamage)
		return
	}

	reach := throwerReach
	if boosted && boost == BoostRange {
		reach = throwerBoostedReach
	}
	if target, ok := place.NearestBee(reach, 0); ok {
		c.ReduceArmor(target, 1)
		if boosted {
			switch boost {
			case BoostSticky:
				target.Status = StatusStuck
			case BoostFreeze:
				target.Status = StatusCold
			}
		}
		self.Boost = None[string]()
	}
}

func eaterAct(c *Colony, self *Insect) {
	self.Boost = None[string]()

	if self.turnsEating == 0 {
		place, ok := c.placeOf(self)
		if !ok {
			return
		}
		bee, ok := place.NearestBee(0, 0)
		if !ok {
			return
		}
		place.RemoveBee(bee)
		self.held = Some(bee.ID)
		self.turnsEating = 1
		c.emit(EventSwallow, place.Name, bee, "eater swallowed a bee")
		return
	}

	self.turnsEating++
	if self.turnsEating > digestTurns {
		if id, ok := self.held.Get(); ok {
			c.digest(id)
		}
		self.held = None[InsectID]()
		self.turnsEating = 0
	}
}

// eaterReduceArmor spits the held bee back out when hit early in the meal.
// A surviving eater only does so on its first digestion turn; a dying one
// on either of the first two.
func eaterReduceArmor(c *Colony, self *Insect, amount int) bool {
	self.Armor -= amount
	if self.Armor > 0 {
		if self.turnsEating == 1 {
			c.regurgitate(self)
			self.turnsEating = digestTurns
		}
		return false
	}
	if self.turnsEating == 1 || self.turnsEating == 2 {
		c.regurgitate(self)
	}
	c.expire(self)
	return true
}

func guardAct(c *Colony, self *Insect) {
	self.Boost = None[string]()
}
