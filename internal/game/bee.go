package game

// beeAct stings the defender in front of it or moves toward the queen.
// Status lasts exactly one action.
func beeAct(c *Colony, self *Insect) {
	defer func() { self.Status = StatusNone }()

	place, ok := c.placeOf(self)
	if !ok {
		return
	}
	// A blocked bee never advances; cold only stops the sting.
	if target, ok := place.Defender(); ok {
		if self.Status != StatusCold {
			c.log.Debug("sting", "place", place.Name, "bee", self.ID, "target", target.Name(), "damage", self.Damage)
			c.ReduceArmor(target, self.Damage)
		}
		return
	}
	if self.Armor > 0 && self.Status != StatusStuck {
		place.AdvanceBee(self)
	}
}
