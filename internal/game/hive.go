package game

// Hive stages bee waves and releases them into the tunnel entries on their
// scheduled turn. It is never reached by walking a tunnel.
type Hive struct {
	*Place

	BeeArmor  int
	BeeDamage int

	waves map[int][]InsectID
}

// AddWave creates count bees in the hive, due to invade on turn.
func (h *Hive) AddWave(turn, count int) *Hive {
	for i := 0; i < count; i++ {
		bee := h.colony.newInsect(KindBee)
		bee.Armor = h.BeeArmor
		bee.Damage = h.BeeDamage
		h.AddBee(bee)
		h.waves[turn] = append(h.waves[turn], bee.ID)
	}
	return h
}

// Invade moves the wave scheduled for turn, if any, to randomly chosen
// tunnel entries and returns the bees that left.
func (h *Hive) Invade(turn int) []*Insect {
	ids, ok := h.waves[turn]
	if !ok {
		return nil
	}
	delete(h.waves, turn)

	entries := h.colony.Entries()
	released := make([]*Insect, 0, len(ids))
	for _, id := range ids {
		bee, ok := h.colony.insects[id]
		if !ok {
			continue
		}
		h.RemoveBee(bee)
		entry := entries[h.colony.rng.Intn(len(entries))]
		entry.AddBee(bee)
		released = append(released, bee)
	}
	h.colony.log.Debug("wave released", "turn", turn, "bees", len(released))
	h.colony.emit(EventWave, h.Name, nil, "wave of "+itoa(len(released))+" bees")
	return released
}

// PendingWaves returns how many scheduled waves have not yet invaded.
func (h *Hive) PendingWaves() int {
	return len(h.waves)
}
