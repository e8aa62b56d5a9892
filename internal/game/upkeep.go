package game

// runUpkeep settles the round economy for every player: colony income and
// technology bonuses are credited, then the influence upkeep bill is paid.
// A player who cannot cover the bill abandons colonies until they can.
func (e *Engine) runUpkeep(s *State) {
	for _, id := range s.TurnOrder {
		p := s.Players[id]
		if p == nil {
			continue
		}
		income := e.incomeFor(s, p)
		p.Money += income[ResourceMoney]
		p.Science += income[ResourceScience]
		p.Materials += income[ResourceMaterials]

		bill := p.DiscsUsed * e.rules.UpkeepPerDisc
		if p.Money >= bill {
			p.Money -= bill
			continue
		}
		e.bankrupt(s, p, bill)
	}
}

// incomeFor totals a player's per-round production: one unit per seated
// population cube of the matching resource type (two on an advanced
// planet), plus flat technology income bonuses.
func (e *Engine) incomeFor(s *State, p *Player) map[string]int {
	income := map[string]int{}
	for _, h := range s.Hexes {
		if h.Owner != p.ID {
			continue
		}
		for slot, cube := range h.Population {
			if cube.Owner != p.ID {
				continue
			}
			yield := 1
			if slot < len(h.Planets) && h.Planets[slot].Advanced {
				yield = 2
			}
			income[cube.Type] += yield
		}
	}
	for id := range p.Techs {
		tech, err := e.catalog.Technology(id)
		if err != nil {
			continue
		}
		for _, fx := range tech.Effects {
			if fx.EffectType == "income_bonus" && !fx.Once {
				income[fx.Resource] += fx.Flat
			}
		}
	}
	return income
}

// bankrupt releases colonies until the upkeep bill becomes payable: lowest
// income value first, ties broken by most recent claim. Released hexes
// return their disc and population cubes. If every colony is gone and the
// bill still exceeds the balance, the balance is zeroed out.
func (e *Engine) bankrupt(s *State, p *Player, bill int) {
	for p.Money < bill {
		h := e.cheapestColony(s, p)
		if h == nil {
			break
		}
		e.releaseColony(s, p, h)
		bill = p.DiscsUsed * e.rules.UpkeepPerDisc
	}
	if p.Money >= bill {
		p.Money -= bill
	} else {
		p.Money = 0
	}
}

// colonyValue is a hex's per-round income for its owner.
func (e *Engine) colonyValue(h *Hex, player PlayerID) int {
	value := 0
	for slot, cube := range h.Population {
		if cube.Owner != player {
			continue
		}
		if slot < len(h.Planets) && h.Planets[slot].Advanced {
			value += 2
		} else {
			value++
		}
	}
	return value
}

// cheapestColony returns the player's lowest-value colony, preferring the
// most recently claimed among equals, then the lowest hex ID.
func (e *Engine) cheapestColony(s *State, p *Player) *Hex {
	var pick *Hex
	pickValue := 0
	for _, h := range s.Hexes {
		if h.Owner != p.ID {
			continue
		}
		value := e.colonyValue(h, p.ID)
		switch {
		case pick == nil,
			value < pickValue,
			value == pickValue && h.ClaimedSeq > pick.ClaimedSeq,
			value == pickValue && h.ClaimedSeq == pick.ClaimedSeq && h.ID < pick.ID:
			pick = h
			pickValue = value
		}
	}
	return pick
}

func (e *Engine) releaseColony(s *State, p *Player, h *Hex) {
	h.Owner = NoPlayer
	if p.DiscsUsed > 0 {
		p.DiscsUsed--
	}
	for slot, cube := range h.Population {
		if cube.Owner == p.ID {
			p.Population[cube.Type]++
			delete(h.Population, slot)
		}
	}
}
