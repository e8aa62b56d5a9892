package game

// finishGame runs the final tally and marks the game finished. Technology
// VP tiles and held sectors score now; combat and discovery VP accrued
// during play. Ties break by money balance, then by lower player ID.
func (e *Engine) finishGame(s *State) {
	for _, h := range s.Hexes {
		if h.Owner == NoPlayer {
			continue
		}
		if p := s.Players[h.Owner]; p != nil {
			p.VP++
			p.VPBreakdown["sectors"]++
		}
	}
	for _, p := range s.Players {
		for id := range p.Techs {
			tech, err := e.catalog.Technology(id)
			if err != nil {
				continue
			}
			for _, fx := range tech.Effects {
				if fx.EffectType == "vp" && fx.VP > 0 {
					p.VP += fx.VP
					p.VPBreakdown["technology"] += fx.VP
				}
			}
		}
	}

	var winner *Player
	for _, id := range s.TurnOrder {
		p := s.Players[id]
		if p == nil {
			continue
		}
		if winner == nil || beats(p, winner) {
			winner = p
		}
	}
	if winner != nil {
		s.Winner = winner.ID
	}
	s.Phase = PhaseFinished
}

func beats(a, b *Player) bool {
	if a.VP != b.VP {
		return a.VP > b.VP
	}
	if a.Money != b.Money {
		return a.Money > b.Money
	}
	return a.ID < b.ID
}
