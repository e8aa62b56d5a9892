package game

import (
	"github.com/novafree/nova-server-go/internal/catalog"
)

// validate checks every precondition of an action against the current state
// and, when legal, returns the complete effect list that realizes it. It
// never mutates state.
func (e *Engine) validate(s *State, a *Action) ([]Effect, *Rejection) {
	if s.Phase != PhaseStrategy {
		return nil, reject(ReasonWrongPhase, "phase is %s", s.Phase)
	}
	p := s.Players[a.Player]
	if p == nil {
		return nil, reject(ReasonUnknownPlayer, "player %d", a.Player)
	}
	if s.Passed[a.Player] {
		return nil, reject(ReasonAlreadyPassed, "player %d has passed this round", a.Player)
	}
	if len(s.TurnOrder) == 0 || s.TurnOrder[s.ActiveIdx] != a.Player {
		return nil, reject(ReasonNotYourTurn, "active player is %d", s.TurnOrder[s.ActiveIdx])
	}
	if !a.payloadSet() {
		return nil, reject(ReasonBadPayload, "missing %s payload", a.Type)
	}

	switch a.Type {
	case ActionExplore:
		return e.validateExplore(s, p, a.Explore)
	case ActionInfluence:
		return e.validateInfluence(s, p, a.Influence)
	case ActionBuild:
		return e.validateBuild(s, p, a.Build)
	case ActionResearch:
		return e.validateResearch(s, p, a.Research)
	case ActionMove:
		return e.validateMove(s, p, a.Move)
	case ActionUpgrade:
		return e.validateUpgrade(s, p, a.Upgrade)
	case ActionPass:
		return e.validatePass(s, p)
	}
	return nil, reject(ReasonBadPayload, "unknown action type %q", a.Type)
}

// validateExplore checks that the exploring ship sits next to the target and
// its hex has a wormhole facing it. The target's own wormholes are unknown
// until revealed, so only the near side of the link is required.
func (e *Engine) validateExplore(s *State, p *Player, pl *ExplorePayload) ([]Effect, *Rejection) {
	ship := s.Ships[pl.Ship]
	if ship == nil {
		return nil, reject(ReasonUnknownShip, "ship %d", pl.Ship)
	}
	if ship.Owner != p.ID {
		return nil, reject(ReasonNotYourShip, "ship %d belongs to player %d", ship.ID, ship.Owner)
	}
	if ship.Hex == 0 {
		return nil, reject(ReasonNoShipPresent, "ship %d is not on the board", ship.ID)
	}
	target := s.Hexes[pl.TargetHex]
	if target == nil {
		return nil, reject(ReasonUnknownHex, "hex %d", pl.TargetHex)
	}
	if target.Explored {
		return nil, reject(ReasonHexExplored, "hex %d", target.ID)
	}
	from := s.Hexes[ship.Hex]
	dir, adjacent := direction(from.Q, from.R, target.Q, target.R)
	if !adjacent {
		return nil, reject(ReasonOutOfRange, "hex %d is not adjacent to ship hex %d", target.ID, from.ID)
	}
	if !containsDir(from.Wormholes, dir) {
		return nil, reject(ReasonDisconnectedPath, "no wormhole from hex %d toward hex %d", from.ID, target.ID)
	}

	tile, err := e.catalog.Tile(target.Tile)
	if err != nil {
		return nil, reject(ReasonUnknownHex, "hex %d has no tile template", target.ID)
	}
	effects := []Effect{{Kind: EffRevealHex, Hex: target.ID}}
	if tile.AncientShips > 0 {
		effects = append(effects, Effect{Kind: EffSpawnAncients, Hex: target.ID, Amount: tile.AncientShips})
	} else if tile.HasDiscovery {
		// Defended discoveries stay on the tile until the ancients fall.
		effects = append(effects, Effect{Kind: EffDrawDiscovery, Player: p.ID, Hex: target.ID})
	}
	return effects, nil
}

// validateInfluence checks a claim on an explored hex the player can reach,
// spending one influence disc and optionally seating a population cube. On
// a hex the player already owns, only a cube is placed.
func (e *Engine) validateInfluence(s *State, p *Player, pl *InfluencePayload) ([]Effect, *Rejection) {
	h := s.Hexes[pl.Hex]
	if h == nil {
		return nil, reject(ReasonUnknownHex, "hex %d", pl.Hex)
	}
	if !h.Explored {
		return nil, reject(ReasonHexUnexplored, "hex %d", h.ID)
	}
	if h.Owner != NoPlayer && h.Owner != p.ID {
		return nil, reject(ReasonHexAlreadyOwned, "hex %d is owned by player %d", h.ID, h.Owner)
	}
	claiming := h.Owner == NoPlayer
	if claiming {
		if p.DiscsFree() <= 0 {
			return nil, reject(ReasonNoInfluenceDiscs, "player %d has placed all discs", p.ID)
		}
		for _, ship := range s.ShipsInHex(h.ID) {
			if factionOf(ship) != Faction(p.ID) {
				return nil, reject(ReasonHexNotOwned, "hex %d holds hostile ships", h.ID)
			}
		}
		if !e.canReach(s, p, h) {
			return nil, reject(ReasonDisconnectedPath, "hex %d is not connected to player %d's territory", h.ID, p.ID)
		}
	} else if pl.PlanetSlot < 0 {
		return nil, reject(ReasonBadPayload, "hex %d is already owned and no planet slot named", h.ID)
	}

	var effects []Effect
	if claiming {
		effects = append(effects,
			Effect{Kind: EffSpendDisc, Player: p.ID},
			Effect{Kind: EffSetHexOwner, Player: p.ID, Hex: h.ID},
		)
	}
	if pl.PlanetSlot >= 0 {
		if pl.PlanetSlot >= len(h.Planets) {
			return nil, reject(ReasonSlotMismatch, "hex %d has %d planets", h.ID, len(h.Planets))
		}
		if _, occupied := h.Population[pl.PlanetSlot]; occupied {
			return nil, reject(ReasonSlotOccupied, "hex %d planet %d", h.ID, pl.PlanetSlot)
		}
		planet := h.Planets[pl.PlanetSlot]
		if p.Population[planet.Type] <= 0 {
			return nil, reject(ReasonNoPopulationCube, "player %d has no %s cubes", p.ID, planet.Type)
		}
		effects = append(effects, Effect{
			Kind: EffPlaceCube, Player: p.ID, Hex: h.ID,
			Slot: pl.PlanetSlot, CubeType: planet.Type,
		})
	}
	return effects, nil
}

// canReach reports whether the player holds a ship in the hex or the hex is
// one wormhole hop from a hex they already own.
func (e *Engine) canReach(s *State, p *Player, h *Hex) bool {
	for _, ship := range s.ShipsInHex(h.ID) {
		if ship.Owner == p.ID {
			return true
		}
	}
	conn := s.buildConnectivity(h.ID)
	for _, other := range s.Hexes {
		if other.Owner != p.ID || !other.Explored {
			continue
		}
		if n, ok := conn.steps(other.ID, h.ID); ok && n == 1 {
			return true
		}
	}
	return false
}

// validateBuild checks a ship construction: known class, affordable, placed
// in owned territory (or any hex with a friendly ship once nanorobots'
// build-anywhere is researched).
func (e *Engine) validateBuild(s *State, p *Player, pl *BuildPayload) ([]Effect, *Rejection) {
	class, err := e.catalog.ShipClass(pl.Class)
	if err != nil {
		return nil, reject(ReasonUnknownShipClass, "%q", pl.Class)
	}
	h := s.Hexes[pl.Hex]
	if h == nil {
		return nil, reject(ReasonUnknownHex, "hex %d", pl.Hex)
	}
	if !h.Explored {
		return nil, reject(ReasonHexUnexplored, "hex %d", h.ID)
	}
	if h.Owner != p.ID && !e.buildAnywhere(s, p, h) {
		return nil, reject(ReasonNoBuildLocation, "hex %d is not player %d territory", h.ID, p.ID)
	}
	if p.Materials < class.BuildCost {
		return nil, reject(ReasonInsufficientMaterials, "need %d materials, have %d", class.BuildCost, p.Materials)
	}
	if len(s.ShipsInHex(h.ID)) >= e.rules.MaxShipsPerHex {
		return nil, reject(ReasonHexFull, "hex %d already holds %d ships", h.ID, e.rules.MaxShipsPerHex)
	}
	return []Effect{
		{Kind: EffDebit, Player: p.ID, Resource: ResourceMaterials, Amount: class.BuildCost},
		{Kind: EffCreateShip, Player: p.ID, Class: class.ID, Hex: h.ID, HP: e.hullOf(p, class.ID)},
	}, nil
}

func (e *Engine) buildAnywhere(s *State, p *Player, h *Hex) bool {
	if !e.hasSpecial(p, "build_anywhere") {
		return false
	}
	for _, ship := range s.ShipsInHex(h.ID) {
		if ship.Owner == p.ID {
			return true
		}
	}
	return false
}

func (e *Engine) hasSpecial(p *Player, special string) bool {
	for id := range p.Techs {
		tech, err := e.catalog.Technology(id)
		if err != nil {
			continue
		}
		for _, fx := range tech.Effects {
			if fx.EffectType == "special" && fx.Special == special {
				return true
			}
		}
	}
	return false
}

// validateResearch checks tech acquisition: researchable, unowned,
// prerequisites met, science sufficient after the same-category discount.
func (e *Engine) validateResearch(s *State, p *Player, pl *ResearchPayload) ([]Effect, *Rejection) {
	tech, err := e.catalog.Technology(pl.Tech)
	if err != nil {
		return nil, reject(ReasonUnknownTechnology, "%q", pl.Tech)
	}
	if !tech.Researchable {
		return nil, reject(ReasonNotResearchable, "%s is discovery-only", tech.ID)
	}
	if p.Techs[tech.ID] {
		return nil, reject(ReasonTechAlreadyOwned, "%s", tech.ID)
	}
	for _, prereq := range tech.Prerequisites {
		if !p.Techs[prereq] {
			return nil, reject(ReasonMissingPrerequisite, "%s requires %s", tech.ID, prereq)
		}
	}
	cost := catalog.EffectiveCost(tech, e.catalog.OwnedInCategory(p.Techs, tech.Category))
	if p.Science < cost {
		return nil, reject(ReasonInsufficientScience, "need %d science, have %d", cost, p.Science)
	}

	var effects []Effect
	if cost > 0 {
		effects = append(effects, Effect{Kind: EffDebit, Player: p.ID, Resource: ResourceScience, Amount: cost})
	}
	return append(effects, Effect{Kind: EffGrantTech, Player: p.ID, Tech: tech.ID}), nil
}

// validateMove checks a fleet move: owned mobile ships sharing an origin,
// a wormhole-linked path through explored hexes, within every ship's drive
// rating.
func (e *Engine) validateMove(s *State, p *Player, pl *MovePayload) ([]Effect, *Rejection) {
	if len(pl.Ships) == 0 {
		return nil, reject(ReasonBadPayload, "no ships named")
	}
	if len(pl.Path) == 0 {
		return nil, reject(ReasonEmptyPath, "no path given")
	}

	var origin HexID
	for _, id := range pl.Ships {
		ship := s.Ships[id]
		if ship == nil {
			return nil, reject(ReasonUnknownShip, "ship %d", id)
		}
		if ship.Owner != p.ID {
			return nil, reject(ReasonNotYourShip, "ship %d belongs to player %d", id, ship.Owner)
		}
		if ship.Hex == 0 {
			return nil, reject(ReasonNoShipPresent, "ship %d is not on the board", id)
		}
		if origin == 0 {
			origin = ship.Hex
		} else if ship.Hex != origin {
			return nil, reject(ReasonBadPayload, "ships are not in one hex")
		}
		class, err := e.catalog.ShipClass(ship.Class)
		if err != nil || !class.CanMove {
			return nil, reject(ReasonImmobileShip, "ship %d (%s) cannot move", id, ship.Class)
		}
		if drive := e.driveOf(p, ship.Class); drive < len(pl.Path) {
			return nil, reject(ReasonOutOfRange, "ship %d drive %d < path length %d", id, drive, len(pl.Path))
		}
	}

	prev := s.Hexes[origin]
	for _, hexID := range pl.Path {
		next := s.Hexes[hexID]
		if next == nil {
			return nil, reject(ReasonUnknownHex, "hex %d", hexID)
		}
		if !next.Explored {
			return nil, reject(ReasonHexUnexplored, "hex %d", hexID)
		}
		if !linked(prev, next) {
			return nil, reject(ReasonDisconnectedPath, "no wormhole link from hex %d to hex %d", prev.ID, next.ID)
		}
		prev = next
	}

	dest := pl.Path[len(pl.Path)-1]
	return []Effect{{Kind: EffMoveShips, Ships: append([]ShipID(nil), pl.Ships...), Hex: dest}}, nil
}

// validateUpgrade checks a blueprint rewrite: right slot count, every part
// known and unlocked, power balance non-negative, and a drive present on
// mobile classes (none on immobile ones).
func (e *Engine) validateUpgrade(s *State, p *Player, pl *UpgradePayload) ([]Effect, *Rejection) {
	class, err := e.catalog.ShipClass(pl.Class)
	if err != nil {
		return nil, reject(ReasonUnknownShipClass, "%q", pl.Class)
	}
	if len(pl.Slots) != class.SlotCount {
		return nil, reject(ReasonBadSlotCount, "%s has %d slots, got %d", class.ID, class.SlotCount, len(pl.Slots))
	}

	drives := 0
	for _, slot := range pl.Slots {
		if slot == "" {
			continue
		}
		comp, err := e.catalog.Component(slot)
		if err != nil {
			return nil, reject(ReasonUnknownComponent, "%q", slot)
		}
		if comp.RequiresTech != "" && !p.Techs[comp.RequiresTech] {
			return nil, reject(ReasonMissingTechnology, "%s requires %s", comp.ID, comp.RequiresTech)
		}
		if comp.Category == catalog.CategoryDrive {
			drives++
		}
	}
	if class.CanMove && class.ID != "colony_ship" && drives == 0 {
		return nil, reject(ReasonInvalidBlueprint, "%s needs at least one drive", class.ID)
	}
	if !class.CanMove && drives > 0 {
		return nil, reject(ReasonInvalidBlueprint, "%s cannot mount drives", class.ID)
	}
	if e.catalog.PowerBalance(pl.Slots) < 0 {
		return nil, reject(ReasonPowerDeficit, "blueprint draws more power than it generates")
	}

	return []Effect{{Kind: EffSetBlueprint, Player: p.ID, Class: class.ID, Slots: pl.Slots}}, nil
}

// validatePass marks the player out for the round. Passing places an
// influence disc when one remains; a player out of discs may still pass.
func (e *Engine) validatePass(s *State, p *Player) ([]Effect, *Rejection) {
	effects := []Effect{{Kind: EffPass, Player: p.ID}}
	if p.DiscsFree() > 0 {
		effects = append([]Effect{{Kind: EffSpendDisc, Player: p.ID}}, effects...)
	}
	return effects, nil
}
