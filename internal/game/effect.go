package game

import "github.com/novafree/nova-server-go/internal/catalog"

// EffectKind names a primitive state mutation.
type EffectKind string

const (
	EffCredit        EffectKind = "credit"
	EffDebit         EffectKind = "debit"
	EffSpendDisc     EffectKind = "spend_disc"
	EffCreateShip    EffectKind = "create_ship"
	EffMoveShips     EffectKind = "move_ships"
	EffDestroyShip   EffectKind = "destroy_ship"
	EffSetHexOwner   EffectKind = "set_hex_owner"
	EffRevealHex     EffectKind = "reveal_hex"
	EffSpawnAncients EffectKind = "spawn_ancients"
	EffGrantTech     EffectKind = "grant_tech"
	EffSetBlueprint  EffectKind = "set_blueprint"
	EffPlaceCube     EffectKind = "place_cube"
	EffAwardVP       EffectKind = "award_vp"
	EffDrawDiscovery EffectKind = "draw_discovery"
	EffPass          EffectKind = "pass"
)

// Effect is one primitive mutation. A validator returns a fully-specified
// list of these; the engine applies them atomically. Only the fields
// relevant to Kind are set.
type Effect struct {
	Kind EffectKind

	Player   PlayerID
	Resource string
	Amount   int

	Ship  ShipID
	Ships []ShipID
	Class string
	HP    int

	Hex      HexID
	Slot     int
	CubeType string

	Tech  string
	Slots []string
}

// applyEffects applies a validated effect list to the state. Any failure is
// a ConsistencyFault: validation guaranteed applicability, so a miss here is
// an engine bug.
func (e *Engine) applyEffects(s *State, effects []Effect) error {
	for _, eff := range effects {
		if err := e.applyEffect(s, eff); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyEffect(s *State, eff Effect) error {
	switch eff.Kind {
	case EffCredit, EffDebit:
		p := s.Players[eff.Player]
		if p == nil {
			return faultf(string(eff.Kind), "player %d not found", eff.Player)
		}
		amount := eff.Amount
		if eff.Kind == EffDebit {
			amount = -amount
		}
		switch eff.Resource {
		case ResourceMoney:
			p.Money += amount
		case ResourceScience:
			p.Science += amount
		case ResourceMaterials:
			p.Materials += amount
		default:
			return faultf(string(eff.Kind), "unknown resource %q", eff.Resource)
		}
		if p.Money < 0 || p.Science < 0 || p.Materials < 0 {
			return faultf(string(eff.Kind), "player %d balance went negative", eff.Player)
		}

	case EffSpendDisc:
		p := s.Players[eff.Player]
		if p == nil {
			return faultf("spend_disc", "player %d not found", eff.Player)
		}
		if p.DiscsFree() <= 0 {
			return faultf("spend_disc", "player %d has no free discs", eff.Player)
		}
		p.DiscsUsed++

	case EffCreateShip:
		if _, ok := s.Hexes[eff.Hex]; !ok && eff.Hex != 0 {
			return faultf("create_ship", "hex %d not found", eff.Hex)
		}
		s.addShip(eff.Player, eff.Class, eff.Hex, eff.HP, eff.Player == NoPlayer, false)

	case EffMoveShips:
		ids := eff.Ships
		if len(ids) == 0 && eff.Ship != 0 {
			ids = []ShipID{eff.Ship}
		}
		for _, id := range ids {
			ship := s.Ships[id]
			if ship == nil {
				return faultf("move_ships", "ship %d not found", id)
			}
			s.moveShip(ship, eff.Hex)
		}

	case EffDestroyShip:
		ship := s.Ships[eff.Ship]
		if ship == nil {
			return faultf("destroy_ship", "ship %d not found", eff.Ship)
		}
		s.removeShip(ship)

	case EffSetHexOwner:
		h := s.Hexes[eff.Hex]
		if h == nil {
			return faultf("set_hex_owner", "hex %d not found", eff.Hex)
		}
		h.Owner = eff.Player
		if eff.Player != NoPlayer {
			s.claimSeq++
			h.ClaimedSeq = s.claimSeq
		}

	case EffRevealHex:
		h := s.Hexes[eff.Hex]
		if h == nil {
			return faultf("reveal_hex", "hex %d not found", eff.Hex)
		}
		if h.Explored {
			return faultf("reveal_hex", "hex %d already explored", eff.Hex)
		}
		tile, err := e.catalog.Tile(h.Tile)
		if err != nil {
			return faultf("reveal_hex", "hex %d: %v", eff.Hex, err)
		}
		h.Explored = true
		h.Planets = append(h.Planets[:0], tile.Planets...)
		h.Wormholes = catalog.RotatedWormholes(tile, h.Rotation)

	case EffSpawnAncients:
		h := s.Hexes[eff.Hex]
		if h == nil {
			return faultf("spawn_ancients", "hex %d not found", eff.Hex)
		}
		tile, err := e.catalog.Tile(h.Tile)
		if err != nil {
			return faultf("spawn_ancients", "hex %d: %v", eff.Hex, err)
		}
		for i := 0; i < eff.Amount; i++ {
			hp := 1
			if tile.Guardian {
				hp = 2
			}
			ship := s.addShip(NoPlayer, "cruiser", eff.Hex, hp, true, tile.Guardian)
			ship.Guardian = tile.Guardian
		}

	case EffGrantTech:
		p := s.Players[eff.Player]
		if p == nil {
			return faultf("grant_tech", "player %d not found", eff.Player)
		}
		if p.Techs[eff.Tech] {
			return faultf("grant_tech", "player %d already owns %s", eff.Player, eff.Tech)
		}
		p.Techs[eff.Tech] = true
		tech, err := e.catalog.Technology(eff.Tech)
		if err != nil {
			return faultf("grant_tech", "%v", err)
		}
		// One-time income effects resolve immediately; recurring income
		// bonuses are evaluated during upkeep from the tech record.
		for _, fx := range tech.Effects {
			if fx.EffectType == "income_bonus" && fx.Once {
				if err := e.applyEffect(s, Effect{Kind: EffCredit, Player: eff.Player, Resource: fx.Resource, Amount: fx.Flat}); err != nil {
					return err
				}
			}
		}

	case EffSetBlueprint:
		p := s.Players[eff.Player]
		if p == nil {
			return faultf("set_blueprint", "player %d not found", eff.Player)
		}
		p.Blueprints[eff.Class] = append([]string(nil), eff.Slots...)

	case EffPlaceCube:
		h := s.Hexes[eff.Hex]
		if h == nil {
			return faultf("place_cube", "hex %d not found", eff.Hex)
		}
		p := s.Players[eff.Player]
		if p == nil {
			return faultf("place_cube", "player %d not found", eff.Player)
		}
		if _, occupied := h.Population[eff.Slot]; occupied {
			return faultf("place_cube", "hex %d slot %d occupied", eff.Hex, eff.Slot)
		}
		if p.Population[eff.CubeType] <= 0 {
			return faultf("place_cube", "player %d has no %s cubes", eff.Player, eff.CubeType)
		}
		p.Population[eff.CubeType]--
		if h.Population == nil {
			h.Population = make(map[int]PopCube)
		}
		h.Population[eff.Slot] = PopCube{Owner: eff.Player, Type: eff.CubeType}

	case EffAwardVP:
		p := s.Players[eff.Player]
		if p == nil {
			return faultf("award_vp", "player %d not found", eff.Player)
		}
		p.VP += eff.Amount

	case EffDrawDiscovery:
		if s.DeckPos >= len(s.DiscoveryDeck) {
			return nil // deck exhausted; explore proceeds without a reward
		}
		tileID := s.DiscoveryDeck[s.DeckPos]
		s.DeckPos++
		disc, err := e.catalog.Discovery(tileID)
		if err != nil {
			return faultf("draw_discovery", "%v", err)
		}
		switch disc.EffectType {
		case ResourceMoney, ResourceScience, ResourceMaterials:
			return e.applyEffect(s, Effect{Kind: EffCredit, Player: eff.Player, Resource: disc.EffectType, Amount: disc.EffectValue})
		case "vp":
			return e.applyEffect(s, Effect{Kind: EffAwardVP, Player: eff.Player, Amount: disc.EffectValue})
		case "derelict":
			// A reprogrammed cruiser joins the explorer's fleet.
			s.addShip(eff.Player, "cruiser", eff.Hex, 1, false, false)
		}

	case EffPass:
		s.Passed[eff.Player] = true

	default:
		return faultf("apply", "unknown effect kind %q", eff.Kind)
	}
	return nil
}
