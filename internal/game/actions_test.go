package game

import (
	"testing"

	"github.com/novafree/nova-server-go/internal/catalog"
)

// frontierGame wires a hand-built state into an engine: one owned, explored
// staging hex with a ship, and an unexplored neighbor of the given tile.
func frontierGame(t *testing.T, e *Engine, tile string) (*State, PlayerID, *Ship, HexID) {
	t.Helper()
	s := newState("frontier")
	id, err := e.addPlayer(s, "Alice", "terran")
	if err != nil {
		t.Fatalf("failed to add player: %v", err)
	}
	staging := e.placeHex(s, 0, 0, "homeworld", 0)
	staging.Explored = true
	staging.Owner = id
	staging.Wormholes = []int{0, 1, 2, 3, 4, 5}
	frontier := e.placeHex(s, 1, 0, tile, 0)

	ship := s.addShip(id, "interceptor", staging.ID, 1, false, false)
	s.Round = 1
	s.Phase = PhaseStrategy
	s.resetRound()

	e.games["frontier"] = &gameInstance{state: s}
	return s, id, ship, frontier.ID
}

func TestExploreRevealsTileAndDrawsDiscovery(t *testing.T) {
	e := newTestEngine(t)
	// outer_1 holds no ancients and carries a discovery.
	s, pid, ship, frontier := frontierGame(t, e, "outer_1")
	s.DiscoveryDeck = []string{"disc_money_3"}

	outcome, err := e.SubmitAction("frontier", Action{
		Player:  pid,
		Type:    ActionExplore,
		Explore: &ExplorePayload{Ship: ship.ID, TargetHex: frontier},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection != nil {
		t.Fatalf("explore rejected: %s", outcome.Rejection)
	}

	s = gameState(t, e, "frontier")
	h := s.Hexes[frontier]
	if !h.Explored {
		t.Fatal("target hex not revealed")
	}
	if len(h.Planets) != 1 || h.Planets[0].Type != ResourceMaterials {
		t.Fatalf("tile planets not copied: %+v", h.Planets)
	}
	if len(h.Wormholes) == 0 {
		t.Fatal("tile wormholes not copied")
	}
	if got := s.Players[pid].Money; got != 6 {
		t.Fatalf("expected 3+3 money from the discovery, got %d", got)
	}
	if s.DeckPos != 1 {
		t.Fatalf("discovery deck position not advanced: %d", s.DeckPos)
	}
}

func TestExploreDefendedTileSpawnsAncientsAndHoldsDiscovery(t *testing.T) {
	e := newTestEngine(t)
	// inner_2 holds one ancient ship defending its discovery.
	s, pid, ship, frontier := frontierGame(t, e, "inner_2")
	s.DiscoveryDeck = []string{"disc_money_3"}

	outcome, err := e.SubmitAction("frontier", Action{
		Player:  pid,
		Type:    ActionExplore,
		Explore: &ExplorePayload{Ship: ship.ID, TargetHex: frontier},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection != nil {
		t.Fatalf("explore rejected: %s", outcome.Rejection)
	}

	s = gameState(t, e, "frontier")
	ancients := 0
	for _, sh := range s.ShipsInHex(frontier) {
		if sh.Ancient {
			ancients++
		}
	}
	if ancients != 1 {
		t.Fatalf("expected 1 ancient defender, got %d", ancients)
	}
	if s.DeckPos != 0 {
		t.Fatal("defended discovery was drawn")
	}
	if got := s.Players[pid].Money; got != 3 {
		t.Fatalf("money changed on a defended explore: %d", got)
	}
}

func TestExploreRequiresNearSideWormhole(t *testing.T) {
	e := newTestEngine(t)
	s, pid, ship, frontier := frontierGame(t, e, "outer_1")
	// Close the staging hex's east-facing wormhole.
	s.Hexes[ship.Hex].Wormholes = []int{1, 2, 3, 4, 5}

	outcome, err := e.SubmitAction("frontier", Action{
		Player:  pid,
		Type:    ActionExplore,
		Explore: &ExplorePayload{Ship: ship.ID, TargetHex: frontier},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonDisconnectedPath {
		t.Fatalf("expected disconnected_path, got %v", outcome.Rejection)
	}
}

func TestInfluenceClaimsHexAndSeatsCube(t *testing.T) {
	e := newTestEngine(t)
	s, pid, _, frontier := frontierGame(t, e, "inner_1")
	// Reveal the frontier by hand: inner_1 has money and science planets
	// and wormholes on the shared edge.
	h := s.Hexes[frontier]
	tile, err := e.catalog.Tile("inner_1")
	if err != nil {
		t.Fatalf("tile lookup failed: %v", err)
	}
	h.Explored = true
	h.Planets = tile.Planets
	h.Wormholes = tile.Wormholes

	before := s.Players[pid].Population[ResourceMoney]
	outcome, err := e.SubmitAction("frontier", Action{
		Player:    pid,
		Type:      ActionInfluence,
		Influence: &InfluencePayload{Hex: frontier, PlanetSlot: 0},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection != nil {
		t.Fatalf("influence rejected: %s", outcome.Rejection)
	}

	s = gameState(t, e, "frontier")
	h = s.Hexes[frontier]
	if h.Owner != pid {
		t.Fatalf("hex not claimed: owner %d", h.Owner)
	}
	if h.ClaimedSeq == 0 {
		t.Fatal("claim sequence not stamped")
	}
	cube, ok := h.Population[0]
	if !ok || cube.Owner != pid || cube.Type != ResourceMoney {
		t.Fatalf("cube not seated: %+v", cube)
	}
	p := s.Players[pid]
	if p.Population[ResourceMoney] != before-1 {
		t.Fatalf("cube supply not decremented: %d", p.Population[ResourceMoney])
	}
	if p.DiscsUsed != 1 {
		t.Fatalf("expected 1 disc placed, got %d", p.DiscsUsed)
	}
}

func TestInfluenceSeatsCubeOnOwnedHex(t *testing.T) {
	e := newTestEngine(t)
	s, pid, ship, _ := frontierGame(t, e, "inner_1")
	staging := s.Hexes[ship.Hex]
	staging.Planets = []catalog.Planet{{Type: ResourceScience}}

	outcome, err := e.SubmitAction("frontier", Action{
		Player:    pid,
		Type:      ActionInfluence,
		Influence: &InfluencePayload{Hex: staging.ID, PlanetSlot: 0},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection != nil {
		t.Fatalf("influence rejected: %s", outcome.Rejection)
	}

	s = gameState(t, e, "frontier")
	p := s.Players[pid]
	// No second disc goes down on a hex the player already holds.
	if p.DiscsUsed != 0 {
		t.Fatalf("disc spent on an owned hex: %d", p.DiscsUsed)
	}
	cube, ok := s.Hexes[staging.ID].Population[0]
	if !ok || cube.Type != ResourceScience {
		t.Fatalf("cube not seated: %+v", cube)
	}
}

func TestInfluenceOwnedHexWithoutSlotRejected(t *testing.T) {
	e := newTestEngine(t)
	s, pid, ship, _ := frontierGame(t, e, "inner_1")

	outcome, err := e.SubmitAction("frontier", Action{
		Player:    pid,
		Type:      ActionInfluence,
		Influence: &InfluencePayload{Hex: s.Hexes[ship.Hex].ID, PlanetSlot: -1},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonBadPayload {
		t.Fatalf("expected bad_payload, got %v", outcome.Rejection)
	}
}

func TestInfluenceUnreachableHexRejected(t *testing.T) {
	e := newTestEngine(t)
	s, pid, _, frontier := frontierGame(t, e, "inner_1")
	h := s.Hexes[frontier]
	h.Explored = true
	h.Wormholes = nil // no link back to the staging hex, no ship present

	outcome, err := e.SubmitAction("frontier", Action{
		Player:    pid,
		Type:      ActionInfluence,
		Influence: &InfluencePayload{Hex: frontier, PlanetSlot: -1},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonDisconnectedPath {
		t.Fatalf("expected disconnected_path, got %v", outcome.Rejection)
	}
}

func TestInfluenceWithoutDiscsRejected(t *testing.T) {
	e := newTestEngine(t)
	s, pid, _, frontier := frontierGame(t, e, "inner_1")
	h := s.Hexes[frontier]
	tile, _ := e.catalog.Tile("inner_1")
	h.Explored = true
	h.Wormholes = tile.Wormholes
	p := s.Players[pid]
	p.DiscsUsed = p.DiscsTotal

	outcome, err := e.SubmitAction("frontier", Action{
		Player:    pid,
		Type:      ActionInfluence,
		Influence: &InfluencePayload{Hex: frontier, PlanetSlot: -1},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonNoInfluenceDiscs {
		t.Fatalf("expected no_influence_discs, got %v", outcome.Rejection)
	}
}

func TestMoveFollowsWormholePath(t *testing.T) {
	e := newTestEngine(t)
	s, pid, ship, frontier := frontierGame(t, e, "outer_3")
	h := s.Hexes[frontier]
	h.Explored = true
	h.Wormholes = []int{0, 1, 2, 3, 4, 5}

	outcome, err := e.SubmitAction("frontier", Action{
		Player: pid,
		Type:   ActionMove,
		Move:   &MovePayload{Ships: []ShipID{ship.ID}, Path: []HexID{frontier}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection != nil {
		t.Fatalf("move rejected: %s", outcome.Rejection)
	}
	if got := gameState(t, e, "frontier").Ships[ship.ID].Hex; got != frontier {
		t.Fatalf("ship in hex %d, want %d", got, frontier)
	}
}

func TestMoveBeyondDriveRangeRejected(t *testing.T) {
	e := newTestEngine(t)
	s, pid, ship, frontier := frontierGame(t, e, "outer_3")
	h := s.Hexes[frontier]
	h.Explored = true
	h.Wormholes = []int{0, 1, 2, 3, 4, 5}
	far := e.placeHex(s, 2, 0, "outer_1", 0)
	far.Explored = true
	far.Wormholes = []int{0, 1, 2, 3, 4, 5}

	// The default interceptor carries a single electron drive: one hop.
	outcome, err := e.SubmitAction("frontier", Action{
		Player: pid,
		Type:   ActionMove,
		Move:   &MovePayload{Ships: []ShipID{ship.ID}, Path: []HexID{frontier, far.ID}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonOutOfRange {
		t.Fatalf("expected out_of_range, got %v", outcome.Rejection)
	}
}

func TestColonyShipCannotBeMovedByOthers(t *testing.T) {
	e := newTestEngine(t)
	s, pid, _, _ := frontierGame(t, e, "outer_3")
	b, err := e.addPlayer(s, "Bob", "hydran")
	if err != nil {
		t.Fatalf("failed to add player: %v", err)
	}
	enemy := s.addShip(b, "interceptor", s.ShipsOf(pid)[0].Hex, 1, false, false)

	outcome, err := e.SubmitAction("frontier", Action{
		Player: pid,
		Type:   ActionMove,
		Move:   &MovePayload{Ships: []ShipID{enemy.ID}, Path: []HexID{s.ShipsOf(pid)[0].Hex}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Rejection == nil || outcome.Rejection.Reason != ReasonNotYourShip {
		t.Fatalf("expected not_your_ship, got %v", outcome.Rejection)
	}
}
