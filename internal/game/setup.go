package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/novafree/nova-server-go/internal/catalog"
)

// Starting population cube supply per resource type.
const startingCubesPerType = 11

// addPlayer seats a new player from a species profile. Resources, cube
// supply, and default blueprints come from the catalog; the homeworld is
// placed at game start once the player count is known.
func (e *Engine) addPlayer(s *State, name, speciesID string) (PlayerID, error) {
	sp, err := e.catalog.Species(speciesID)
	if err != nil {
		return 0, err
	}
	p := &Player{
		ID:      PlayerID(s.allocID()),
		Name:    name,
		Species: sp.ID,

		Money:     sp.StartingMoney,
		Science:   sp.StartingScience,
		Materials: sp.StartingMaterials,

		Population: map[string]int{
			ResourceMoney:     startingCubesPerType,
			ResourceScience:   startingCubesPerType,
			ResourceMaterials: startingCubesPerType,
		},

		DiscsTotal: e.rules.StartingInfluenceDiscs,

		VPBreakdown: map[string]int{},
		Techs:       map[string]bool{},
		Blueprints:  map[string][]string{},
	}
	for _, class := range e.catalog.ShipClasses() {
		p.Blueprints[class.ID] = e.catalog.DefaultSlotsFor(class, sp.ID)
	}
	s.Players[p.ID] = p
	s.TurnOrder = append(s.TurnOrder, p.ID)
	return p.ID, nil
}

// startGame seeds the board and opens round one. The galactic center sits
// at the origin, an inner tile ring at radius one, an outer ring at radius
// two; homeworlds replace evenly spaced outer positions. Tile assignment,
// rotations, and the discovery deck are drawn from the seeded generator, so
// a game is fully reproducible from its seed.
func (e *Engine) startGame(s *State, seed int64) error {
	if s.Phase != PhaseLobby {
		return fmt.Errorf("game %s already started", s.GameID)
	}
	if len(s.TurnOrder) < 2 || len(s.TurnOrder) > 6 {
		return fmt.Errorf("game %s needs 2-6 players, has %d", s.GameID, len(s.TurnOrder))
	}
	rng := rand.New(rand.NewSource(seed))

	e.placeHex(s, 0, 0, "gc", 0)
	e.seedRing(s, rng, 1, e.catalog.Tiles(catalog.TileInner))
	outer := e.seedRing(s, rng, 2, e.catalog.Tiles(catalog.TileOuter))

	spacing := len(outer) / len(s.TurnOrder)
	for i, pid := range s.TurnOrder {
		if err := e.placeHomeworld(s, outer[i*spacing], pid); err != nil {
			return err
		}
	}

	deck := make([]string, 0)
	for _, d := range e.catalog.Discoveries() {
		deck = append(deck, d.ID)
	}
	sort.Strings(deck)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	s.DiscoveryDeck = deck

	s.Round = 1
	s.Phase = PhaseStrategy
	s.resetRound()
	return nil
}

func (e *Engine) placeHex(s *State, q, r int, tile string, rotation int) *Hex {
	h := &Hex{
		ID:       HexID(s.allocID()),
		Q:        q,
		R:        r,
		Tile:     tile,
		Rotation: rotation,
	}
	s.Hexes[h.ID] = h
	return h
}

// seedRing places one ring of face-down tiles, cycling through a shuffled
// copy of the pool. Returns the placed hex IDs in ring-walk order.
func (e *Engine) seedRing(s *State, rng *rand.Rand, radius int, pool []catalog.SectorTile) []HexID {
	shuffled := append([]catalog.SectorTile(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var out []HexID
	for i, pos := range ringCoords(radius) {
		tile := shuffled[i%len(shuffled)]
		h := e.placeHex(s, pos[0], pos[1], tile.ID, rng.Intn(6))
		out = append(out, h.ID)
	}
	return out
}

// ringCoords returns the axial coordinates of the hex ring at the given
// radius, walking from the south-west corner.
func ringCoords(radius int) [][2]int {
	if radius == 0 {
		return [][2]int{{0, 0}}
	}
	var out [][2]int
	q := hexDirections[4][0] * radius
	r := hexDirections[4][1] * radius
	for dir := 0; dir < 6; dir++ {
		for step := 0; step < radius; step++ {
			out = append(out, [2]int{q, r})
			q += hexDirections[dir][0]
			r += hexDirections[dir][1]
		}
	}
	return out
}

// placeHomeworld converts a seeded outer hex into the player's explored,
// claimed home sector: species planets with cubes seated, starting ships in
// orbit, one influence disc placed.
func (e *Engine) placeHomeworld(s *State, hexID HexID, pid PlayerID) error {
	p := s.Players[pid]
	sp, err := e.catalog.Species(p.Species)
	if err != nil {
		return err
	}
	tile, err := e.catalog.Tile("homeworld")
	if err != nil {
		return err
	}

	h := s.Hexes[hexID]
	h.Tile = tile.ID
	h.Rotation = 0
	h.Explored = true
	h.Owner = pid
	h.Wormholes = append([]int(nil), tile.Wormholes...)
	s.claimSeq++
	h.ClaimedSeq = s.claimSeq

	h.Planets = h.Planets[:0]
	h.Population = make(map[int]PopCube, len(sp.HomeworldPlanets))
	for i, ptype := range sp.HomeworldPlanets {
		h.Planets = append(h.Planets, catalog.Planet{Type: ptype})
		p.Population[ptype]--
		h.Population[i] = PopCube{Owner: pid, Type: ptype}
	}
	p.DiscsUsed++

	classes := make([]string, 0, len(sp.StartingShips))
	for class := range sp.StartingShips {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		for i := 0; i < sp.StartingShips[class]; i++ {
			s.addShip(pid, class, h.ID, e.hullOf(p, class), false, false)
		}
	}
	return nil
}
