package game

import (
	"sort"
	"time"

	"github.com/novafree/nova-server-go/internal/catalog"
)

// Entity IDs are opaque arena keys. Relationships between players, ships,
// and hexes are expressed as ID references plus indexes, never as embedded
// back-pointers.
type (
	PlayerID int
	ShipID   int
	HexID    int
)

// NoPlayer marks unowned entities (ancient ships, unclaimed hexes).
const NoPlayer PlayerID = 0

// Resource names used by ledger effects and income.
const (
	ResourceMoney     = "money"
	ResourceScience   = "science"
	ResourceMaterials = "materials"
)

// Player holds one faction's mutable state: resource balances, disc supply,
// owned technologies, and per-class blueprints. Ships are tracked through
// the state's ship index, not here.
type Player struct {
	ID      PlayerID
	Name    string
	Species string

	Money     int
	Science   int
	Materials int

	// Population cube supply by planet type.
	Population map[string]int

	DiscsTotal int
	DiscsUsed  int

	VP          int
	VPBreakdown map[string]int

	Techs      map[string]bool
	Blueprints map[string][]string // ship class -> component slots
}

// DiscsFree returns the player's unplaced influence discs.
func (p *Player) DiscsFree() int {
	return p.DiscsTotal - p.DiscsUsed
}

// Balance returns the named resource balance.
func (p *Player) Balance(resource string) int {
	switch resource {
	case ResourceMoney:
		return p.Money
	case ResourceScience:
		return p.Science
	case ResourceMaterials:
		return p.Materials
	}
	return 0
}

// Ship is one vessel on the board. Owner is NoPlayer for ancient ships.
type Ship struct {
	ID       ShipID
	Owner    PlayerID
	Class    string
	Hex      HexID // 0 when off the board (destroyed)
	HP       int
	Ancient  bool
	Guardian bool // the galactic center defense system
}

// PopCube is a population cube placed on a planet slot.
type PopCube struct {
	Owner PlayerID
	Type  string
}

// Hex is one map position. Wormholes and Planets are filled from the tile
// template when the hex is placed (homeworlds) or explored.
type Hex struct {
	ID       HexID
	Q, R     int
	Tile     string
	Rotation int

	Explored  bool
	Owner     PlayerID
	Wormholes []int
	Planets   []catalog.Planet

	// Population by planet slot index.
	Population map[int]PopCube

	// ClaimedSeq orders colony claims for the bankruptcy tie-break
	// (most recently colonized discarded first among equals).
	ClaimedSeq int
}

// ActionRecord is one entry of the append-only action history.
type ActionRecord struct {
	ActionID string
	Player   PlayerID
	Type     ActionType
	Round    int
	At       time.Time
}

// State is the authoritative state of one game instance. It is owned
// exclusively by the engine; all mutation goes through engine entry points.
type State struct {
	GameID string
	Round  int
	Phase  Phase

	TurnOrder []PlayerID
	ActiveIdx int
	Passed    map[PlayerID]bool

	Players map[PlayerID]*Player
	Ships   map[ShipID]*Ship
	Hexes   map[HexID]*Hex

	// Discovery deck: shuffled tile IDs; DeckPos is the next draw.
	DiscoveryDeck []string
	DeckPos       int

	History    []ActionRecord
	Encounters []*Encounter

	Winner PlayerID // set when Phase == PhaseFinished

	nextID   int
	claimSeq int
	consumed map[string]bool // action IDs already applied

	// Indexes; derived, maintained alongside the arenas.
	shipsByHex    map[HexID]map[ShipID]bool
	shipsByPlayer map[PlayerID]map[ShipID]bool
}

func newState(gameID string) *State {
	return &State{
		GameID:        gameID,
		Phase:         PhaseLobby,
		Passed:        make(map[PlayerID]bool),
		Players:       make(map[PlayerID]*Player),
		Ships:         make(map[ShipID]*Ship),
		Hexes:         make(map[HexID]*Hex),
		consumed:      make(map[string]bool),
		shipsByHex:    make(map[HexID]map[ShipID]bool),
		shipsByPlayer: make(map[PlayerID]map[ShipID]bool),
	}
}

func (s *State) allocID() int {
	s.nextID++
	return s.nextID
}

// ActivePlayer returns the player whose turn it is, or nil outside strategy.
func (s *State) ActivePlayer() *Player {
	if s.Phase != PhaseStrategy || len(s.TurnOrder) == 0 {
		return nil
	}
	return s.Players[s.TurnOrder[s.ActiveIdx]]
}

func (s *State) addShip(owner PlayerID, class string, hex HexID, hp int, ancient, guardian bool) *Ship {
	ship := &Ship{
		ID:       ShipID(s.allocID()),
		Owner:    owner,
		Class:    class,
		Hex:      hex,
		HP:       hp,
		Ancient:  ancient,
		Guardian: guardian,
	}
	s.Ships[ship.ID] = ship
	s.indexShip(ship)
	return ship
}

func (s *State) indexShip(ship *Ship) {
	if ship.Hex != 0 {
		if s.shipsByHex[ship.Hex] == nil {
			s.shipsByHex[ship.Hex] = make(map[ShipID]bool)
		}
		s.shipsByHex[ship.Hex][ship.ID] = true
	}
	if ship.Owner != NoPlayer {
		if s.shipsByPlayer[ship.Owner] == nil {
			s.shipsByPlayer[ship.Owner] = make(map[ShipID]bool)
		}
		s.shipsByPlayer[ship.Owner][ship.ID] = true
	}
}

func (s *State) moveShip(ship *Ship, to HexID) {
	if ship.Hex != 0 {
		delete(s.shipsByHex[ship.Hex], ship.ID)
	}
	ship.Hex = to
	if to != 0 {
		if s.shipsByHex[to] == nil {
			s.shipsByHex[to] = make(map[ShipID]bool)
		}
		s.shipsByHex[to][ship.ID] = true
	}
}

func (s *State) removeShip(ship *Ship) {
	if ship.Hex != 0 {
		delete(s.shipsByHex[ship.Hex], ship.ID)
	}
	if ship.Owner != NoPlayer {
		delete(s.shipsByPlayer[ship.Owner], ship.ID)
	}
	delete(s.Ships, ship.ID)
}

// ShipsInHex returns the ships currently in a hex, in ID order.
func (s *State) ShipsInHex(hex HexID) []*Ship {
	ids := s.shipsByHex[hex]
	out := make([]*Ship, 0, len(ids))
	for id := range ids {
		out = append(out, s.Ships[id])
	}
	sortShips(out)
	return out
}

// ShipsOf returns a player's ships, in ID order.
func (s *State) ShipsOf(player PlayerID) []*Ship {
	ids := s.shipsByPlayer[player]
	out := make([]*Ship, 0, len(ids))
	for id := range ids {
		out = append(out, s.Ships[id])
	}
	sortShips(out)
	return out
}

func sortShips(ships []*Ship) {
	sort.Slice(ships, func(i, j int) bool { return ships[i].ID < ships[j].ID })
}

// HexAt returns the hex at axial coordinates (q, r), if any.
func (s *State) HexAt(q, r int) *Hex {
	for _, h := range s.Hexes {
		if h.Q == q && h.R == r {
			return h
		}
	}
	return nil
}

// factionOf maps a ship to its combat faction: the owner ID, or the ancient
// pseudo-faction.
func factionOf(ship *Ship) Faction {
	if ship.Ancient || ship.Owner == NoPlayer {
		return FactionAncient
	}
	return Faction(ship.Owner)
}

// contestedHexes returns hexes holding ships of two or more factions, in ID
// order.
func (s *State) contestedHexes() []HexID {
	var out []HexID
	for hexID, ids := range s.shipsByHex {
		factions := make(map[Faction]bool)
		for id := range ids {
			factions[factionOf(s.Ships[id])] = true
		}
		if len(factions) >= 2 {
			out = append(out, hexID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy of the state. The engine applies mutations to a
// clone and swaps it in on success, so an aborted mutation can never leave a
// partially-applied state behind.
func (s *State) Clone() *State {
	c := &State{
		GameID:        s.GameID,
		Round:         s.Round,
		Phase:         s.Phase,
		TurnOrder:     append([]PlayerID(nil), s.TurnOrder...),
		ActiveIdx:     s.ActiveIdx,
		Passed:        make(map[PlayerID]bool, len(s.Passed)),
		Players:       make(map[PlayerID]*Player, len(s.Players)),
		Ships:         make(map[ShipID]*Ship, len(s.Ships)),
		Hexes:         make(map[HexID]*Hex, len(s.Hexes)),
		DiscoveryDeck: append([]string(nil), s.DiscoveryDeck...),
		DeckPos:       s.DeckPos,
		History:       append([]ActionRecord(nil), s.History...),
		Encounters:    append([]*Encounter(nil), s.Encounters...),
		Winner:        s.Winner,
		nextID:        s.nextID,
		claimSeq:      s.claimSeq,
		consumed:      make(map[string]bool, len(s.consumed)),
		shipsByHex:    make(map[HexID]map[ShipID]bool, len(s.shipsByHex)),
		shipsByPlayer: make(map[PlayerID]map[ShipID]bool, len(s.shipsByPlayer)),
	}
	for k, v := range s.Passed {
		c.Passed[k] = v
	}
	for k := range s.consumed {
		c.consumed[k] = true
	}
	for id, p := range s.Players {
		cp := *p
		cp.Population = make(map[string]int, len(p.Population))
		for k, v := range p.Population {
			cp.Population[k] = v
		}
		cp.VPBreakdown = make(map[string]int, len(p.VPBreakdown))
		for k, v := range p.VPBreakdown {
			cp.VPBreakdown[k] = v
		}
		cp.Techs = make(map[string]bool, len(p.Techs))
		for k := range p.Techs {
			cp.Techs[k] = true
		}
		cp.Blueprints = make(map[string][]string, len(p.Blueprints))
		for k, v := range p.Blueprints {
			cp.Blueprints[k] = append([]string(nil), v...)
		}
		c.Players[id] = &cp
	}
	for id, ship := range s.Ships {
		cs := *ship
		c.Ships[id] = &cs
	}
	for id, h := range s.Hexes {
		ch := *h
		ch.Wormholes = append([]int(nil), h.Wormholes...)
		ch.Planets = append([]catalog.Planet(nil), h.Planets...)
		ch.Population = make(map[int]PopCube, len(h.Population))
		for k, v := range h.Population {
			ch.Population[k] = v
		}
		c.Hexes[id] = &ch
	}
	for hexID, ids := range s.shipsByHex {
		m := make(map[ShipID]bool, len(ids))
		for id := range ids {
			m[id] = true
		}
		c.shipsByHex[hexID] = m
	}
	for pid, ids := range s.shipsByPlayer {
		m := make(map[ShipID]bool, len(ids))
		for id := range ids {
			m[id] = true
		}
		c.shipsByPlayer[pid] = m
	}
	return c
}
