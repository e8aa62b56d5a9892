package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/novafree/nova-server-go/internal/catalog"
)

// GameView is the serialized form of a game: the gateway sends it to
// clients and the record store persists it. It carries the complete state,
// so a view round-trips back into a playable game via Restore.
type GameView struct {
	GameID    string `json:"game_id"`
	Round     int    `json:"round"`
	Phase     string `json:"phase"`
	Winner    int    `json:"winner,omitempty"`
	TurnOrder []int  `json:"turn_order"`
	ActiveIdx int    `json:"active_idx"`
	Passed    []int  `json:"passed,omitempty"`

	Players []PlayerView `json:"players"`
	Ships   []ShipView   `json:"ships"`
	Hexes   []HexView    `json:"hexes"`

	DiscoveryDeck []string `json:"discovery_deck"`
	DeckPos       int      `json:"deck_pos"`

	History    []HistoryView `json:"history,omitempty"`
	Encounters []*Encounter  `json:"encounters,omitempty"`

	NextID   int      `json:"next_id"`
	ClaimSeq int      `json:"claim_seq"`
	Consumed []string `json:"consumed,omitempty"`
}

type PlayerView struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`

	Money     int `json:"money"`
	Science   int `json:"science"`
	Materials int `json:"materials"`

	Population map[string]int `json:"population"`
	DiscsTotal int            `json:"discs_total"`
	DiscsUsed  int            `json:"discs_used"`

	VP          int            `json:"vp"`
	VPBreakdown map[string]int `json:"vp_breakdown,omitempty"`

	Techs      []string            `json:"techs,omitempty"`
	Blueprints map[string][]string `json:"blueprints"`
}

type ShipView struct {
	ID       int    `json:"id"`
	Owner    int    `json:"owner"`
	Class    string `json:"class"`
	Hex      int    `json:"hex"`
	HP       int    `json:"hp"`
	Ancient  bool   `json:"ancient,omitempty"`
	Guardian bool   `json:"guardian,omitempty"`
}

type HexView struct {
	ID         int              `json:"id"`
	Q          int              `json:"q"`
	R          int              `json:"r"`
	Tile       string           `json:"tile"`
	Rotation   int              `json:"rotation"`
	Explored   bool             `json:"explored"`
	Owner      int              `json:"owner,omitempty"`
	Wormholes  []int            `json:"wormholes,omitempty"`
	Planets    []catalog.Planet `json:"planets,omitempty"`
	Population map[int]PopCube  `json:"population,omitempty"`
	ClaimedSeq int              `json:"claimed_seq,omitempty"`
}

type HistoryView struct {
	ActionID string    `json:"action_id"`
	Player   int       `json:"player"`
	Type     string    `json:"type"`
	Round    int       `json:"round"`
	At       time.Time `json:"at"`
}

// buildView serializes a state. Views share no maps or slices with the
// live state: lifecycle entry points mutate state in place, so an aliased
// view marshaled outside the engine lock would race them.
func buildView(s *State) *GameView {
	v := &GameView{
		GameID:        s.GameID,
		Round:         s.Round,
		Phase:         s.Phase.String(),
		Winner:        int(s.Winner),
		ActiveIdx:     s.ActiveIdx,
		DiscoveryDeck: append([]string(nil), s.DiscoveryDeck...),
		DeckPos:       s.DeckPos,
		Encounters:    append([]*Encounter(nil), s.Encounters...),
		NextID:        s.nextID,
		ClaimSeq:      s.claimSeq,
	}
	for _, pid := range s.TurnOrder {
		v.TurnOrder = append(v.TurnOrder, int(pid))
	}
	for pid, passed := range s.Passed {
		if passed {
			v.Passed = append(v.Passed, int(pid))
		}
	}
	sort.Ints(v.Passed)
	for id := range s.consumed {
		v.Consumed = append(v.Consumed, id)
	}
	sort.Strings(v.Consumed)

	for _, pid := range s.TurnOrder {
		p := s.Players[pid]
		pv := PlayerView{
			ID:          int(p.ID),
			Name:        p.Name,
			Species:     p.Species,
			Money:       p.Money,
			Science:     p.Science,
			Materials:   p.Materials,
			Population:  copyCounts(p.Population),
			DiscsTotal:  p.DiscsTotal,
			DiscsUsed:   p.DiscsUsed,
			VP:          p.VP,
			VPBreakdown: copyCounts(p.VPBreakdown),
			Blueprints:  copyBlueprints(p.Blueprints),
		}
		for tech := range p.Techs {
			pv.Techs = append(pv.Techs, tech)
		}
		sort.Strings(pv.Techs)
		v.Players = append(v.Players, pv)
	}

	shipIDs := make([]int, 0, len(s.Ships))
	for id := range s.Ships {
		shipIDs = append(shipIDs, int(id))
	}
	sort.Ints(shipIDs)
	for _, id := range shipIDs {
		ship := s.Ships[ShipID(id)]
		v.Ships = append(v.Ships, ShipView{
			ID:       int(ship.ID),
			Owner:    int(ship.Owner),
			Class:    ship.Class,
			Hex:      int(ship.Hex),
			HP:       ship.HP,
			Ancient:  ship.Ancient,
			Guardian: ship.Guardian,
		})
	}

	hexIDs := make([]int, 0, len(s.Hexes))
	for id := range s.Hexes {
		hexIDs = append(hexIDs, int(id))
	}
	sort.Ints(hexIDs)
	for _, id := range hexIDs {
		h := s.Hexes[HexID(id)]
		v.Hexes = append(v.Hexes, HexView{
			ID:         int(h.ID),
			Q:          h.Q,
			R:          h.R,
			Tile:       h.Tile,
			Rotation:   h.Rotation,
			Explored:   h.Explored,
			Owner:      int(h.Owner),
			Wormholes:  append([]int(nil), h.Wormholes...),
			Planets:    append([]catalog.Planet(nil), h.Planets...),
			Population: copyPopulation(h.Population),
			ClaimedSeq: h.ClaimedSeq,
		})
	}

	for _, rec := range s.History {
		v.History = append(v.History, HistoryView{
			ActionID: rec.ActionID,
			Player:   int(rec.Player),
			Type:     string(rec.Type),
			Round:    rec.Round,
			At:       rec.At,
		})
	}
	return v
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBlueprints(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func copyPopulation(m map[int]PopCube) map[int]PopCube {
	out := make(map[int]PopCube, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func phaseFromName(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// stateFromView rebuilds an authoritative state from its serialized form.
func stateFromView(v *GameView) (*State, error) {
	phase, err := phaseFromName(v.Phase)
	if err != nil {
		return nil, err
	}
	s := newState(v.GameID)
	s.Round = v.Round
	s.Phase = phase
	s.Winner = PlayerID(v.Winner)
	s.ActiveIdx = v.ActiveIdx
	s.DiscoveryDeck = append([]string(nil), v.DiscoveryDeck...)
	s.DeckPos = v.DeckPos
	s.Encounters = append([]*Encounter(nil), v.Encounters...)
	s.nextID = v.NextID
	s.claimSeq = v.ClaimSeq

	for _, pid := range v.TurnOrder {
		s.TurnOrder = append(s.TurnOrder, PlayerID(pid))
	}
	for _, pid := range v.Passed {
		s.Passed[PlayerID(pid)] = true
	}
	for _, id := range v.Consumed {
		s.consumed[id] = true
	}

	for _, pv := range v.Players {
		p := &Player{
			ID:          PlayerID(pv.ID),
			Name:        pv.Name,
			Species:     pv.Species,
			Money:       pv.Money,
			Science:     pv.Science,
			Materials:   pv.Materials,
			Population:  pv.Population,
			DiscsTotal:  pv.DiscsTotal,
			DiscsUsed:   pv.DiscsUsed,
			VP:          pv.VP,
			VPBreakdown: pv.VPBreakdown,
			Techs:       make(map[string]bool, len(pv.Techs)),
			Blueprints:  pv.Blueprints,
		}
		if p.Population == nil {
			p.Population = map[string]int{}
		}
		if p.VPBreakdown == nil {
			p.VPBreakdown = map[string]int{}
		}
		if p.Blueprints == nil {
			p.Blueprints = map[string][]string{}
		}
		for _, tech := range pv.Techs {
			p.Techs[tech] = true
		}
		s.Players[p.ID] = p
	}

	for _, hv := range v.Hexes {
		h := &Hex{
			ID:         HexID(hv.ID),
			Q:          hv.Q,
			R:          hv.R,
			Tile:       hv.Tile,
			Rotation:   hv.Rotation,
			Explored:   hv.Explored,
			Owner:      PlayerID(hv.Owner),
			Wormholes:  hv.Wormholes,
			Planets:    hv.Planets,
			Population: hv.Population,
			ClaimedSeq: hv.ClaimedSeq,
		}
		if h.Population == nil {
			h.Population = map[int]PopCube{}
		}
		s.Hexes[h.ID] = h
	}

	for _, sv := range v.Ships {
		ship := &Ship{
			ID:       ShipID(sv.ID),
			Owner:    PlayerID(sv.Owner),
			Class:    sv.Class,
			Hex:      HexID(sv.Hex),
			HP:       sv.HP,
			Ancient:  sv.Ancient,
			Guardian: sv.Guardian,
		}
		s.Ships[ship.ID] = ship
		s.indexShip(ship)
	}

	for _, rec := range v.History {
		s.History = append(s.History, ActionRecord{
			ActionID: rec.ActionID,
			Player:   PlayerID(rec.Player),
			Type:     ActionType(rec.Type),
			Round:    rec.Round,
			At:       rec.At,
		})
	}
	return s, nil
}
