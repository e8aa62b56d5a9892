package server

import "github.com/novafree/nova-server-go/internal/game"

// Request is one client-to-server frame. Type selects the operation; the
// remaining fields are per-type parameters.
type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	GameID    string `json:"game_id,omitempty"`

	// create_game
	Seed int64 `json:"seed,omitempty"`

	// join_game
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`

	// action
	Action *ActionMsg `json:"action,omitempty"`
}

// ActionMsg is the wire form of a player action.
type ActionMsg struct {
	ID     string `json:"id,omitempty"`
	Player int    `json:"player"`
	Type   string `json:"type"`

	Explore   *ExploreMsg   `json:"explore,omitempty"`
	Influence *InfluenceMsg `json:"influence,omitempty"`
	Build     *BuildMsg     `json:"build,omitempty"`
	Research  *ResearchMsg  `json:"research,omitempty"`
	Move      *MoveMsg      `json:"move,omitempty"`
	Upgrade   *UpgradeMsg   `json:"upgrade,omitempty"`
}

type ExploreMsg struct {
	Ship      int `json:"ship"`
	TargetHex int `json:"target_hex"`
}

type InfluenceMsg struct {
	Hex        int `json:"hex"`
	PlanetSlot int `json:"planet_slot"`
}

type BuildMsg struct {
	Class string `json:"class"`
	Hex   int    `json:"hex"`
}

type ResearchMsg struct {
	Tech string `json:"tech"`
}

type MoveMsg struct {
	Ships []int `json:"ships"`
	Path  []int `json:"path"`
}

type UpgradeMsg struct {
	Class string   `json:"class"`
	Slots []string `json:"slots"`
}

// Response is one server-to-client frame. Error carries transport and
// lifecycle failures; Rejection carries rule refusals.
type Response struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	GameID    string `json:"game_id,omitempty"`

	Error     string        `json:"error,omitempty"`
	Rejection *RejectionMsg `json:"rejection,omitempty"`

	PlayerID   int               `json:"player_id,omitempty"`
	Round      int               `json:"round,omitempty"`
	Phase      string            `json:"phase,omitempty"`
	Encounters []*game.Encounter `json:"encounters,omitempty"`
	State      *game.GameView    `json:"state,omitempty"`
}

type RejectionMsg struct {
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// toAction converts a wire action into the engine form.
func toAction(m *ActionMsg) game.Action {
	a := game.Action{
		ID:     m.ID,
		Player: game.PlayerID(m.Player),
		Type:   game.ActionType(m.Type),
	}
	if m.Explore != nil {
		a.Explore = &game.ExplorePayload{
			Ship:      game.ShipID(m.Explore.Ship),
			TargetHex: game.HexID(m.Explore.TargetHex),
		}
	}
	if m.Influence != nil {
		a.Influence = &game.InfluencePayload{
			Hex:        game.HexID(m.Influence.Hex),
			PlanetSlot: m.Influence.PlanetSlot,
		}
	}
	if m.Build != nil {
		a.Build = &game.BuildPayload{Class: m.Build.Class, Hex: game.HexID(m.Build.Hex)}
	}
	if m.Research != nil {
		a.Research = &game.ResearchPayload{Tech: m.Research.Tech}
	}
	if m.Move != nil {
		mv := &game.MovePayload{}
		for _, id := range m.Move.Ships {
			mv.Ships = append(mv.Ships, game.ShipID(id))
		}
		for _, id := range m.Move.Path {
			mv.Path = append(mv.Path, game.HexID(id))
		}
		a.Move = mv
	}
	if m.Upgrade != nil {
		a.Upgrade = &game.UpgradePayload{Class: m.Upgrade.Class, Slots: m.Upgrade.Slots}
	}
	return a
}
