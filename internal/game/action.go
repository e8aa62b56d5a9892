package game

import "fmt"

// ActionType enumerates the seven player action types.
type ActionType string

const (
	ActionExplore   ActionType = "EXPLORE"
	ActionInfluence ActionType = "INFLUENCE"
	ActionBuild     ActionType = "BUILD"
	ActionResearch  ActionType = "RESEARCH"
	ActionMove      ActionType = "MOVE"
	ActionUpgrade   ActionType = "UPGRADE"
	ActionPass      ActionType = "PASS"
)

// Action is one player-submitted move. Exactly one payload field matching
// Type must be set; the zero payloads of the other variants are ignored.
// Actions are immutable once recorded.
type Action struct {
	// ID guards against transport-level retries: the engine rejects an
	// action ID it has already consumed.
	ID     string
	Player PlayerID
	Type   ActionType

	Explore   *ExplorePayload
	Influence *InfluencePayload
	Build     *BuildPayload
	Research  *ResearchPayload
	Move      *MovePayload
	Upgrade   *UpgradePayload
}

// ExplorePayload reveals an unexplored hex adjacent-by-wormhole to a hex the
// ship can reach.
type ExplorePayload struct {
	Ship      ShipID
	TargetHex HexID
}

// InfluencePayload claims an explored hex, optionally placing a population
// cube on one of its planet slots (PlanetSlot < 0 places no cube).
type InfluencePayload struct {
	Hex        HexID
	PlanetSlot int
}

// BuildPayload constructs one ship of the given class at a hex.
type BuildPayload struct {
	Class string
	Hex   HexID
}

// ResearchPayload acquires a technology.
type ResearchPayload struct {
	Tech string
}

// MovePayload relocates ships along a wormhole-connected path. Path lists
// the hexes traversed in order, excluding the origin; the last entry is the
// destination.
type MovePayload struct {
	Ships []ShipID
	Path  []HexID
}

// UpgradePayload replaces a blueprint's component slots.
type UpgradePayload struct {
	Class string
	Slots []string
}

// payloadFor returns whether the payload matching the action type is set.
func (a *Action) payloadSet() bool {
	switch a.Type {
	case ActionExplore:
		return a.Explore != nil
	case ActionInfluence:
		return a.Influence != nil
	case ActionBuild:
		return a.Build != nil
	case ActionResearch:
		return a.Research != nil
	case ActionMove:
		return a.Move != nil
	case ActionUpgrade:
		return a.Upgrade != nil
	case ActionPass:
		return true
	}
	return false
}

func (a *Action) String() string {
	return fmt.Sprintf("%s by player %d", a.Type, a.Player)
}
