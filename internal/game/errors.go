package game

import "fmt"

// RejectionReason is a machine-readable code naming the single precondition
// an action violated.
type RejectionReason string

const (
	ReasonGameNotActive         RejectionReason = "game_not_active"
	ReasonWrongPhase            RejectionReason = "wrong_phase"
	ReasonNotYourTurn           RejectionReason = "not_your_turn"
	ReasonAlreadyPassed         RejectionReason = "already_passed"
	ReasonDuplicateAction       RejectionReason = "duplicate_action"
	ReasonUnknownPlayer         RejectionReason = "unknown_player"
	ReasonUnknownShip           RejectionReason = "unknown_ship"
	ReasonUnknownHex            RejectionReason = "unknown_hex"
	ReasonUnknownShipClass      RejectionReason = "unknown_ship_class"
	ReasonUnknownTechnology     RejectionReason = "unknown_technology"
	ReasonUnknownComponent      RejectionReason = "unknown_component"
	ReasonNotYourShip           RejectionReason = "not_your_ship"
	ReasonHexExplored           RejectionReason = "hex_already_explored"
	ReasonHexUnexplored         RejectionReason = "hex_unexplored"
	ReasonHexNotOwned           RejectionReason = "hex_not_owned"
	ReasonHexAlreadyOwned       RejectionReason = "hex_already_owned"
	ReasonDisconnectedPath      RejectionReason = "disconnected_path"
	ReasonOutOfRange            RejectionReason = "out_of_range"
	ReasonImmobileShip          RejectionReason = "immobile_ship"
	ReasonInsufficientMoney     RejectionReason = "insufficient_money"
	ReasonInsufficientScience   RejectionReason = "insufficient_science"
	ReasonInsufficientMaterials RejectionReason = "insufficient_materials"
	ReasonNoInfluenceDiscs      RejectionReason = "no_influence_discs"
	ReasonNoPopulationCube      RejectionReason = "no_population_cube"
	ReasonSlotOccupied          RejectionReason = "slot_occupied"
	ReasonSlotMismatch          RejectionReason = "slot_mismatch"
	ReasonTechAlreadyOwned      RejectionReason = "tech_already_owned"
	ReasonNotResearchable       RejectionReason = "not_researchable"
	ReasonMissingPrerequisite   RejectionReason = "missing_prerequisite"
	ReasonMissingTechnology     RejectionReason = "missing_technology"
	ReasonPowerDeficit          RejectionReason = "power_deficit"
	ReasonBadSlotCount          RejectionReason = "bad_slot_count"
	ReasonInvalidBlueprint      RejectionReason = "invalid_blueprint"
	ReasonNoBuildLocation       RejectionReason = "no_build_location"
	ReasonHexFull               RejectionReason = "hex_full"
	ReasonNoShipPresent         RejectionReason = "no_ship_present"
	ReasonEmptyPath             RejectionReason = "empty_path"
	ReasonBadPayload            RejectionReason = "bad_payload"
)

// Rejection reports why an action is illegal. It is a value, not an error:
// a rejected action is a normal engine outcome and never mutates state.
type Rejection struct {
	Reason RejectionReason
	Detail string
}

func (r Rejection) String() string {
	if r.Detail == "" {
		return string(r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

func reject(reason RejectionReason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ConsistencyFault is an invariant violation discovered after validation
// passed. It indicates an engine bug, not player error; the in-flight
// mutation is aborted and the game keeps its last known-good state.
type ConsistencyFault struct {
	Op     string
	Detail string
}

func (f *ConsistencyFault) Error() string {
	return fmt.Sprintf("consistency fault in %s: %s", f.Op, f.Detail)
}

func faultf(op, format string, args ...any) *ConsistencyFault {
	return &ConsistencyFault{Op: op, Detail: fmt.Sprintf(format, args...)}
}
