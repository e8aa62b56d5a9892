package game

import "fmt"

// Phase represents the round life-cycle phases of a game.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseStrategy
	PhaseCombat
	PhaseUpkeep
	PhaseCleanup
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseLobby:    "LOBBY",
	PhaseStrategy: "STRATEGY",
	PhaseCombat:   "COMBAT",
	PhaseUpkeep:   "UPKEEP",
	PhaseCleanup:  "CLEANUP",
	PhaseFinished: "FINISHED",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// allPassed reports whether every player in the turn order has passed.
func (s *State) allPassed() bool {
	for _, id := range s.TurnOrder {
		if !s.Passed[id] {
			return false
		}
	}
	return len(s.TurnOrder) > 0
}

// advanceCursor moves the active-player cursor to the next player in turn
// order who has not passed, wrapping around. It is a no-op when everyone has
// passed; the phase machine takes over at that point.
func (s *State) advanceCursor() {
	if s.allPassed() {
		return
	}
	n := len(s.TurnOrder)
	for off := 1; off <= n; off++ {
		idx := (s.ActiveIdx + off) % n
		if !s.Passed[s.TurnOrder[idx]] {
			s.ActiveIdx = idx
			return
		}
	}
}

// resetRound prepares the state for a new strategy round: clears the passed
// set and points the cursor at the first player in turn order.
func (s *State) resetRound() {
	s.Passed = make(map[PlayerID]bool, len(s.TurnOrder))
	s.ActiveIdx = 0
}

// endTriggered reports whether the game-end condition holds at cleanup:
// any player has placed their last influence disc, or the round limit is
// reached.
func (s *State) endTriggered(maxRounds int) bool {
	if s.Round >= maxRounds {
		return true
	}
	for _, p := range s.Players {
		if p.DiscsUsed >= p.DiscsTotal {
			return true
		}
	}
	return false
}
