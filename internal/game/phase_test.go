package game

import "testing"

func turnOrderState(players ...PlayerID) *State {
	s := newState("phase-test")
	s.Phase = PhaseStrategy
	s.TurnOrder = players
	for _, id := range players {
		s.Players[id] = &Player{ID: id, DiscsTotal: 11}
	}
	return s
}

func TestAdvanceCursorSkipsPassedPlayers(t *testing.T) {
	s := turnOrderState(1, 2, 3)
	s.Passed[2] = true

	s.advanceCursor()
	if got := s.TurnOrder[s.ActiveIdx]; got != 3 {
		t.Fatalf("expected cursor on player 3, got %d", got)
	}
	s.advanceCursor()
	if got := s.TurnOrder[s.ActiveIdx]; got != 1 {
		t.Fatalf("expected wrap-around to player 1, got %d", got)
	}
}

func TestAdvanceCursorNoOpWhenAllPassed(t *testing.T) {
	s := turnOrderState(1, 2)
	s.Passed[1] = true
	s.Passed[2] = true
	s.ActiveIdx = 1

	s.advanceCursor()
	if s.ActiveIdx != 1 {
		t.Fatalf("cursor moved with everyone passed: %d", s.ActiveIdx)
	}
	if !s.allPassed() {
		t.Fatal("allPassed false with every player passed")
	}
}

func TestResetRoundClearsPassedSet(t *testing.T) {
	s := turnOrderState(1, 2)
	s.Passed[1] = true
	s.ActiveIdx = 1

	s.resetRound()
	if len(s.Passed) != 0 {
		t.Fatalf("passed set survived reset: %v", s.Passed)
	}
	if s.ActiveIdx != 0 {
		t.Fatalf("cursor not reset: %d", s.ActiveIdx)
	}
}

func TestEndTriggeredByRoundLimit(t *testing.T) {
	s := turnOrderState(1, 2)
	s.Round = 8
	if s.endTriggered(9) {
		t.Fatal("end triggered a round early")
	}
	s.Round = 9
	if !s.endTriggered(9) {
		t.Fatal("end not triggered at the round limit")
	}
}

func TestEndTriggeredByLastDisc(t *testing.T) {
	s := turnOrderState(1, 2)
	s.Round = 3
	s.Players[2].DiscsUsed = s.Players[2].DiscsTotal
	if !s.endTriggered(9) {
		t.Fatal("end not triggered by an exhausted disc supply")
	}
}

func TestPhaseStringNames(t *testing.T) {
	cases := map[Phase]string{
		PhaseLobby:    "LOBBY",
		PhaseStrategy: "STRATEGY",
		PhaseCombat:   "COMBAT",
		PhaseUpkeep:   "UPKEEP",
		PhaseCleanup:  "CLEANUP",
		PhaseFinished: "FINISHED",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(phase), got, want)
		}
	}
	if got := Phase(42).String(); got != "PHASE_42" {
		t.Errorf("unknown phase: got %q", got)
	}
}
