package game

import (
	"reflect"
	"testing"
)

// battleground builds a minimal two-hex board for resolver tests: one
// explored battlefield hex and a linked explored neighbor for retreats.
func battleground(t *testing.T, e *Engine) (*State, HexID, HexID) {
	t.Helper()
	s := newState("battle")
	field := e.placeHex(s, 0, 0, "inner_1", 0)
	field.Explored = true
	field.Wormholes = []int{0, 1, 2, 3, 4, 5}
	refuge := e.placeHex(s, 1, 0, "outer_3", 0)
	refuge.Explored = true
	refuge.Wormholes = []int{0, 1, 2, 3, 4, 5}
	return s, field.ID, refuge.ID
}

func addCombatPlayer(t *testing.T, e *Engine, s *State, name string, interceptorSlots []string) PlayerID {
	t.Helper()
	id, err := e.addPlayer(s, name, "terran")
	if err != nil {
		t.Fatalf("failed to add player: %v", err)
	}
	if interceptorSlots != nil {
		s.Players[id].Blueprints["interceptor"] = interceptorSlots
	}
	return id
}

var unarmedInterceptor = []string{"nuclear_source", "electron_drive", "", ""}

func TestWeaponlessStandoffEndsWithNoExchange(t *testing.T) {
	e := newTestEngine(t)
	s, field, _ := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", unarmedInterceptor)
	b := addCombatPlayer(t, e, s, "Bob", unarmedInterceptor)
	shipA := s.addShip(a, "interceptor", field, 1, false, false)
	shipB := s.addShip(b, "interceptor", field, 1, false, false)

	enc := e.resolveEncounter(s, field)

	if len(enc.Shots) != 0 {
		t.Fatalf("expected no shots, got %d", len(enc.Shots))
	}
	if len(enc.Destroyed) != 0 {
		t.Fatalf("expected no destruction, got %v", enc.Destroyed)
	}
	if enc.Winner != FactionNone {
		t.Fatalf("expected no winner, got %s", enc.Winner)
	}
	if s.Ships[shipA.ID] == nil || s.Ships[shipB.ID] == nil {
		t.Fatal("ships removed in a weaponless stand-off")
	}
}

func TestAncientFiresFirstAndFallsToUpgunnedInterceptor(t *testing.T) {
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{3, 6}}))
	s, field, _ := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "ion_cannon", "electron_drive", "basic_computer"})
	ship := s.addShip(a, "interceptor", field, 1, false, false)
	ancient := s.addShip(NoPlayer, "cruiser", field, 1, true, false)

	enc := e.resolveEncounter(s, field)

	if len(enc.Shots) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(enc.Shots))
	}
	// Ancient initiative 4 beats the interceptor's 3; its roll of 3 plus
	// computer 2 misses the threshold.
	first := enc.Shots[0]
	if first.Attacker != ancient.ID || first.Hit {
		t.Fatalf("expected ancient to fire first and miss, got %+v", first)
	}
	// 6 + computer 1 - shield 1 = 6: hit, and the ion cannon's 2 damage
	// finishes the one-hull ancient.
	second := enc.Shots[1]
	if second.Attacker != ship.ID || !second.Hit || !second.Destroyed {
		t.Fatalf("expected interceptor kill shot, got %+v", second)
	}

	if enc.Winner != Faction(a) {
		t.Fatalf("expected player victory, got %s", enc.Winner)
	}
	if s.Ships[ancient.ID] != nil {
		t.Fatal("destroyed ancient still on the board")
	}
	if got := s.Players[a].VP; got != e.rules.AncientKillVP {
		t.Fatalf("expected %d VP for the ancient kill, got %d", e.rules.AncientKillVP, got)
	}
	if got := s.Players[a].VPBreakdown["combat"]; got != e.rules.AncientKillVP {
		t.Fatalf("combat VP breakdown not recorded: %d", got)
	}
}

func TestMissilesResolveBeforeCannons(t *testing.T) {
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{6}}))
	s, field, _ := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "flux_missile", "electron_drive", ""})
	b := addCombatPlayer(t, e, s, "Bob", unarmedInterceptor)
	s.addShip(a, "interceptor", field, 1, false, false)
	target := s.addShip(b, "interceptor", field, 1, false, false)

	enc := e.resolveEncounter(s, field)

	if len(enc.Shots) != 1 {
		t.Fatalf("expected a single missile shot, got %d", len(enc.Shots))
	}
	shot := enc.Shots[0]
	if shot.Phase != "missile" || !shot.Hit || !shot.Destroyed {
		t.Fatalf("expected destroying missile shot, got %+v", shot)
	}
	if shot.Target != target.ID {
		t.Fatalf("missile targeted ship %d, want %d", shot.Target, target.ID)
	}
	if enc.SubRounds != 0 {
		t.Fatalf("cannon sub-rounds ran after missile decided it: %d", enc.SubRounds)
	}
	if got := s.Players[a].VP; got != e.rules.KillVP {
		t.Fatalf("expected %d VP for the kill, got %d", e.rules.KillVP, got)
	}
}

func TestDamageFallsOnLargestDefender(t *testing.T) {
	// Rolls of 6 guarantee hits both ways; Alice's ion cannon fires at
	// Bob's side which has a 2-hull dreadnought and a 1-hull interceptor.
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{6}}))
	s, field, _ := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "ion_cannon", "electron_drive", "basic_computer"})
	b := addCombatPlayer(t, e, s, "Bob", unarmedInterceptor)
	s.Players[b].Blueprints["dreadnought"] = []string{
		"nuclear_source", "nuclear_source", "electron_drive", "", "", "", "", "",
	}
	s.addShip(a, "interceptor", field, 1, false, false)
	dread := s.addShip(b, "dreadnought", field, 2, false, false)
	escort := s.addShip(b, "interceptor", field, 1, false, false)

	enc := e.resolveEncounter(s, field)

	if enc.Shots[0].Target != dread.ID {
		t.Fatalf("first shot targeted ship %d, want the 2-hull dreadnought %d", enc.Shots[0].Target, dread.ID)
	}
	want := []ShipID{dread.ID, escort.ID}
	if !reflect.DeepEqual(enc.Destroyed, want) {
		t.Fatalf("destruction order %v, want %v", enc.Destroyed, want)
	}
}

func TestCombatIsDeterministicForASeed(t *testing.T) {
	run := func() *Encounter {
		e := newTestEngine(t, WithDice(NewDice(99)))
		s, field, _ := battleground(t, e)
		a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "ion_cannon", "electron_drive", "basic_computer"})
		b := addCombatPlayer(t, e, s, "Bob", []string{"nuclear_source", "electron_cannon", "electron_drive", "basic_shield"})
		s.addShip(a, "interceptor", field, 1, false, false)
		s.addShip(a, "interceptor", field, 1, false, false)
		s.addShip(b, "interceptor", field, 1, false, false)
		s.addShip(b, "interceptor", field, 1, false, false)
		return e.resolveEncounter(s, field)
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed produced different encounters")
	}
}

func TestGuardianStatsApply(t *testing.T) {
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{1, 1, 6}}))
	s, field, _ := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "ion_cannon", "electron_drive", "basic_computer"})
	s.addShip(a, "interceptor", field, 1, false, false)
	guardian := s.addShip(NoPlayer, "cruiser", field, 2, true, true)

	enc := e.resolveEncounter(s, field)

	// Guardian fires two cannons first (initiative 4), both rolling 1.
	if len(enc.Shots) < 3 {
		t.Fatalf("expected at least 3 shots, got %d", len(enc.Shots))
	}
	if enc.Shots[0].Attacker != guardian.ID || enc.Shots[1].Attacker != guardian.ID {
		t.Fatal("guardian did not fire both cannons first")
	}
	// Interceptor rolls 6: 6 + 1 - shield 3 = 4, below the threshold.
	third := enc.Shots[2]
	if third.Hit {
		t.Fatalf("shot through guardian shield should miss: %+v", third)
	}
	if third.Shield != 3 {
		t.Fatalf("guardian shield not applied: %d", third.Shield)
	}
}

func TestRetreatPolicyWithdrawsFleet(t *testing.T) {
	// Bob retreats at the first window; Alice rolls 1s and never connects
	// before the withdrawal.
	policy := retreatTo{}
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{1}}), WithRetreatPolicy(&policy))
	s, field, refuge := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "ion_cannon", "electron_drive", "basic_computer"})
	b := addCombatPlayer(t, e, s, "Bob", unarmedInterceptor)
	policy.faction = Faction(b)
	policy.target = refuge
	s.addShip(a, "interceptor", field, 1, false, false)
	ship := s.addShip(b, "interceptor", field, 1, false, false)

	enc := e.resolveEncounter(s, field)

	if len(enc.Retreated) != 1 || enc.Retreated[0] != ship.ID {
		t.Fatalf("expected ship %d to retreat, got %v", ship.ID, enc.Retreated)
	}
	if s.Ships[ship.ID].Hex != refuge {
		t.Fatalf("retreated ship in hex %d, want %d", s.Ships[ship.ID].Hex, refuge)
	}
	if enc.Winner != Faction(a) {
		t.Fatalf("expected Alice to hold the field, got %s", enc.Winner)
	}
	if len(enc.Destroyed) != 0 {
		t.Fatalf("retreating fleet was destroyed: %v", enc.Destroyed)
	}
}

// retreatTo withdraws one faction to a fixed hex at the first window.
type retreatTo struct {
	faction Faction
	target  HexID
}

func (r *retreatTo) Retreat(_ *State, _ HexID, f Faction) (HexID, bool) {
	if f == r.faction {
		return r.target, true
	}
	return 0, false
}

func TestRetreatAtOpeningWindowSkipsMissileVolley(t *testing.T) {
	// Bob withdraws at the opening window and must not absorb Alice's
	// missiles on the way out.
	policy := retreatTo{}
	e := newTestEngine(t, WithDice(&ScriptedDice{Rolls: []int{6, 6}}), WithRetreatPolicy(&policy))
	s, field, refuge := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", []string{"nuclear_source", "flux_missile", "electron_drive", ""})
	b := addCombatPlayer(t, e, s, "Bob", unarmedInterceptor)
	policy.faction = Faction(b)
	policy.target = refuge
	s.addShip(a, "interceptor", field, 1, false, false)
	ship := s.addShip(b, "interceptor", field, 1, false, false)

	enc := e.resolveEncounter(s, field)

	if len(enc.Shots) != 0 {
		t.Fatalf("shots fired at a withdrawn fleet: %d", len(enc.Shots))
	}
	if len(enc.Retreated) != 1 || enc.Retreated[0] != ship.ID {
		t.Fatalf("expected ship %d to retreat, got %v", ship.ID, enc.Retreated)
	}
	if len(enc.Destroyed) != 0 {
		t.Fatalf("withdrawn fleet destroyed: %v", enc.Destroyed)
	}
	if got := s.Ships[ship.ID]; got == nil || got.Hex != refuge {
		t.Fatal("retreating ship did not reach the refuge")
	}
	if enc.Winner != Faction(a) {
		t.Fatalf("expected Alice to hold the field, got %s", enc.Winner)
	}
}

func TestInitiativeOrdering(t *testing.T) {
	e := newTestEngine(t)
	cs := []*combatant{
		{id: 4, initiative: 1, classRank: e.classRank("dreadnought")},
		{id: 3, initiative: 3, classRank: e.classRank("interceptor")},
		{id: 2, initiative: 3, classRank: e.classRank("starbase")},
		{id: 1, initiative: 3, classRank: e.classRank("interceptor")},
	}
	for _, c := range cs {
		c.hp = 1
	}
	byInitiative(cs)

	// Starbase outranks interceptors on equal initiative; equal classes
	// fall back to ship ID.
	want := []ShipID{2, 1, 3, 4}
	for i, c := range cs {
		if c.id != want[i] {
			t.Fatalf("position %d: got ship %d, want %d", i, c.id, want[i])
		}
	}
}

func TestContestedHexesFindsMixedFactions(t *testing.T) {
	e := newTestEngine(t)
	s, field, refuge := battleground(t, e)
	a := addCombatPlayer(t, e, s, "Alice", nil)
	b := addCombatPlayer(t, e, s, "Bob", nil)
	s.addShip(a, "interceptor", field, 1, false, false)
	s.addShip(b, "interceptor", field, 1, false, false)
	s.addShip(a, "interceptor", refuge, 1, false, false)

	got := s.contestedHexes()
	if len(got) != 1 || got[0] != field {
		t.Fatalf("expected [%d], got %v", field, got)
	}
}
