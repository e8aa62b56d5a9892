package game

import "testing"

// economyState builds a single-player state with the given number of owned
// hexes, each optionally seating one money cube.
func economyState(t *testing.T, e *Engine, colonies int, withCubes bool) (*State, *Player) {
	t.Helper()
	s := newState("economy")
	id, err := e.addPlayer(s, "Alice", "terran")
	if err != nil {
		t.Fatalf("failed to add player: %v", err)
	}
	p := s.Players[id]
	for i := 0; i < colonies; i++ {
		h := e.placeHex(s, i, 0, "inner_1", 0)
		h.Explored = true
		h.Owner = id
		s.claimSeq++
		h.ClaimedSeq = s.claimSeq
		p.DiscsUsed++
		if withCubes {
			h.Population = map[int]PopCube{0: {Owner: id, Type: ResourceMoney}}
			p.Population[ResourceMoney]--
		}
	}
	return s, p
}

func TestUpkeepCollectsIncomeAndBill(t *testing.T) {
	e := newTestEngine(t)
	s, p := economyState(t, e, 3, true)
	p.Money = 0

	e.runUpkeep(s)

	// Three money cubes earn 3; three discs cost 3.
	if p.Money != 0 {
		t.Fatalf("expected balanced books, got %d money", p.Money)
	}
	for _, h := range s.Hexes {
		if h.Owner != p.ID {
			t.Fatal("solvent player lost a colony")
		}
	}
}

func TestUpkeepTechIncomeBonus(t *testing.T) {
	e := newTestEngine(t)
	s, p := economyState(t, e, 1, false)
	p.Money = 1
	p.Techs["quantum_grid"] = true // +1 science per round

	e.runUpkeep(s)

	if p.Science != 4 {
		t.Fatalf("expected 3+1 science, got %d", p.Science)
	}
	if p.Money != 0 {
		t.Fatalf("expected 1 money spent on the disc, got %d", p.Money)
	}
}

func TestBankruptcyReleasesNewestOfEqualColonies(t *testing.T) {
	e := newTestEngine(t)
	s, p := economyState(t, e, 3, false)
	p.Money = 2 // bill is 3; one colony must go

	e.runUpkeep(s)

	if p.Money != 0 {
		t.Fatalf("expected 0 money after the reduced bill, got %d", p.Money)
	}
	if p.DiscsUsed != 2 {
		t.Fatalf("expected 2 discs after one release, got %d", p.DiscsUsed)
	}

	var released *Hex
	for _, h := range s.Hexes {
		if h.Owner == NoPlayer {
			released = h
		}
	}
	if released == nil {
		t.Fatal("no colony released")
	}
	// All three colonies are worthless; the newest claim goes first.
	for _, h := range s.Hexes {
		if h.Owner == p.ID && h.ClaimedSeq > released.ClaimedSeq {
			t.Fatal("an older colony was released before a newer one")
		}
	}
}

func TestBankruptcyReleasesLowestValueColonyFirst(t *testing.T) {
	e := newTestEngine(t)
	s, p := economyState(t, e, 2, false)
	// Seat a cube on the older colony only; the newer one earns nothing.
	var oldest, newest *Hex
	for _, h := range s.Hexes {
		if oldest == nil || h.ClaimedSeq < oldest.ClaimedSeq {
			oldest = h
		}
		if newest == nil || h.ClaimedSeq > newest.ClaimedSeq {
			newest = h
		}
	}
	oldest.Population = map[int]PopCube{0: {Owner: p.ID, Type: ResourceMoney}}
	p.Population[ResourceMoney]--
	p.Money = 0 // income 1, bill 2; one colony must go

	e.runUpkeep(s)

	if oldest.Owner != p.ID {
		t.Fatal("the productive colony was released")
	}
	if newest.Owner != NoPlayer {
		t.Fatal("the worthless colony was kept")
	}
}

func TestAdvancedPlanetYieldsDoubleIncome(t *testing.T) {
	e := newTestEngine(t)
	s := newState("economy")
	id, err := e.addPlayer(s, "Alice", "terran")
	if err != nil {
		t.Fatalf("failed to add player: %v", err)
	}
	p := s.Players[id]
	// inner_4 slot 0 is an advanced money planet.
	tile, err := e.catalog.Tile("inner_4")
	if err != nil {
		t.Fatalf("tile lookup failed: %v", err)
	}
	h := e.placeHex(s, 0, 0, tile.ID, 0)
	h.Explored = true
	h.Owner = id
	h.Planets = tile.Planets
	h.Population = map[int]PopCube{0: {Owner: id, Type: ResourceMoney}}
	p.Population[ResourceMoney]--
	p.DiscsUsed = 1
	p.Money = 0

	e.runUpkeep(s)

	// Two income from the advanced planet, one disc of upkeep.
	if p.Money != 1 {
		t.Fatalf("expected 1 money, got %d", p.Money)
	}
}

func TestBankruptcyReturnsCubesToSupply(t *testing.T) {
	e := newTestEngine(t)
	s, p := economyState(t, e, 1, true)
	p.Money = 0
	p.Population[ResourceMoney] = 0
	// Income of 1 cannot cover a bill of... it can. Raise the bill.
	p.DiscsUsed = 5

	e.runUpkeep(s)

	for _, h := range s.Hexes {
		if h.Owner == p.ID {
			t.Fatal("insolvent player kept the colony")
		}
		if len(h.Population) != 0 {
			t.Fatal("cube left on a released colony")
		}
	}
	if p.Population[ResourceMoney] != 1 {
		t.Fatalf("cube not returned to supply: %d", p.Population[ResourceMoney])
	}
}

func TestFinalTallyBreaksTiesOnMoney(t *testing.T) {
	e := newTestEngine(t)
	s := newState("tally")
	a, _ := e.addPlayer(s, "Alice", "terran")
	b, _ := e.addPlayer(s, "Bob", "hydran")
	s.Players[a].VP = 5
	s.Players[b].VP = 5
	s.Players[a].Money = 1
	s.Players[b].Money = 4

	e.finishGame(s)

	if s.Phase != PhaseFinished {
		t.Fatalf("expected FINISHED, got %s", s.Phase)
	}
	if s.Winner != b {
		t.Fatalf("expected player %d to win the money tie-break, got %d", b, s.Winner)
	}
}

func TestFinalTallyScoresTechVP(t *testing.T) {
	e := newTestEngine(t)
	s := newState("tally")
	a, _ := e.addPlayer(s, "Alice", "terran")
	b, _ := e.addPlayer(s, "Bob", "hydran")
	s.Players[b].VP = 2
	s.Players[a].Techs["monolith"] = true // 3 VP at game end

	e.finishGame(s)

	if got := s.Players[a].VP; got != 3 {
		t.Fatalf("expected 3 VP from the monolith, got %d", got)
	}
	if s.Winner != a {
		t.Fatalf("expected player %d to win, got %d", a, s.Winner)
	}
}
