package game

import "testing"

func TestDirectionBetweenNeighbors(t *testing.T) {
	cases := []struct {
		q2, r2 int
		dir    int
	}{
		{1, 0, 0}, {1, -1, 1}, {0, -1, 2}, {-1, 0, 3}, {-1, 1, 4}, {0, 1, 5},
	}
	for _, c := range cases {
		dir, ok := direction(0, 0, c.q2, c.r2)
		if !ok || dir != c.dir {
			t.Errorf("direction to (%d,%d): got %d/%v, want %d", c.q2, c.r2, dir, ok, c.dir)
		}
	}
	if _, ok := direction(0, 0, 2, 0); ok {
		t.Error("non-adjacent hexes reported a direction")
	}
}

func TestLinkedRequiresMutualWormholes(t *testing.T) {
	a := &Hex{Q: 0, R: 0, Wormholes: []int{0}}
	b := &Hex{Q: 1, R: 0, Wormholes: []int{3}}
	if !linked(a, b) {
		t.Fatal("mutually facing wormholes not linked")
	}

	b.Wormholes = []int{0}
	if linked(a, b) {
		t.Fatal("one-sided wormhole counted as a link")
	}

	a.Wormholes = nil
	if linked(a, b) {
		t.Fatal("wormhole-less hexes linked")
	}
}

func TestConnectivityStepsAcrossChain(t *testing.T) {
	s := newState("conn-test")
	all := []int{0, 1, 2, 3, 4, 5}
	mk := func(id HexID, q, r int) {
		s.Hexes[id] = &Hex{ID: id, Q: q, R: r, Explored: true, Wormholes: all}
	}
	mk(1, 0, 0)
	mk(2, 1, 0)
	mk(3, 2, 0)

	c := s.buildConnectivity()
	if steps, ok := c.steps(1, 3); !ok || steps != 2 {
		t.Fatalf("expected 2 hops, got %d/%v", steps, ok)
	}
	if steps, ok := c.steps(1, 1); !ok || steps != 0 {
		t.Fatalf("expected 0 hops to self, got %d/%v", steps, ok)
	}
}

func TestConnectivityExcludesUnexploredHexes(t *testing.T) {
	s := newState("conn-test")
	all := []int{0, 1, 2, 3, 4, 5}
	s.Hexes[1] = &Hex{ID: 1, Q: 0, R: 0, Explored: true, Wormholes: all}
	s.Hexes[2] = &Hex{ID: 2, Q: 1, R: 0, Explored: false, Wormholes: all}
	s.Hexes[3] = &Hex{ID: 3, Q: 2, R: 0, Explored: true, Wormholes: all}

	c := s.buildConnectivity()
	if _, ok := c.steps(1, 3); ok {
		t.Fatal("path crossed an unexplored hex")
	}

	// Including the unexplored hex as an extra endpoint restores the path.
	c = s.buildConnectivity(2)
	if steps, ok := c.steps(1, 3); !ok || steps != 2 {
		t.Fatalf("expected 2 hops with extra endpoint, got %d/%v", steps, ok)
	}
}
