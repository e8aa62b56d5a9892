package game

import (
	"github.com/dominikbraun/graph"
)

// Axial direction vectors for pointy-top hexes; index is the direction
// encoding shared with the tile catalog. Opposite of d is (d+3)%6.
var hexDirections = [6][2]int{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// direction returns the direction index from (q1,r1) to (q2,r2), or false
// when the hexes are not adjacent.
func direction(q1, r1, q2, r2 int) (int, bool) {
	dq, dr := q2-q1, r2-r1
	for i, d := range hexDirections {
		if d[0] == dq && d[1] == dr {
			return i, true
		}
	}
	return 0, false
}

// linked reports whether two hexes are adjacent and share a wormhole
// connection: a must have a wormhole facing b AND b one facing a.
func linked(a, b *Hex) bool {
	dir, ok := direction(a.Q, a.R, b.Q, b.R)
	if !ok {
		return false
	}
	opposite := (dir + 3) % 6
	return containsDir(a.Wormholes, dir) && containsDir(b.Wormholes, opposite)
}

func containsDir(dirs []int, d int) bool {
	for _, w := range dirs {
		if w == d {
			return true
		}
	}
	return false
}

// connectivity answers multi-hop reachability questions over the wormhole
// network. Vertices are hex IDs; edges join mutually-linked neighbors.
type connectivity struct {
	g graph.Graph[HexID, HexID]
}

// buildConnectivity constructs the wormhole graph over the explored hexes,
// plus any extra hexes the caller wants treated as traversable endpoints
// (e.g. an unexplored explore target).
func (s *State) buildConnectivity(extra ...HexID) *connectivity {
	include := make(map[HexID]bool, len(s.Hexes))
	for id, h := range s.Hexes {
		if h.Explored {
			include[id] = true
		}
	}
	for _, id := range extra {
		include[id] = true
	}

	g := graph.New(func(h HexID) HexID { return h })
	for id := range include {
		_ = g.AddVertex(id)
	}
	for a := range include {
		for b := range include {
			if a >= b {
				continue
			}
			if linked(s.Hexes[a], s.Hexes[b]) {
				_ = g.AddEdge(a, b, graph.EdgeWeight(1))
			}
		}
	}
	return &connectivity{g: g}
}

// steps returns the hop count of the shortest wormhole path between two
// hexes, and whether any path exists.
func (c *connectivity) steps(from, to HexID) (int, bool) {
	if from == to {
		return 0, true
	}
	path, err := graph.ShortestPath(c.g, from, to)
	if err != nil || len(path) == 0 {
		return 0, false
	}
	return len(path) - 1, true
}
