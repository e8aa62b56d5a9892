package catalog

// Axial direction encoding for pointy-top hexes:
//
//	0: (q+1, r  )  east        3: (q-1, r  )  west
//	1: (q+1, r-1)  north-east  4: (q-1, r+1)  south-west
//	2: (q,   r-1)  north-west  5: (q,   r+1)  south-east
//
// The opposite of direction d is (d+3)%6. Two neighboring tiles are
// wormhole-connected only if each has a wormhole on its side of the shared
// edge.

// TileCategory identifies the map ring a sector tile belongs to.
type TileCategory string

const (
	TileGalacticCenter TileCategory = "galactic_center"
	TileInner          TileCategory = "inner"
	TileOuter          TileCategory = "outer"
	TileHomeworld      TileCategory = "homeworld"
)

// Planet is one colonizable slot on a sector tile.
type Planet struct {
	Type     string // "money", "science", "materials"
	Advanced bool   // advanced planets yield double income
}

// SectorTile is the static definition of a system tile. Wormholes lists the
// open edge directions before rotation.
type SectorTile struct {
	ID           string
	Name         string
	Category     TileCategory
	Planets      []Planet
	Wormholes    []int
	AncientShips int
	HasDiscovery bool
	Guardian     bool // the galactic center defense system
}

var sectorTiles = []SectorTile{
	{
		ID: "gc", Name: "Galactic Center", Category: TileGalacticCenter,
		Wormholes:    []int{0, 1, 2, 3, 4, 5},
		AncientShips: 1, Guardian: true,
	},

	// Inner ring
	{
		ID: "inner_1", Name: "Maia", Category: TileInner,
		Planets:      []Planet{{Type: "money"}, {Type: "science"}},
		Wormholes:    []int{0, 2, 3, 5},
		HasDiscovery: true,
	},
	{
		ID: "inner_2", Name: "Electra", Category: TileInner,
		Planets:      []Planet{{Type: "materials", Advanced: true}},
		Wormholes:    []int{0, 1, 3},
		AncientShips: 1, HasDiscovery: true,
	},
	{
		ID: "inner_3", Name: "Taygeta", Category: TileInner,
		Planets:      []Planet{{Type: "science"}, {Type: "materials"}},
		Wormholes:    []int{1, 2, 4, 5},
		HasDiscovery: true,
	},
	{
		ID: "inner_4", Name: "Alcyone", Category: TileInner,
		Planets:      []Planet{{Type: "money", Advanced: true}, {Type: "science"}},
		Wormholes:    []int{0, 3, 4},
		AncientShips: 2, HasDiscovery: true,
	},

	// Outer ring
	{
		ID: "outer_1", Name: "Asterope", Category: TileOuter,
		Planets:      []Planet{{Type: "materials"}},
		Wormholes:    []int{0, 2},
		HasDiscovery: true,
	},
	{
		ID: "outer_2", Name: "Celaeno", Category: TileOuter,
		Planets:      []Planet{{Type: "science", Advanced: true}},
		Wormholes:    []int{1, 3, 5},
		AncientShips: 1, HasDiscovery: true,
	},
	{
		ID: "outer_3", Name: "Merope", Category: TileOuter,
		Wormholes:    []int{0, 3},
		HasDiscovery: true,
	},
	{
		ID: "outer_4", Name: "Sterope", Category: TileOuter,
		Planets:      []Planet{{Type: "money"}, {Type: "materials"}},
		Wormholes:    []int{2, 4, 5},
		HasDiscovery: true,
	},

	// Homeworld template; planets are replaced per species at setup.
	{
		ID: "homeworld", Name: "Homeworld", Category: TileHomeworld,
		Planets:   []Planet{{Type: "money"}, {Type: "science"}, {Type: "materials"}},
		Wormholes: []int{0, 1, 2, 3, 4, 5},
	},
}

// RotatedWormholes returns the tile's wormhole directions after applying a
// rotation of n sixths of a turn.
func RotatedWormholes(tile SectorTile, rotation int) []int {
	out := make([]int, 0, len(tile.Wormholes))
	for _, w := range tile.Wormholes {
		out = append(out, (w+rotation)%6)
	}
	return out
}
