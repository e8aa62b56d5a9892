// Package catalog holds the immutable static game data: ship components and
// classes, technologies, species profiles, sector tiles, and discovery
// rewards. A Catalog is built once at process start and passed explicitly to
// the engine; nothing in this package is mutated after New returns.
package catalog

import "fmt"

// Catalog is the process-wide lookup table for static game data.
type Catalog struct {
	components  map[string]Component
	shipClasses map[string]ShipClass
	techs       map[string]Technology
	species     map[string]Species
	tiles       map[string]SectorTile
	discoveries map[string]DiscoveryTile
}

// New builds the catalog from the built-in data tables.
func New() *Catalog {
	c := &Catalog{
		components:  make(map[string]Component, len(components)),
		shipClasses: make(map[string]ShipClass, len(shipClasses)),
		techs:       make(map[string]Technology, len(technologies)),
		species:     make(map[string]Species, len(speciesList)),
		tiles:       make(map[string]SectorTile, len(sectorTiles)),
		discoveries: make(map[string]DiscoveryTile, len(discoveryTiles)),
	}
	for _, comp := range components {
		c.components[comp.ID] = comp
	}
	for _, sc := range shipClasses {
		c.shipClasses[sc.ID] = sc
	}
	for _, t := range technologies {
		c.techs[t.ID] = t
	}
	for _, s := range speciesList {
		c.species[s.ID] = s
	}
	for _, t := range sectorTiles {
		c.tiles[t.ID] = t
	}
	for _, d := range discoveryTiles {
		c.discoveries[d.ID] = d
	}
	return c
}

// Component returns a ship component definition by ID.
func (c *Catalog) Component(id string) (Component, error) {
	comp, ok := c.components[id]
	if !ok {
		return Component{}, fmt.Errorf("unknown ship component %q", id)
	}
	return comp, nil
}

// ShipClass returns a ship class definition by ID.
func (c *Catalog) ShipClass(id string) (ShipClass, error) {
	sc, ok := c.shipClasses[id]
	if !ok {
		return ShipClass{}, fmt.Errorf("unknown ship class %q", id)
	}
	return sc, nil
}

// Technology returns a technology definition by ID.
func (c *Catalog) Technology(id string) (Technology, error) {
	t, ok := c.techs[id]
	if !ok {
		return Technology{}, fmt.Errorf("unknown technology %q", id)
	}
	return t, nil
}

// Species returns a species profile by ID.
func (c *Catalog) Species(id string) (Species, error) {
	s, ok := c.species[id]
	if !ok {
		return Species{}, fmt.Errorf("unknown species %q", id)
	}
	return s, nil
}

// Tile returns a sector tile template by ID.
func (c *Catalog) Tile(id string) (SectorTile, error) {
	t, ok := c.tiles[id]
	if !ok {
		return SectorTile{}, fmt.Errorf("unknown sector tile %q", id)
	}
	return t, nil
}

// Discovery returns a discovery tile template by ID.
func (c *Catalog) Discovery(id string) (DiscoveryTile, error) {
	d, ok := c.discoveries[id]
	if !ok {
		return DiscoveryTile{}, fmt.Errorf("unknown discovery tile %q", id)
	}
	return d, nil
}

// ShipClasses returns all ship class definitions.
func (c *Catalog) ShipClasses() []ShipClass {
	out := make([]ShipClass, len(shipClasses))
	copy(out, shipClasses)
	return out
}

// Technologies returns all technology definitions.
func (c *Catalog) Technologies() []Technology {
	out := make([]Technology, len(technologies))
	copy(out, technologies)
	return out
}

// SpeciesList returns all species profiles.
func (c *Catalog) SpeciesList() []Species {
	out := make([]Species, len(speciesList))
	copy(out, speciesList)
	return out
}

// Tiles returns all sector tile templates in a category.
func (c *Catalog) Tiles(cat TileCategory) []SectorTile {
	var out []SectorTile
	for _, t := range sectorTiles {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// Discoveries returns all discovery tile templates.
func (c *Catalog) Discoveries() []DiscoveryTile {
	out := make([]DiscoveryTile, len(discoveryTiles))
	copy(out, discoveryTiles)
	return out
}

// OwnedInCategory counts how many of the given tech IDs fall in the category.
func (c *Catalog) OwnedInCategory(owned map[string]bool, cat TechCategory) int {
	n := 0
	for id := range owned {
		if t, ok := c.techs[id]; ok && t.Category == cat {
			n++
		}
	}
	return n
}
