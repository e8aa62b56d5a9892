package catalog

// ComponentCategory classifies ship components by the blueprint slot role
// they fill and the combat phase they participate in.
type ComponentCategory string

const (
	CategoryCannon   ComponentCategory = "cannon"
	CategoryMissile  ComponentCategory = "missile"
	CategoryDrive    ComponentCategory = "drive"
	CategorySource   ComponentCategory = "source"
	CategoryComputer ComponentCategory = "computer"
	CategoryShield   ComponentCategory = "shield"
	CategoryHull     ComponentCategory = "hull"
)

// Component is the static definition of a single ship part. Components with
// a non-empty RequiresTech can only be slotted once that technology is owned.
type Component struct {
	ID       string
	Name     string
	Category ComponentCategory

	PowerGenerated int
	PowerConsumed  int

	Damage     int  // damage per hit (cannons and missiles)
	FiresFirst bool // missiles fire before the cannon sub-rounds

	Movement int // drive rating contribution
	Accuracy int // computer bonus added to attack rolls
	Shield   int // subtracted from incoming attack rolls
	ExtraHP  int // additional hull points

	RequiresTech string
}

var components = []Component{
	// Sources
	{ID: "nuclear_source", Name: "Nuclear Source", Category: CategorySource, PowerGenerated: 3},
	{ID: "fusion_source", Name: "Fusion Source", Category: CategorySource, PowerGenerated: 6, RequiresTech: "fusion_source"},
	{ID: "antimatter_source", Name: "Antimatter Source", Category: CategorySource, PowerGenerated: 9, RequiresTech: "antimatter_source"},

	// Drives
	{ID: "electron_drive", Name: "Electron Drive", Category: CategoryDrive, PowerConsumed: 1, Movement: 1},
	{ID: "nuclear_drive", Name: "Nuclear Drive", Category: CategoryDrive, PowerConsumed: 2, Movement: 2, RequiresTech: "nuclear_drive"},
	{ID: "fusion_drive", Name: "Fusion Drive", Category: CategoryDrive, PowerConsumed: 3, Movement: 3, RequiresTech: "fusion_drive"},
	{ID: "warp_drive", Name: "Warp Drive", Category: CategoryDrive, PowerConsumed: 3, Movement: 4, RequiresTech: "warp_drive"},

	// Cannons
	{ID: "electron_cannon", Name: "Electron Cannon", Category: CategoryCannon, PowerConsumed: 1, Damage: 1},
	{ID: "ion_cannon", Name: "Ion Cannon", Category: CategoryCannon, PowerConsumed: 1, Damage: 2, RequiresTech: "ion_cannon"},
	{ID: "plasma_cannon", Name: "Plasma Cannon", Category: CategoryCannon, PowerConsumed: 2, Damage: 4, RequiresTech: "plasma_cannon"},
	{ID: "antimatter_cannon", Name: "Antimatter Cannon", Category: CategoryCannon, PowerConsumed: 4, Damage: 7, RequiresTech: "antimatter_cannon"},

	// Missiles
	{ID: "flux_missile", Name: "Flux Missile", Category: CategoryMissile, PowerConsumed: 2, Damage: 2, FiresFirst: true, RequiresTech: "flux_missile"},
	{ID: "plasma_missile", Name: "Plasma Missile", Category: CategoryMissile, PowerConsumed: 3, Damage: 4, FiresFirst: true, RequiresTech: "plasma_missile"},

	// Computers
	{ID: "basic_computer", Name: "Basic Computer", Category: CategoryComputer, Accuracy: 1},
	{ID: "positron_computer", Name: "Positron Computer", Category: CategoryComputer, PowerConsumed: 1, Accuracy: 3, RequiresTech: "positron_computer"},

	// Shields
	{ID: "basic_shield", Name: "Basic Shield", Category: CategoryShield, Shield: 1},
	{ID: "gauss_shield", Name: "Gauss Shield", Category: CategoryShield, PowerConsumed: 1, Shield: 2, RequiresTech: "gauss_shield"},
	{ID: "phase_shield", Name: "Phase Shield", Category: CategoryShield, PowerConsumed: 1, Shield: 3, RequiresTech: "phase_shield"},

	// Hulls
	{ID: "improved_hull", Name: "Improved Hull", Category: CategoryHull, ExtraHP: 1, RequiresTech: "improved_hull"},
	{ID: "sentient_hull", Name: "Sentient Hull", Category: CategoryHull, PowerConsumed: 1, ExtraHP: 2, RequiresTech: "sentient_hull"},
}

// ShipClass is the static definition of a buildable ship type. A blueprint
// for a class has exactly SlotCount slots; empty slots hold "".
type ShipClass struct {
	ID             string
	Name           string
	SlotCount      int
	BaseHP         int
	BaseInitiative int
	CanMove        bool
	BuildCost      int // materials
	DefaultSlots   []string
}

var shipClasses = []ShipClass{
	{
		ID: "interceptor", Name: "Interceptor",
		SlotCount: 4, BaseHP: 1, BaseInitiative: 2, CanMove: true, BuildCost: 3,
		DefaultSlots: []string{"nuclear_source", "electron_cannon", "electron_drive", ""},
	},
	{
		ID: "cruiser", Name: "Cruiser",
		SlotCount: 6, BaseHP: 1, BaseInitiative: 1, CanMove: true, BuildCost: 5,
		DefaultSlots: []string{"nuclear_source", "electron_cannon", "electron_drive", "", "", ""},
	},
	{
		ID: "dreadnought", Name: "Dreadnought",
		SlotCount: 8, BaseHP: 2, BaseInitiative: 0, CanMove: true, BuildCost: 8,
		DefaultSlots: []string{
			"nuclear_source", "nuclear_source",
			"electron_cannon", "electron_cannon",
			"electron_drive", "", "", "",
		},
	},
	{
		ID: "starbase", Name: "Starbase",
		SlotCount: 5, BaseHP: 3, BaseInitiative: 3, CanMove: false, BuildCost: 3,
		DefaultSlots: []string{"nuclear_source", "electron_cannon", "basic_shield", "", ""},
	},
	{
		ID: "colony_ship", Name: "Colony Ship",
		SlotCount: 0, BaseHP: 1, BaseInitiative: 0, CanMove: true, BuildCost: 2,
	},
}

// PowerBalance returns net power (generated minus consumed) for a slot list.
// Unknown component IDs are skipped; empty slots are "".
func (c *Catalog) PowerBalance(slots []string) int {
	total := 0
	for _, id := range slots {
		if id == "" {
			continue
		}
		comp, ok := c.components[id]
		if !ok {
			continue
		}
		total += comp.PowerGenerated - comp.PowerConsumed
	}
	return total
}

// BlueprintValid reports whether the slot list has a non-negative power balance.
func (c *Catalog) BlueprintValid(slots []string) bool {
	return c.PowerBalance(slots) >= 0
}
