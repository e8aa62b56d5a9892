package catalog

// TechCategory groups technologies for the same-category research discount.
type TechCategory string

const (
	TechMilitary TechCategory = "military"
	TechGrid     TechCategory = "grid"
	TechNano     TechCategory = "nano"
	TechQuantum  TechCategory = "quantum"
	TechRare     TechCategory = "rare"
	TechAncient  TechCategory = "ancient" // discovery-only, never researchable
)

// TechEffect describes one game effect of a technology. EffectType selects
// the interpretation of the remaining fields.
type TechEffect struct {
	// "income_bonus", "stat_bonus", "unlock", "vp", "special"
	EffectType string

	// income_bonus
	Resource string // "money", "science", "materials"
	Flat     int    // flat per-round income, or one-time grant when Once
	Once     bool

	// stat_bonus
	Attribute string // "hull", "shield", "accuracy", "initiative"
	Amount    int

	// unlock
	Component string

	// vp (awarded at game end)
	VP int

	// special
	Special string
}

// Technology is the static definition of a research tile.
type Technology struct {
	ID            string
	Name          string
	Category      TechCategory
	BaseCost      int // science, before the same-category discount
	Prerequisites []string
	Effects       []TechEffect
	Researchable  bool
}

var technologies = []Technology{
	// Military
	{
		ID: "improved_hull", Name: "Improved Hull", Category: TechMilitary, BaseCost: 2, Researchable: true,
		Effects: []TechEffect{{EffectType: "stat_bonus", Attribute: "hull", Amount: 1}},
	},
	{
		ID: "sentient_hull", Name: "Sentient Hull", Category: TechMilitary, BaseCost: 3, Researchable: true,
		Prerequisites: []string{"improved_hull"},
		Effects:       []TechEffect{{EffectType: "special", Special: "self_repair"}},
	},
	{
		ID: "gauss_shield", Name: "Gauss Shield", Category: TechMilitary, BaseCost: 4, Researchable: true,
		Effects: []TechEffect{{EffectType: "stat_bonus", Attribute: "shield", Amount: 2}},
	},
	{
		ID: "phase_shield", Name: "Phase Shield", Category: TechMilitary, BaseCost: 6, Researchable: true,
		Prerequisites: []string{"gauss_shield"},
		Effects:       []TechEffect{{EffectType: "stat_bonus", Attribute: "shield", Amount: 3}},
	},
	{
		ID: "neural_targeting", Name: "Neural Targeting", Category: TechMilitary, BaseCost: 5, Researchable: true,
		Effects: []TechEffect{{EffectType: "stat_bonus", Attribute: "accuracy", Amount: 1}},
	},
	{
		ID: "advanced_targeting", Name: "Advanced Targeting", Category: TechMilitary, BaseCost: 7, Researchable: true,
		Prerequisites: []string{"neural_targeting"},
		Effects:       []TechEffect{{EffectType: "stat_bonus", Attribute: "accuracy", Amount: 2}},
	},

	// Grid (drives and power sources)
	{
		ID: "nuclear_drive", Name: "Nuclear Drive", Category: TechGrid, BaseCost: 2, Researchable: true,
		Effects: []TechEffect{{EffectType: "unlock", Component: "nuclear_drive"}},
	},
	{
		ID: "fusion_drive", Name: "Fusion Drive", Category: TechGrid, BaseCost: 4, Researchable: true,
		Prerequisites: []string{"nuclear_drive"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "fusion_drive"}},
	},
	{
		ID: "warp_drive", Name: "Warp Drive", Category: TechGrid, BaseCost: 6, Researchable: true,
		Prerequisites: []string{"fusion_drive"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "warp_drive"}},
	},
	{
		ID: "nuclear_source", Name: "Nuclear Source", Category: TechGrid, BaseCost: 3, Researchable: true,
		Effects: []TechEffect{{EffectType: "unlock", Component: "nuclear_source"}},
	},
	{
		ID: "fusion_source", Name: "Fusion Source", Category: TechGrid, BaseCost: 5, Researchable: true,
		Prerequisites: []string{"nuclear_source"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "fusion_source"}},
	},
	{
		ID: "antimatter_source", Name: "Antimatter Source", Category: TechGrid, BaseCost: 8, Researchable: true,
		Prerequisites: []string{"fusion_source"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "antimatter_source"}},
	},

	// Nano (economy)
	{
		ID: "advanced_mining", Name: "Advanced Mining", Category: TechNano, BaseCost: 3, Researchable: true,
		Effects: []TechEffect{{EffectType: "income_bonus", Resource: "materials", Flat: 1}},
	},
	{
		ID: "nanorobots", Name: "Nanorobots", Category: TechNano, BaseCost: 5, Researchable: true,
		Prerequisites: []string{"advanced_mining"},
		Effects:       []TechEffect{{EffectType: "special", Special: "build_anywhere"}},
	},
	{
		ID: "quantum_grid", Name: "Quantum Grid", Category: TechNano, BaseCost: 4, Researchable: true,
		Effects: []TechEffect{{EffectType: "income_bonus", Resource: "science", Flat: 1}},
	},
	{
		ID: "conifold_field", Name: "Conifold Field", Category: TechNano, BaseCost: 6, Researchable: true,
		Prerequisites: []string{"quantum_grid"},
		Effects:       []TechEffect{{EffectType: "income_bonus", Resource: "science", Flat: 2}},
	},

	// Quantum (weapons and targeting)
	{
		ID: "ion_cannon", Name: "Ion Cannon", Category: TechQuantum, BaseCost: 2, Researchable: true,
		Effects: []TechEffect{{EffectType: "unlock", Component: "ion_cannon"}},
	},
	{
		ID: "plasma_cannon", Name: "Plasma Cannon", Category: TechQuantum, BaseCost: 6, Researchable: true,
		Prerequisites: []string{"ion_cannon"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "plasma_cannon"}},
	},
	{
		ID: "antimatter_cannon", Name: "Antimatter Cannon", Category: TechQuantum, BaseCost: 9, Researchable: true,
		Prerequisites: []string{"plasma_cannon"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "antimatter_cannon"}},
	},
	{
		ID: "flux_missile", Name: "Flux Missile", Category: TechQuantum, BaseCost: 3, Researchable: true,
		Effects: []TechEffect{{EffectType: "unlock", Component: "flux_missile"}},
	},
	{
		ID: "plasma_missile", Name: "Plasma Missile", Category: TechQuantum, BaseCost: 6, Researchable: true,
		Prerequisites: []string{"flux_missile"},
		Effects:       []TechEffect{{EffectType: "unlock", Component: "plasma_missile"}},
	},
	{
		ID: "positron_computer", Name: "Positron Computer", Category: TechQuantum, BaseCost: 3, Researchable: true,
		Effects: []TechEffect{
			{EffectType: "stat_bonus", Attribute: "accuracy", Amount: 1},
			{EffectType: "unlock", Component: "positron_computer"},
		},
	},

	// Rare
	{
		ID: "cloaking_device", Name: "Cloaking Device", Category: TechRare, BaseCost: 5, Researchable: true,
		Effects: []TechEffect{{EffectType: "special", Special: "cloak"}},
	},
	{
		ID: "point_defense", Name: "Point Defense", Category: TechRare, BaseCost: 4, Researchable: true,
		Effects: []TechEffect{{EffectType: "special", Special: "intercept_missiles"}},
	},
	{
		ID: "carapace_hull", Name: "Carapace Hull", Category: TechRare, BaseCost: 4, Researchable: true,
		Effects: []TechEffect{{EffectType: "stat_bonus", Attribute: "hull", Amount: 1}},
	},

	// Ancient (discovery-only)
	{
		ID: "monolith", Name: "Monolith", Category: TechAncient, BaseCost: 0, Researchable: false,
		Effects: []TechEffect{{EffectType: "vp", VP: 3}},
	},
	{
		ID: "prospector", Name: "Prospector", Category: TechAncient, BaseCost: 0, Researchable: false,
		Effects: []TechEffect{{EffectType: "income_bonus", Resource: "money", Flat: 3, Once: true}},
	},
}

// EffectiveCost returns the science cost of a technology after the
// same-category discount: one less per owned tech in the category, floored
// at zero.
func EffectiveCost(tech Technology, ownedInCategory int) int {
	cost := tech.BaseCost - ownedInCategory
	if cost < 0 {
		return 0
	}
	return cost
}
