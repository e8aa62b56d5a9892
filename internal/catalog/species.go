package catalog

// Species is the static starting profile for a playable faction.
type Species struct {
	ID          string
	Name        string
	Description string

	StartingMoney     int
	StartingScience   int
	StartingMaterials int

	// Planet types on the homeworld tile: "money", "science", "materials".
	HomeworldPlanets []string

	// Ship class ID -> count placed on the homeworld at game start.
	StartingShips map[string]int
}

var speciesList = []Species{
	{
		ID: "terran", Name: "Terran Directorate",
		Description:       "Balanced starting position.",
		StartingMoney:     3, StartingScience: 3, StartingMaterials: 3,
		HomeworldPlanets: []string{"money", "science", "materials"},
		StartingShips:    map[string]int{"interceptor": 2},
	},
	{
		ID: "eridani", Name: "Eridani Combine",
		Description:       "Wealthy but slow to industrialize.",
		StartingMoney:     6, StartingScience: 2, StartingMaterials: 2,
		HomeworldPlanets: []string{"money", "money", "materials"},
		StartingShips:    map[string]int{"interceptor": 2},
	},
	{
		ID: "hydran", Name: "Hydran Progress",
		Description:       "Science-focused research culture.",
		StartingMoney:     2, StartingScience: 6, StartingMaterials: 2,
		HomeworldPlanets: []string{"money", "science", "science"},
		StartingShips:    map[string]int{"interceptor": 2},
	},
	{
		ID: "draco", Name: "Descendants of Draco",
		Description:       "Industrial base with ancient know-how.",
		StartingMoney:     2, StartingScience: 3, StartingMaterials: 4,
		HomeworldPlanets: []string{"money", "materials", "materials"},
		StartingShips:    map[string]int{"interceptor": 2},
	},
	{
		ID: "mechanema", Name: "Mechanema",
		Description:       "Mechanical shipwrights.",
		StartingMoney:     2, StartingScience: 2, StartingMaterials: 5,
		HomeworldPlanets: []string{"money", "materials", "materials"},
		StartingShips:    map[string]int{"interceptor": 1, "cruiser": 1},
	},
	{
		ID: "orion", Name: "Orion Hegemony",
		Description:       "Militant raiders with upgunned hulls.",
		StartingMoney:     3, StartingScience: 2, StartingMaterials: 4,
		HomeworldPlanets: []string{"money", "science", "materials"},
		StartingShips:    map[string]int{"interceptor": 2, "cruiser": 1},
	},
}

// DefaultSlotsFor returns the starting blueprint slots for a ship class,
// applying species-specific overrides.
func (c *Catalog) DefaultSlotsFor(class ShipClass, speciesID string) []string {
	slots := make([]string, len(class.DefaultSlots))
	copy(slots, class.DefaultSlots)

	// Orion interceptors carry an extra cannon in their first free slot.
	if speciesID == "orion" && class.ID == "interceptor" {
		for i, s := range slots {
			if s == "" {
				slots[i] = "electron_cannon"
				break
			}
		}
	}
	return slots
}
