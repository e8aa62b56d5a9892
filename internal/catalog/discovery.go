package catalog

// DiscoveryTile is the static template of a discovery reward drawn when an
// unexplored sector is revealed.
//
// EffectType selects the reward:
//
//	"money", "science", "materials"  -> credit EffectValue of that resource
//	"vp"                             -> award EffectValue victory points
//	"derelict"                       -> a reprogrammed cruiser joins the fleet
//	"empty"                          -> nothing
type DiscoveryTile struct {
	ID          string
	Name        string
	EffectType  string
	EffectValue int
}

var discoveryTiles = []DiscoveryTile{
	{ID: "disc_money_2a", Name: "Money Cache", EffectType: "money", EffectValue: 2},
	{ID: "disc_money_2b", Name: "Money Cache", EffectType: "money", EffectValue: 2},
	{ID: "disc_money_3", Name: "Money Vault", EffectType: "money", EffectValue: 3},
	{ID: "disc_science_2a", Name: "Science Lab", EffectType: "science", EffectValue: 2},
	{ID: "disc_science_2b", Name: "Science Lab", EffectType: "science", EffectValue: 2},
	{ID: "disc_science_3", Name: "Research Cache", EffectType: "science", EffectValue: 3},
	{ID: "disc_materials_2a", Name: "Materials Depot", EffectType: "materials", EffectValue: 2},
	{ID: "disc_materials_2b", Name: "Materials Depot", EffectType: "materials", EffectValue: 2},
	{ID: "disc_materials_3", Name: "Salvage Yard", EffectType: "materials", EffectValue: 3},
	{ID: "disc_derelict_1", Name: "Derelict Cruiser", EffectType: "derelict", EffectValue: 1},
	{ID: "disc_derelict_2", Name: "Derelict Cruiser", EffectType: "derelict", EffectValue: 1},
	{ID: "disc_vp_1", Name: "Ancient Orbital", EffectType: "vp", EffectValue: 2},
	{ID: "disc_vp_2", Name: "Ancient Monument", EffectType: "vp", EffectValue: 3},
	{ID: "disc_empty_1", Name: "Empty Ruins", EffectType: "empty"},
	{ID: "disc_empty_2", Name: "Dust and Echoes", EffectType: "empty"},
}
