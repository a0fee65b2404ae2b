package knowledge

// Defaults returns the built-in knowledge tables. Item names are in the
// canonical space-separated vocabulary of the items package.
func Defaults() *Catalogs {
	return &Catalogs{
		Recipes:      RecipeCatalog{ByID: defaultRecipes()},
		Fuels:        FuelCatalog{ByID: defaultFuels()},
		Templates:    TemplateCatalog{ByID: defaultTemplates()},
		Terrain:      TerrainCatalog{ByID: defaultTerrain()},
		Stances:      StanceCatalog{ByID: defaultStances()},
		Enemies:      EnemyCatalog{ByID: defaultEnemies()},
		Enchantments: EnchantCatalog{ByID: defaultEnchantments()},
		Foods:        FoodCatalog{ByID: defaultFoods()},
		Rails: RailRules{
			MaxSlope:           1,
			PoweredRailSpacing: 8,
			StationLengthMin:   3,
		},
	}
}

func defaultRecipes() map[string]RecipeDef {
	defs := []RecipeDef{
		{Item: "wooden pickaxe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 3}, {"stick", 2}}},
		{Item: "stone pickaxe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"cobblestone", 3}, {"stick", 2}}},
		{Item: "iron pickaxe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"iron ingot", 3}, {"stick", 2}}},
		{Item: "diamond pickaxe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"diamond", 3}, {"stick", 2}}},
		{Item: "wooden axe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 3}, {"stick", 2}}},
		{Item: "iron axe", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"iron ingot", 3}, {"stick", 2}}},
		{Item: "iron sword", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"iron ingot", 2}, {"stick", 1}}},
		{Item: "shield", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 6}, {"iron ingot", 1}}},
		{Item: "bow", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"stick", 3}, {"string", 3}}},
		{Item: "arrow", Station: "crafting table", OutputCount: 4,
			Ingredients: []ItemCount{{"flint", 1}, {"stick", 1}, {"feather", 1}}},
		{Item: "torch", Station: "", OutputCount: 4,
			Ingredients: []ItemCount{{"stick", 1}, {"coal", 1}}},
		{Item: "stick", Station: "", OutputCount: 4,
			Ingredients: []ItemCount{{"oak planks", 2}}},
		{Item: "oak planks", Station: "", OutputCount: 4,
			Ingredients: []ItemCount{{"oak log", 1}}},
		{Item: "crafting table", Station: "", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 4}}},
		{Item: "furnace", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"cobblestone", 8}}},
		{Item: "chest", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 8}}},
		{Item: "ladder", Station: "crafting table", OutputCount: 3,
			Ingredients: []ItemCount{{"stick", 7}}},
		{Item: "scaffolding", Station: "crafting table", OutputCount: 6,
			Ingredients: []ItemCount{{"bamboo", 6}, {"string", 1}}},
		{Item: "rail", Station: "crafting table", OutputCount: 16,
			Ingredients: []ItemCount{{"iron ingot", 6}, {"stick", 1}}},
		{Item: "powered rail", Station: "crafting table", OutputCount: 6,
			Ingredients: []ItemCount{{"gold ingot", 6}, {"stick", 1}, {"redstone", 1}}},
		{Item: "minecart", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"iron ingot", 5}}},
		{Item: "item frame", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"stick", 8}, {"leather", 1}}},
		{Item: "composter", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak slab", 7}}},
		{Item: "iron door", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"iron ingot", 6}}},
		{Item: "oak door", Station: "crafting table", OutputCount: 3,
			Ingredients: []ItemCount{{"oak planks", 6}}},
		{Item: "lever", Station: "", OutputCount: 1,
			Ingredients: []ItemCount{{"cobblestone", 1}, {"stick", 1}}},
		{Item: "redstone torch", Station: "", OutputCount: 1,
			Ingredients: []ItemCount{{"redstone", 1}, {"stick", 1}}},
		{Item: "repeater", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"redstone torch", 2}, {"redstone", 1}, {"stone", 3}}},
		{Item: "piston", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"oak planks", 3}, {"cobblestone", 4}, {"iron ingot", 1}, {"redstone", 1}}},
		{Item: "iron ingot", Station: "furnace", OutputCount: 1, Smelted: true,
			Ingredients: []ItemCount{{"iron ore", 1}}},
		{Item: "gold ingot", Station: "furnace", OutputCount: 1, Smelted: true,
			Ingredients: []ItemCount{{"gold ore", 1}}},
		{Item: "cooked beef", Station: "furnace", OutputCount: 1, Smelted: true,
			Ingredients: []ItemCount{{"raw beef", 1}}},
		{Item: "bread", Station: "crafting table", OutputCount: 1,
			Ingredients: []ItemCount{{"wheat", 3}}},
	}
	m := make(map[string]RecipeDef, len(defs))
	for _, d := range defs {
		m[d.Item] = d
	}
	return m
}

func defaultFuels() map[string]FuelDef {
	defs := []FuelDef{
		{Item: "lava bucket", Efficiency: 100, Category: 0},
		{Item: "coal block", Efficiency: 80, Category: 0},
		{Item: "blaze rod", Efficiency: 12, Category: 1},
		{Item: "coal", Efficiency: 8, Category: 1},
		{Item: "charcoal", Efficiency: 8, Category: 2},
		{Item: "oak planks", Efficiency: 1.5, Category: 3},
		{Item: "oak log", Efficiency: 1.5, Category: 3},
		{Item: "stick", Efficiency: 0.5, Category: 4},
		{Item: "bamboo", Efficiency: 0.25, Category: 4},
	}
	m := make(map[string]FuelDef, len(defs))
	for _, d := range defs {
		m[d.Item] = d
	}
	return m
}

func defaultTemplates() map[string]TemplateDef {
	defs := []TemplateDef{
		{ID: "shelter", Size: [3]int{5, 4, 5}, BaseTimeMs: 20000, Lighting: true,
			Materials: []ItemCount{{"oak planks", 48}, {"oak door", 1}, {"torch", 4}}},
		{ID: "house", Size: [3]int{9, 6, 9}, BaseTimeMs: 60000, Lighting: true,
			Materials: []ItemCount{{"oak planks", 160}, {"glass", 12}, {"oak door", 2}, {"torch", 10}}},
		{ID: "watchtower", Size: [3]int{5, 15, 5}, BaseTimeMs: 45000, Lighting: true,
			Materials: []ItemCount{{"cobblestone", 220}, {"ladder", 14}, {"torch", 8}, {"oak planks", 30}}},
		{ID: "wall", Size: [3]int{16, 4, 1}, BaseTimeMs: 30000,
			Materials: []ItemCount{{"cobblestone", 70}}},
		{ID: "bridge", Size: [3]int{12, 1, 3}, BaseTimeMs: 25000,
			Materials: []ItemCount{{"oak planks", 40}, {"oak fence", 24}}},
		{ID: "farmhouse", Size: [3]int{11, 5, 9}, BaseTimeMs: 70000, Lighting: true, Redstone: true,
			Materials: []ItemCount{{"oak planks", 200}, {"glass", 16}, {"oak door", 2}, {"torch", 12}, {"redstone", 8}}},
		{ID: "storage depot", Size: [3]int{7, 4, 7}, BaseTimeMs: 35000, Lighting: true,
			Materials: []ItemCount{{"cobblestone", 90}, {"chest", 8}, {"torch", 6}}},
	}
	m := make(map[string]TemplateDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

func defaultTerrain() map[string]TerrainDef {
	defs := []TerrainDef{
		{ID: "flat", TimeMultiplier: 1.0, ClearanceTimeMs: 0,
			Considerations: []string{"level ground, minimal grading"}},
		{ID: "forest", TimeMultiplier: 1.3, ClearanceTimeMs: 300000,
			Considerations: []string{"clear trees and stumps", "keep cleared logs for materials"},
			Risks:          []string{"limited sightlines while clearing"}},
		{ID: "mountainside", TimeMultiplier: 1.8, ClearanceTimeMs: 900000,
			Considerations: []string{"cut a level platform into the slope", "anchor the foundation against slide"},
			Risks:          []string{"fall hazard on the high side", "loose gravel above the cut"}},
		{ID: "swamp", TimeMultiplier: 1.6, ClearanceTimeMs: 600000,
			Considerations: []string{"drain or bridge standing water", "pile foundations to solid ground"},
			Risks:          []string{"waterlogged foundation", "slime spawns at night"}},
		{ID: "desert", TimeMultiplier: 1.2, ClearanceTimeMs: 120000,
			Considerations: []string{"compact loose sand before footing"},
			Risks:          []string{"sand collapse while excavating"}},
		{ID: "underground", TimeMultiplier: 1.5, ClearanceTimeMs: 480000,
			Considerations: []string{"hollow the cavity to the template size", "support the ceiling as you go"},
			Risks:          []string{"cave-in", "lava pockets", "low light"}},
	}
	m := make(map[string]TerrainDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

func defaultStances() map[string]StanceDef {
	defs := []StanceDef{
		{ID: "aggressive", EngagementRange: 3, PreferredWeapons: []string{"iron sword", "iron axe"},
			Description: "close fast and keep pressure on the priority target"},
		{ID: "defensive", EngagementRange: 5, PreferredWeapons: []string{"shield", "iron sword"},
			Description: "hold ground, block, counter-attack on openings"},
		{ID: "guard", EngagementRange: 8, PreferredWeapons: []string{"iron sword", "bow"},
			Description: "screen the protected asset; do not chase"},
		{ID: "ranged", EngagementRange: 18, PreferredWeapons: []string{"bow", "crossbow"},
			Description: "keep distance, kite, fall back when closed on"},
		{ID: "stealth", EngagementRange: 2, PreferredWeapons: []string{"iron sword"},
			Description: "break line of sight, strike isolated targets"},
	}
	m := make(map[string]StanceDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

func defaultEnemies() map[string]EnemyDef {
	defs := []EnemyDef{
		{ID: "creeper", Priority: 1, PreferredWeapon: "bow", Explodes: true,
			Counters: []string{"keep 5+ blocks distance", "never swing while it hisses"}},
		{ID: "skeleton", Priority: 2, PreferredWeapon: "shield", Ranged: true,
			Counters: []string{"close the gap behind cover", "strafe the arrows"}},
		{ID: "witch", Priority: 2, PreferredWeapon: "bow", Ranged: true,
			Counters: []string{"burst it down before it drinks"}},
		{ID: "zombie", Priority: 3, PreferredWeapon: "iron sword",
			Counters: []string{"back up while swinging", "watch for reinforcement spawns"}},
		{ID: "spider", Priority: 3, PreferredWeapon: "iron sword",
			Counters: []string{"strike as it lands from a lunge"}},
		{ID: "enderman", Priority: 4, PreferredWeapon: "iron sword",
			Counters: []string{"do not look at its head", "fight under a 2-block ceiling"}},
		{ID: "pillager", Priority: 2, PreferredWeapon: "shield", Ranged: true,
			Counters: []string{"block the crossbow bolt, then rush"}},
	}
	m := make(map[string]EnemyDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

func defaultEnchantments() map[string]EnchantDef {
	defs := []EnchantDef{
		{ID: "efficiency", AppliesTo: []string{"pickaxe", "axe", "shovel"}, MaxLevel: 5, Weight: 10},
		{ID: "unbreaking", AppliesTo: []string{"pickaxe", "axe", "sword", "armor", "bow"}, MaxLevel: 3, Weight: 5},
		{ID: "fortune", AppliesTo: []string{"pickaxe"}, MaxLevel: 3, Weight: 2},
		{ID: "silk touch", AppliesTo: []string{"pickaxe"}, MaxLevel: 1, Weight: 1},
		{ID: "sharpness", AppliesTo: []string{"sword", "axe"}, MaxLevel: 5, Weight: 10},
		{ID: "knockback", AppliesTo: []string{"sword"}, MaxLevel: 2, Weight: 5},
		{ID: "power", AppliesTo: []string{"bow"}, MaxLevel: 5, Weight: 10},
		{ID: "infinity", AppliesTo: []string{"bow"}, MaxLevel: 1, Weight: 1},
		{ID: "protection", AppliesTo: []string{"armor"}, MaxLevel: 4, Weight: 10},
		{ID: "feather falling", AppliesTo: []string{"boots"}, MaxLevel: 4, Weight: 5},
	}
	m := make(map[string]EnchantDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

func defaultFoods() map[string]FoodDef {
	defs := []FoodDef{
		{Item: "cooked beef", Hunger: 8, Saturation: 12.8},
		{Item: "cooked porkchop", Hunger: 8, Saturation: 12.8},
		{Item: "bread", Hunger: 5, Saturation: 6.0},
		{Item: "baked potato", Hunger: 5, Saturation: 6.0},
		{Item: "apple", Hunger: 4, Saturation: 2.4},
		{Item: "carrot", Hunger: 3, Saturation: 3.6},
		{Item: "golden apple", Hunger: 4, Saturation: 9.6},
	}
	m := make(map[string]FoodDef, len(defs))
	for _, d := range defs {
		m[d.Item] = d
	}
	return m
}
