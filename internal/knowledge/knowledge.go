// Package knowledge holds the static domain tables the planners read:
// crafting recipes, fuel options, building templates, terrain profiles,
// combat stances, enemy profiles, enchantments, foods and rail rules.
// The tables are data, not logic; Load reads them from a config
// directory and Defaults ships a complete built-in set.
package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Catalogs struct {
	Recipes      RecipeCatalog
	Fuels        FuelCatalog
	Templates    TemplateCatalog
	Terrain      TerrainCatalog
	Stances      StanceCatalog
	Enemies      EnemyCatalog
	Enchantments EnchantCatalog
	Foods        FoodCatalog
	Rails        RailRules
}

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RecipeCatalog struct {
	ByID   map[string]RecipeDef
	Digest string
}

type RecipeDef struct {
	Item        string      `json:"item"`
	Station     string      `json:"station"`
	Ingredients []ItemCount `json:"ingredients"`
	OutputCount int         `json:"output_count"`
	Smelted     bool        `json:"smelted,omitempty"`
}

type FuelCatalog struct {
	ByID   map[string]FuelDef
	Digest string
}

// FuelDef describes one furnace fuel. Efficiency is items smelted per
// unit; Category orders ties (lower ordinal preferred).
type FuelDef struct {
	Item       string  `json:"item"`
	Efficiency float64 `json:"efficiency"`
	Category   int     `json:"category"`
}

type TemplateCatalog struct {
	ByID   map[string]TemplateDef
	Digest string
}

// TemplateDef is a building blueprint summary: footprint, materials and
// the base construction time before terrain adjustment.
type TemplateDef struct {
	ID         string      `json:"id"`
	Size       [3]int      `json:"size"`
	Materials  []ItemCount `json:"materials"`
	BaseTimeMs int64       `json:"base_time_ms"`
	Lighting   bool        `json:"lighting"`
	Redstone   bool        `json:"redstone"`
}

type TerrainCatalog struct {
	ByID   map[string]TerrainDef
	Digest string
}

// TerrainDef adjusts a build for the ground it stands on.
type TerrainDef struct {
	ID              string   `json:"id"`
	TimeMultiplier  float64  `json:"time_multiplier"`
	ClearanceTimeMs int64    `json:"clearance_time_ms"`
	Considerations  []string `json:"considerations"`
	Risks           []string `json:"risks"`
}

type StanceCatalog struct {
	ByID   map[string]StanceDef
	Digest string
}

// StanceDef is a named combat posture.
type StanceDef struct {
	ID               string   `json:"id"`
	EngagementRange  float64  `json:"engagement_range"`
	PreferredWeapons []string `json:"preferred_weapons"`
	Description      string   `json:"description"`
}

type EnemyCatalog struct {
	ByID   map[string]EnemyDef
	Digest string
}

// EnemyDef profiles one hostile type. Priority orders threats: lower
// means engage earlier.
type EnemyDef struct {
	ID              string   `json:"id"`
	Priority        int      `json:"priority"`
	PreferredWeapon string   `json:"preferred_weapon"`
	Counters        []string `json:"counters"`
	Ranged          bool     `json:"ranged,omitempty"`
	Explodes        bool     `json:"explodes,omitempty"`
}

type EnchantCatalog struct {
	ByID   map[string]EnchantDef
	Digest string
}

type EnchantDef struct {
	ID        string   `json:"id"`
	AppliesTo []string `json:"applies_to"`
	MaxLevel  int      `json:"max_level"`
	Weight    int      `json:"weight"`
}

type FoodCatalog struct {
	ByID   map[string]FoodDef
	Digest string
}

type FoodDef struct {
	Item       string  `json:"item"`
	Hunger     int     `json:"hunger"`
	Saturation float64 `json:"saturation"`
}

// RailRules are the minecart layout constraints.
type RailRules struct {
	MaxSlope          int   `json:"max_slope"`
	PoweredRailSpacing int  `json:"powered_rail_spacing"`
	StationLengthMin  int   `json:"station_length_min"`
	Digest            string `json:"-"`
}

func Load(configDir string) (*Catalogs, error) {
	c := Defaults()

	dir := filepath.Join(configDir, "knowledge")
	if err := loadByID(filepath.Join(dir, "recipes.json"), &c.Recipes.ByID, &c.Recipes.Digest, func(d RecipeDef) string { return d.Item }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "fuels.json"), &c.Fuels.ByID, &c.Fuels.Digest, func(d FuelDef) string { return d.Item }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "templates.json"), &c.Templates.ByID, &c.Templates.Digest, func(d TemplateDef) string { return d.ID }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "terrain.json"), &c.Terrain.ByID, &c.Terrain.Digest, func(d TerrainDef) string { return d.ID }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "stances.json"), &c.Stances.ByID, &c.Stances.Digest, func(d StanceDef) string { return d.ID }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "enemies.json"), &c.Enemies.ByID, &c.Enemies.Digest, func(d EnemyDef) string { return d.ID }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "enchantments.json"), &c.Enchantments.ByID, &c.Enchantments.Digest, func(d EnchantDef) string { return d.ID }); err != nil {
		return nil, err
	}
	if err := loadByID(filepath.Join(dir, "foods.json"), &c.Foods.ByID, &c.Foods.Digest, func(d FoodDef) string { return d.Item }); err != nil {
		return nil, err
	}
	if err := loadRails(filepath.Join(dir, "rails.json"), &c.Rails); err != nil {
		return nil, err
	}
	return c, nil
}

// loadByID reads a JSON array into an id-keyed map, replacing the
// defaults only when the file exists.
func loadByID[T any](path string, out *map[string]T, digest *string, key func(T) string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var defs []T
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	m := make(map[string]T, len(defs))
	for _, d := range defs {
		id := key(d)
		if id == "" {
			return fmt.Errorf("%s: entry with empty id", filepath.Base(path))
		}
		m[id] = d
	}
	*out = m
	*digest = sha256Hex(raw)
	return nil
}

func loadRails(path string, out *RailRules) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("rails.json: %w", err)
	}
	out.Digest = sha256Hex(raw)
	return nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
