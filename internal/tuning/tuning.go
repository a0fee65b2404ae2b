// Package tuning holds the planner's duration and bias constants. The
// formulas in the planners keep a base-plus-scale shape; the constants
// live here so deployments can retune them via tuning.yaml without code
// changes.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// Per-action base durations, milliseconds.
	BuildBaseMs    int64 `yaml:"build_base_ms"`
	MineBaseMs     int64 `yaml:"mine_base_ms"`
	CraftBaseMs    int64 `yaml:"craft_base_ms"`
	CombatBaseMs   int64 `yaml:"combat_base_ms"`
	GatherBaseMs   int64 `yaml:"gather_base_ms"`
	GuardBaseMs    int64 `yaml:"guard_base_ms"`
	ExploreBaseMs  int64 `yaml:"explore_base_ms"`
	InteractBaseMs int64 `yaml:"interact_base_ms"`
	EatBaseMs      int64 `yaml:"eat_base_ms"`
	SleepBaseMs    int64 `yaml:"sleep_base_ms"`
	DoorBaseMs     int64 `yaml:"door_base_ms"`
	ClimbBaseMs    int64 `yaml:"climb_base_ms"`
	RedstoneBaseMs int64 `yaml:"redstone_base_ms"`
	ThrowBaseMs    int64 `yaml:"throw_base_ms"`
	TradeBaseMs    int64 `yaml:"trade_base_ms"`
	MinecartBaseMs int64 `yaml:"minecart_base_ms"`
	FrameBaseMs    int64 `yaml:"frame_base_ms"`
	CompostBaseMs  int64 `yaml:"compost_base_ms"`
	ScaffoldBaseMs int64 `yaml:"scaffold_base_ms"`
	RangedBaseMs   int64 `yaml:"ranged_base_ms"`

	// Scale contributions, milliseconds per unit.
	MinePerBlockMs      int64 `yaml:"mine_per_block_ms"`
	CraftPerItemMs      int64 `yaml:"craft_per_item_ms"`
	CraftPerIngredientMs int64 `yaml:"craft_per_ingredient_ms"`
	CombatPerEnemyMs    int64 `yaml:"combat_per_enemy_ms"`
	GatherPerUnitMs     int64 `yaml:"gather_per_unit_ms"`
	TravelPerBlockMs    int64 `yaml:"travel_per_block_ms"`
	ClimbPerBlockMs     int64 `yaml:"climb_per_block_ms"`
	SmeltPerItemMs      int64 `yaml:"smelt_per_item_ms"`

	// Personality bias bounds (fractions of the duration).
	MaxDurationBias float64 `yaml:"max_duration_bias"`

	// Sub-planning safety valve.
	MaxSubPlanDepth int `yaml:"max_sub_plan_depth"`
}

// Defaults returns the shipped tuning.
func Defaults() Tuning {
	return Tuning{
		BuildBaseMs:    14000,
		MineBaseMs:     10000,
		CraftBaseMs:    8000,
		CombatBaseMs:   9000,
		GatherBaseMs:   7000,
		GuardBaseMs:    12000,
		ExploreBaseMs:  15000,
		InteractBaseMs: 4000,
		EatBaseMs:      2500,
		SleepBaseMs:    6000,
		DoorBaseMs:     3000,
		ClimbBaseMs:    5000,
		RedstoneBaseMs: 9000,
		ThrowBaseMs:    2000,
		TradeBaseMs:    7000,
		MinecartBaseMs: 11000,
		FrameBaseMs:    3500,
		CompostBaseMs:  4500,
		ScaffoldBaseMs: 6000,
		RangedBaseMs:   8000,

		MinePerBlockMs:       600,
		CraftPerItemMs:       1200,
		CraftPerIngredientMs: 1500,
		CombatPerEnemyMs:     1200,
		GatherPerUnitMs:      450,
		TravelPerBlockMs:     180,
		ClimbPerBlockMs:      400,
		SmeltPerItemMs:       900,

		MaxDurationBias: 0.25,
		MaxSubPlanDepth: 4,
	}
}

// Load reads tuning.yaml over the defaults, so a partial file only
// overrides what it names.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
