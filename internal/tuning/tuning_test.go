package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsArePositive(t *testing.T) {
	d := Defaults()
	bases := []int64{
		d.BuildBaseMs, d.MineBaseMs, d.CraftBaseMs, d.CombatBaseMs, d.GatherBaseMs,
		d.GuardBaseMs, d.ExploreBaseMs, d.InteractBaseMs, d.EatBaseMs, d.SleepBaseMs,
		d.DoorBaseMs, d.ClimbBaseMs, d.RedstoneBaseMs, d.ThrowBaseMs, d.TradeBaseMs,
		d.MinecartBaseMs, d.FrameBaseMs, d.CompostBaseMs, d.ScaffoldBaseMs, d.RangedBaseMs,
		d.MinePerBlockMs, d.CraftPerItemMs, d.CraftPerIngredientMs, d.CombatPerEnemyMs,
		d.GatherPerUnitMs, d.TravelPerBlockMs, d.ClimbPerBlockMs, d.SmeltPerItemMs,
	}
	for i, b := range bases {
		if b <= 0 {
			t.Fatalf("tuning constant %d is not positive: %d", i, b)
		}
	}
	if d.MaxDurationBias <= 0 || d.MaxDurationBias >= 1 {
		t.Fatalf("MaxDurationBias = %v", d.MaxDurationBias)
	}
	if d.MaxSubPlanDepth < 1 {
		t.Fatalf("MaxSubPlanDepth = %d", d.MaxSubPlanDepth)
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("mine_base_ms: 5000\nmax_sub_plan_depth: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MineBaseMs != 5000 {
		t.Fatalf("MineBaseMs = %d", got.MineBaseMs)
	}
	if got.MaxSubPlanDepth != 2 {
		t.Fatalf("MaxSubPlanDepth = %d", got.MaxSubPlanDepth)
	}
	// Untouched keys keep their defaults.
	if got.CraftBaseMs != Defaults().CraftBaseMs {
		t.Fatalf("CraftBaseMs = %d", got.CraftBaseMs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("mine_base_ms: [not a number\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}

func TestLoadShippedConfig(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("shipped tuning.yaml drifted from defaults:\n got %+v\nwant %+v", got, Defaults())
	}
}
