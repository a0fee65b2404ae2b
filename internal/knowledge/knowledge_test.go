package knowledge

import (
	"path/filepath"
	"testing"
)

func TestDefaultsComplete(t *testing.T) {
	c := Defaults()
	if len(c.Recipes.ByID) == 0 || len(c.Fuels.ByID) == 0 || len(c.Templates.ByID) == 0 {
		t.Fatalf("defaults missing tables")
	}
	if _, ok := c.Recipes.ByID["iron pickaxe"]; !ok {
		t.Fatalf("iron pickaxe recipe missing")
	}
	if r := c.Recipes.ByID["iron ingot"]; !r.Smelted || r.Station != "furnace" {
		t.Fatalf("iron ingot should be a furnace smelt: %+v", r)
	}
	if c.Rails.PoweredRailSpacing != 8 {
		t.Fatalf("rail rules: %+v", c.Rails)
	}
}

func TestDefaultEnemyPriorities(t *testing.T) {
	c := Defaults()
	creeper := c.Enemies.ByID["creeper"]
	zombie := c.Enemies.ByID["zombie"]
	skeleton := c.Enemies.ByID["skeleton"]
	if !(creeper.Priority < skeleton.Priority && skeleton.Priority < zombie.Priority) {
		t.Fatalf("priorities: creeper=%d skeleton=%d zombie=%d", creeper.Priority, skeleton.Priority, zombie.Priority)
	}
	if !creeper.Explodes || !skeleton.Ranged {
		t.Fatalf("enemy flags lost")
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Recipes.Digest == "" {
		t.Fatalf("recipes digest not recorded")
	}
	// The shipped config mirrors the defaults.
	def := Defaults()
	if len(c.Recipes.ByID) != len(def.Recipes.ByID) {
		t.Fatalf("recipes: got %d, defaults %d", len(c.Recipes.ByID), len(def.Recipes.ByID))
	}
	got := c.Templates.ByID["watchtower"]
	want := def.Templates.ByID["watchtower"]
	if got.BaseTimeMs != want.BaseTimeMs || got.Size != want.Size {
		t.Fatalf("watchtower drifted: got %+v, want %+v", got, want)
	}
}

func TestLoadMissingDirKeepsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Recipes.ByID) != len(Defaults().Recipes.ByID) {
		t.Fatalf("defaults not kept")
	}
	if c.Recipes.Digest != "" {
		t.Fatalf("digest should be empty for built-in tables")
	}
}

func TestOptimizeOrderSortsByWeight(t *testing.T) {
	c := Defaults()
	order, cost := c.Enchantments.OptimizeOrder([]string{"fortune", "efficiency", "unbreaking"})
	want := []string{"efficiency", "unbreaking", "fortune"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	// weight + (2^index - 1) per slot: 10+0, 5+1, 2+3.
	if cost != 21 {
		t.Fatalf("cost = %d, want 21", cost)
	}
}

func TestOptimizeOrderDedupes(t *testing.T) {
	c := Defaults()
	// Unknown ids are kept at the minimum weight, after the catalog ones.
	order, _ := c.Enchantments.OptimizeOrder([]string{"sharpness", "sharpness", "homebrew"})
	if len(order) != 2 || order[0] != "sharpness" || order[1] != "homebrew" {
		t.Fatalf("order = %v", order)
	}
	if order, cost := c.Enchantments.OptimizeOrder(nil); len(order) != 0 || cost != 0 {
		t.Fatalf("empty input: order=%v cost=%d", order, cost)
	}
}
