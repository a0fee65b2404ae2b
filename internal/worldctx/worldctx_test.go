package worldctx

import (
	"encoding/json"
	"testing"
)

func TestItemStackUnmarshalBareString(t *testing.T) {
	var inv []ItemStack
	if err := json.Unmarshal([]byte(`["torch",{"name":"iron ore","count":24}]`), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inv[0].Name != "torch" || inv[0].Count != 1 {
		t.Fatalf("bare string slot = %+v", inv[0])
	}
	if inv[1].Name != "iron ore" || inv[1].Count != 24 {
		t.Fatalf("record slot = %+v", inv[1])
	}
}

func TestItemStackDefaultsCountToOne(t *testing.T) {
	var s ItemStack
	if err := json.Unmarshal([]byte(`{"name":"shield","count":0}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Count != 1 {
		t.Fatalf("count = %d", s.Count)
	}
}

func TestExtractInventoryPrecedence(t *testing.T) {
	ctx := &Context{
		NPC:   &NPCState{Inventory: []ItemStack{{Name: "Stone_Pickaxe", Count: 1}}},
		Agent: &AgentState{Inventory: []ItemStack{{Name: "dirt", Count: 12}}},
	}
	inv := ExtractInventory(ctx)
	if len(inv) != 1 || inv[0].Name != "stone pickaxe" {
		t.Fatalf("npc inventory should win: %v", inv)
	}

	ctx.Inventory = []ItemStack{{Name: "torch", Count: 6}}
	inv = ExtractInventory(ctx)
	if len(inv) != 1 || inv[0].Name != "torch" {
		t.Fatalf("context inventory should win: %v", inv)
	}
}

func TestExtractInventoryNormalizesAndClamps(t *testing.T) {
	ctx := &Context{Inventory: []ItemStack{
		{Name: "Iron_Ore", Count: 0},
		{Name: "   "},
	}}
	inv := ExtractInventory(ctx)
	if len(inv) != 1 {
		t.Fatalf("unusable slots kept: %v", inv)
	}
	if inv[0].Name != "iron ore" || inv[0].Count != 1 {
		t.Fatalf("slot = %+v", inv[0])
	}
}

func TestExtractInventoryEmpty(t *testing.T) {
	if inv := ExtractInventory(nil); inv != nil {
		t.Fatalf("nil ctx: %v", inv)
	}
	if inv := ExtractInventory(&Context{}); inv != nil {
		t.Fatalf("empty ctx: %v", inv)
	}
}

func TestPositionPrecedence(t *testing.T) {
	npcPos := &Vec3{X: 1, Y: 64, Z: 1}
	playerPos := &Vec3{X: 9, Y: 70, Z: 9}
	ctx := &Context{NPC: &NPCState{Position: npcPos}}
	if got := Position(ctx); got != npcPos {
		t.Fatalf("npc position expected")
	}
	ctx.PlayerPosition = playerPos
	if got := Position(ctx); got != playerPos {
		t.Fatalf("player position should win")
	}
	if Position(&Context{}) != nil {
		t.Fatalf("no source should yield nil")
	}
}

func TestCountAndHasItem(t *testing.T) {
	inv := []ItemStack{
		{Name: "oak planks", Count: 30},
		{Name: "Oak_Planks", Count: 18},
		{Name: "stick", Count: 4},
	}
	if got := CountItems(inv, "oak planks"); got != 48 {
		t.Fatalf("CountItems = %d", got)
	}
	if !HasItem(inv, "stick", 4) || HasItem(inv, "stick", 5) {
		t.Fatalf("HasItem threshold wrong")
	}
	if CountItems(inv, "") != 0 {
		t.Fatalf("sentinel query should count zero")
	}
}

func TestMergeInventories(t *testing.T) {
	merged := MergeInventories(
		[]ItemStack{{Name: "coal", Count: 3}},
		[]ItemStack{{Name: "Coal", Count: 2}, {Name: "torch", Count: 0}},
	)
	if len(merged) != 2 {
		t.Fatalf("merged = %v", merged)
	}
	if merged[0].Name != "coal" || merged[0].Count != 5 {
		t.Fatalf("coal total = %+v", merged[0])
	}
	if merged[1].Name != "torch" || merged[1].Count != 1 {
		t.Fatalf("zero count should clamp to 1: %+v", merged[1])
	}
}

func TestExtractSignals(t *testing.T) {
	light := 4
	ctx := &Context{Bridge: &BridgeState{
		LightLevel: &light,
		Hazards:    []string{"Lava", "falling_gravel", "mobs"},
		Weather:    "Thunderstorm",
		TimeOfDay:  "night",
	}}
	sig := ExtractSignals(ctx)
	if !sig.LowLight || sig.LightLevel != 4 {
		t.Fatalf("light: %+v", sig)
	}
	if !sig.Lava || !sig.Gravel || !sig.Hostiles {
		t.Fatalf("hazards: %+v", sig)
	}
	if !sig.Raining || !sig.Thunder || !sig.Night {
		t.Fatalf("weather/time: %+v", sig)
	}
}

func TestExtractSignalsDefaults(t *testing.T) {
	sig := ExtractSignals(nil)
	if sig.LowLight || sig.LightLevel != 15 || sig.Lava {
		t.Fatalf("defaults: %+v", sig)
	}
}

func TestResolveToolIntegrityBridgeFirst(t *testing.T) {
	ctx := &Context{
		Inventory: []ItemStack{{Name: "iron pickaxe", Count: 1, Durability: 200, MaxDurability: 250}},
		Bridge: &BridgeState{EquipmentDurability: map[string]ToolWear{
			"Iron_Pickaxe": {Durability: 10, MaxDurability: 250},
		}},
	}
	ti := ResolveToolIntegrity("iron pickaxe", ctx)
	if ti == nil || ti.Origin != "bridge" || ti.Durability != 10 {
		t.Fatalf("integrity = %+v", ti)
	}
	if ti.Broken {
		t.Fatalf("10/250 should not be broken")
	}
}

func TestResolveToolIntegrityBroken(t *testing.T) {
	ctx := &Context{Bridge: &BridgeState{EquipmentDurability: map[string]ToolWear{
		"stone pickaxe": {Durability: 0, MaxDurability: 131},
	}}}
	ti := ResolveToolIntegrity("stone pickaxe", ctx)
	if ti == nil || !ti.Broken {
		t.Fatalf("zero durability should be broken: %+v", ti)
	}
}

func TestResolveToolIntegrityUnknown(t *testing.T) {
	if ti := ResolveToolIntegrity("diamond pickaxe", &Context{}); ti != nil {
		t.Fatalf("no telemetry should yield nil: %+v", ti)
	}
}
