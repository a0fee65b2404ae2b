package items

import "testing"

func TestNormalizeCollapsesAndLowercases(t *testing.T) {
	cases := map[string]string{
		"Iron_Ore":        "iron ore",
		"  oak   planks ": "oak planks",
		"COBBLE-STONE":    "cobble stone",
		"stone_pickaxe":   "stone pickaxe",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"Iron_Ore", "workbench", "  Wood Pickaxe "} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeAliases(t *testing.T) {
	if got := Normalize("workbench"); got != "crafting table" {
		t.Fatalf("workbench alias: got %q", got)
	}
	if got := Normalize("Wood Pickaxe"); got != "wooden pickaxe" {
		t.Fatalf("wood pickaxe alias: got %q", got)
	}
	if got := Normalize("meat"); got != "cooked beef" {
		t.Fatalf("meat alias: got %q", got)
	}
}

func TestNormalizeEmptyIsSentinel(t *testing.T) {
	for _, in := range []string{"", "   ", "_-_"} {
		if got := Normalize(in); got != Unspecified {
			t.Fatalf("Normalize(%q) = %q, want sentinel", in, got)
		}
	}
	if !IsUnspecified("") || IsUnspecified("torch") {
		t.Fatalf("IsUnspecified misclassified")
	}
}

func TestResolveQuantity(t *testing.T) {
	if got := ResolveQuantity(12, 1); got != 12 {
		t.Fatalf("int: got %v", got)
	}
	if got := ResolveQuantity(-5, 1); got != 0 {
		t.Fatalf("negative clamps to zero: got %v", got)
	}
	if got := ResolveQuantity("64", 1); got != 64 {
		t.Fatalf("numeric string: got %v", got)
	}
	if got := ResolveQuantity("a stack", 7); got != 7 {
		t.Fatalf("junk string falls back: got %v", got)
	}
	if got := ResolveQuantity(nil, 3); got != 3 {
		t.Fatalf("nil falls back: got %v", got)
	}
}

func TestResolveCount(t *testing.T) {
	if got := ResolveCount(2.9, 1); got != 2 {
		t.Fatalf("truncates: got %d", got)
	}
	if got := ResolveCount(map[string]any{}, 5); got != 5 {
		t.Fatalf("unusable falls back: got %d", got)
	}
}

func TestFormatRequirements(t *testing.T) {
	if got := FormatRequirements(nil); got != "nothing" {
		t.Fatalf("empty: got %q", got)
	}
	got := FormatRequirements([]Requirement{
		{Name: "stick", Count: 2},
		{Name: "coal", Count: 1},
		{Name: "iron_ingot", Count: 3},
	})
	want := "2 Stick, 1 Coal and 3 Iron Ingot"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := FormatRequirements([]Requirement{{Name: "torch"}}); got != "Torch" {
		t.Fatalf("countless entry: got %q", got)
	}
}
