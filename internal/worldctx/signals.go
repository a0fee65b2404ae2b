package worldctx

import "strings"

// Signals are the environmental booleans/levels planners branch on.
type Signals struct {
	LowLight   bool
	LightLevel int
	Lava       bool
	Water      bool
	Gravel     bool
	Hostiles   bool
	Raining    bool
	Thunder    bool
	Night      bool
}

// ExtractSignals derives signals from bridge hazards, the light sensor and
// ambient weather/time. Missing bridge state yields the zero value with a
// full-light level.
func ExtractSignals(ctx *Context) Signals {
	sig := Signals{LightLevel: 15}
	if ctx == nil || ctx.Bridge == nil {
		return sig
	}
	b := ctx.Bridge
	if b.LightLevel != nil {
		sig.LightLevel = *b.LightLevel
		sig.LowLight = *b.LightLevel < 8
	}
	for _, h := range b.Hazards {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lava":
			sig.Lava = true
		case "water", "flooding":
			sig.Water = true
		case "gravel", "falling gravel", "falling_gravel":
			sig.Gravel = true
		case "hostiles", "mobs", "monsters":
			sig.Hostiles = true
		case "darkness", "low light", "low_light":
			sig.LowLight = true
		}
	}
	switch Weather(ctx) {
	case "rain", "raining":
		sig.Raining = true
	case "thunder", "thunderstorm", "storm":
		sig.Raining = true
		sig.Thunder = true
	}
	switch TimeOfDay(ctx) {
	case "night", "midnight", "dusk":
		sig.Night = true
		sig.LowLight = true
	}
	return sig
}
