package planners

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// stanceTransition is a declarative rule the executor may act on; the
// planner never executes transitions.
type stanceTransition struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Event     string `json:"event"`
	Condition string `json:"condition"`
}

var stanceTransitions = []stanceTransition{
	{From: "aggressive", To: "defensive", Event: "ally_endangered", Condition: "any ally health below 35% or shield breaks"},
	{From: "aggressive", To: "ranged", Event: "target_fleeing", Condition: "priority target beyond melee reach for 3s"},
	{From: "defensive", To: "aggressive", Event: "opening", Condition: "priority target staggered or reloading"},
	{From: "defensive", To: "guard", Event: "asset_threatened", Condition: "protected asset takes damage"},
	{From: "ranged", To: "defensive", Event: "closed_on", Condition: "enemy inside half engagement range"},
	{From: "guard", To: "defensive", Event: "perimeter_breached", Condition: "enemy crosses the guard radius"},
	{From: "stealth", To: "aggressive", Event: "detected", Condition: "any enemy has line of sight"},
}

// planCombat honors metadata: targetEntity, enemyTypes, priorityTargets,
// stance, environment, squadMembers, potions, healthThreshold.
func (d *deps) planCombat(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	enemies := normalizeList(metaStrings(task.Metadata, "enemyTypes"))
	if primary := items.Normalize(metaString(task.Metadata, "targetEntity", "enemy")); primary != items.Unspecified {
		if !containsString(enemies, primary) {
			enemies = append(enemies, primary)
		}
	}
	if len(enemies) == 0 && strings.TrimSpace(task.Details) != "" {
		enemies = append(enemies, items.Normalize(task.Details))
	}
	if len(enemies) == 0 {
		return nil, fmt.Errorf("combat: no enemy to engage")
	}

	squad := metaStrings(task.Metadata, "squadMembers")
	if len(squad) == 0 {
		squad = worldctx.Allies(ctx)
	}
	environment := strings.ToLower(metaString(task.Metadata, "environment"))
	if environment == "" {
		environment = worldctx.Environment(ctx)
	}
	priorityTargets := normalizeList(metaStrings(task.Metadata, "priorityTargets"))
	ordered := d.orderThreats(enemies, priorityTargets)

	stanceID := d.pickStance(task, len(enemies), len(squad))
	stance := d.know.Stances.ByID[stanceID]

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Engage %s in a %s stance", joinList(displayNames(ordered)), stanceID))
	addBoundsRisk(p, task.Target)

	p.AddStep("Assess threats", plan.StepAnalysis,
		"Count hostiles, confirm types and mark the engagement order: "+joinList(displayNames(ordered))+".",
		map[string]any{"threat_order": ordered, "environment": environment})

	// Weapon/armor readiness against the lead threat's profile.
	weapon := stancePreferredWeapon(stance.PreferredWeapons, inv)
	if lead, ok := d.know.Enemies.ByID[ordered[0]]; ok && lead.PreferredWeapon != "" {
		if worldctx.HasItem(inv, lead.PreferredWeapon, 1) {
			weapon = items.Normalize(lead.PreferredWeapon)
		}
	}
	if weapon == "" {
		p.AddRisk("no preferred weapon in inventory; fighting bare-handed")
	} else {
		p.AddResource(weapon)
		if ti := worldctx.ResolveToolIntegrity(weapon, ctx); ti != nil && ti.Percent < 0.25 {
			p.AddRisk(fmt.Sprintf("%s near breaking (%d/%d durability)", items.DisplayName(weapon), ti.Durability, ti.MaxDurability))
		}
	}
	if !worldctx.HasItem(inv, "shield", 1) && anyRanged(d, ordered) {
		p.AddRisk("ranged enemies present and no shield carried")
	}
	if !worldctx.HasItem(inv, "healing potion", 1) {
		p.AddRisk("no healing potion for emergencies")
	}

	p.AddStep("Adopt "+stanceID+" stance", plan.StepStrategy,
		stance.Description+".",
		map[string]any{
			"stance":           stanceID,
			"engagement_range": stance.EngagementRange,
			"weapons":          stance.PreferredWeapons,
			"transitions":      stanceTransitions,
		})

	if len(squad) > 0 {
		roles := assignSquadRoles(squad)
		p.AddStep("Assign squad roles", plan.StepCoordination,
			"Brief the squad on roles and the fallback rally point.",
			map[string]any{"roles": roles})
		p.AddRisk("allies in the line of fire; check targets before swinging")
	}

	p.AddStep("Control the battlefield", plan.StepManeuver,
		battlefieldAdvice(environment),
		map[string]any{"environment": environment})
	if environment == "cave" {
		p.AddRisk("cave terrain: drop-offs, choke points and side-tunnel ambushes")
	}
	if sig.Night || sig.LowLight {
		p.AddRisk("poor visibility; expect reinforcements from the dark")
	}

	for _, id := range ordered {
		profile, known := d.know.Enemies.ByID[id]
		desc := fmt.Sprintf("Close with the %s and take it down.", items.DisplayName(id))
		meta := map[string]any{"enemy": id}
		if known {
			if len(profile.Counters) > 0 {
				desc = fmt.Sprintf("Engage the %s: %s.", items.DisplayName(id), strings.Join(profile.Counters, "; "))
			}
			meta["priority"] = profile.Priority
			if profile.Explodes {
				p.AddRisk(items.DisplayName(id) + " explosion hazard")
			}
		}
		p.AddStep("Engage "+items.DisplayName(id), plan.StepAction, desc, meta)
	}

	p.AddStep("Monitor equipment durability", plan.StepMaintenance,
		"Swap to backup gear if the main weapon or shield drops below a quarter durability.",
		map[string]any{"threshold_pct": 25})

	threshold := metaCount(task.Metadata, "healthThreshold", 35)
	p.AddStep("Health protocol", plan.StepSafety,
		fmt.Sprintf("Disengage and heal when health falls below %d%%; regroup at the rally point.", threshold),
		map[string]any{"health_threshold_pct": threshold})

	p.AddStep("Secure the field", plan.StepCleanup,
		"Collect drops, patch armor and confirm no stragglers before standing down.",
		nil)

	dur := d.tun.CombatBaseMs + int64(len(enemies))*d.tun.CombatPerEnemyMs + d.travelTime(ctx, task.Target)
	if environment == "cave" || environment == "underground" {
		dur = dur * 120 / 100
	}
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

// orderThreats sorts enemies by: explicit priority targets first (in
// their given order), then ascending profile priority, then display
// name.
func (d *deps) orderThreats(enemies, priorityTargets []string) []string {
	priIndex := map[string]int{}
	for i, t := range priorityTargets {
		priIndex[t] = i
	}
	out := append([]string(nil), enemies...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iOK := priIndex[out[i]]
		pj, jOK := priIndex[out[j]]
		if iOK != jOK {
			return iOK
		}
		if iOK && jOK && pi != pj {
			return pi < pj
		}
		ri, rj := d.profilePriority(out[i]), d.profilePriority(out[j])
		if ri != rj {
			return ri < rj
		}
		return items.DisplayName(out[i]) < items.DisplayName(out[j])
	})
	return out
}

func (d *deps) profilePriority(enemy string) int {
	if def, ok := d.know.Enemies.ByID[enemy]; ok {
		return def.Priority
	}
	return 99
}

func (d *deps) pickStance(task protocol.Task, enemyCount, squadSize int) string {
	if s := strings.ToLower(metaString(task.Metadata, "stance")); s != "" {
		if _, ok := d.know.Stances.ByID[s]; ok {
			return s
		}
	}
	switch {
	case protocol.NormalizePriority(task.Priority) == protocol.PriorityCritical:
		return "aggressive"
	case enemyCount > (squadSize+1)*2:
		return "defensive"
	default:
		return "aggressive"
	}
}

// assignSquadRoles gives the first member the single leader slot and
// cycles the rest through vanguard/flanker/support.
func assignSquadRoles(squad []string) map[string]string {
	roles := map[string]string{}
	cycle := []string{"vanguard", "flanker", "support"}
	for i, name := range squad {
		if i == 0 {
			roles[name] = "leader"
			continue
		}
		roles[name] = cycle[(i-1)%len(cycle)]
	}
	return roles
}

func battlefieldAdvice(environment string) string {
	switch environment {
	case "cave":
		return "Funnel the fight through the cave's choke points, keep a wall at your back and never fight on a ledge."
	case "forest":
		return "Use the trees as cover against ranged fire but keep sightlines to your allies."
	case "plains", "open":
		return "Keep spacing in the open; do not let the pack surround you."
	case "water", "swamp":
		return "Stay out of deep water; fight from solid footing."
	default:
		return "Pick ground that covers your back and limits enemy approach lanes."
	}
}

func stancePreferredWeapon(preferred []string, inv []worldctx.ItemStack) string {
	for _, w := range preferred {
		if worldctx.HasItem(inv, w, 1) {
			return items.Normalize(w)
		}
	}
	return ""
}

func anyRanged(d *deps, enemies []string) bool {
	for _, e := range enemies {
		if def, ok := d.know.Enemies.ByID[e]; ok && def.Ranged {
			return true
		}
	}
	return false
}

func normalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		n := items.Normalize(s)
		if n != items.Unspecified && !containsString(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func displayNames(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, items.DisplayName(s))
	}
	return out
}
