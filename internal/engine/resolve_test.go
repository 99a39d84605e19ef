package engine

import (
	"testing"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

func statuses(kinds ...arena.StatusKind) arena.StatusSet {
	s := arena.StatusSet{}
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

func TestDamageMultiplier_Stacking(t *testing.T) {
	tags := arena.NewTagSet(arena.TagElemental, arena.TagPhysical, arena.TagSetup)
	target := statuses(arena.StatusElementAffected, arena.StatusAnalyzed, arena.StatusAuraBlazing)
	got := DamageMultiplier(target, tags)
	want := 1.5 * 1.5 * 1.5
	if got != want {
		t.Fatalf("expected multiplier %v, got %v", want, got)
	}
}

func TestDamageMultiplier_SetupNeedsAuraNamedStatus(t *testing.T) {
	tags := arena.NewTagSet(arena.TagSetup)
	if got := DamageMultiplier(statuses(arena.StatusBleeding), tags); got != 1.0 {
		t.Fatalf("expected 1.0 without aura-named status, got %v", got)
	}
	if got := DamageMultiplier(statuses(arena.StatusAuraBlazing), tags); got != 1.5 {
		t.Fatalf("expected 1.5 against aura-named status, got %v", got)
	}
}

func TestResolveTechniqueTarget_ElementalThroughPools(t *testing.T) {
	now := time.Now()
	exp := now.Add(time.Minute)
	target := &arena.CombatProfile{
		ActorID:          "t1",
		CurrentHitPoints: 100,
		Armor:            10,
		Aura:             20,
		AuraExpiresAt:    &exp,
	}
	tech := &arena.Technique{Key: "flame_burst", Damage: 50, Tags: arena.NewTagSet(arena.TagElemental)}

	out := ResolveTechniqueTarget(tech, arena.StatusSet{}, target, statuses(arena.StatusElementAffected), 2.0, 1.0, now)

	if out.Damage != 75 {
		t.Fatalf("expected 75 damage after elemental multiplier, got %d", out.Damage)
	}
	if out.Pools.Aura != 0 || out.Pools.Armor != 0 || out.Pools.HitPoints != 55 {
		t.Fatalf("expected pools 0/0/55, got %d/%d/%d", out.Pools.Aura, out.Pools.Armor, out.Pools.HitPoints)
	}
}

func TestResolveTechniqueTarget_ImmunityPredicatesSkipEntirely(t *testing.T) {
	now := time.Now()
	tech := &arena.Technique{
		Key:                "drain",
		Damage:             30,
		OpponentStatus:     arena.StatusWeakened,
		ImmuneAboveMastery: 3.0,
	}
	target := &arena.CombatProfile{ActorID: "t1", CurrentHitPoints: 80, Mastery: 4.2}

	out := ResolveTechniqueTarget(tech, arena.StatusSet{}, target, arena.StatusSet{}, 2.0, 1.0, now)

	if !out.Skipped || out.SkipReason != SkipImmuneMastery {
		t.Fatalf("expected mastery immunity skip, got %+v", out)
	}
	if out.Damage != 0 || out.Status != arena.StatusNone {
		t.Fatalf("skipped target must receive nothing, got %+v", out)
	}
}

func TestResolveTechniqueTarget_RequiredStatus(t *testing.T) {
	now := time.Now()
	tech := &arena.Technique{Key: "execute", Damage: 40, RequiredTargetStatus: arena.StatusStunned}
	target := &arena.CombatProfile{ActorID: "t1", CurrentHitPoints: 50}

	out := ResolveTechniqueTarget(tech, arena.StatusSet{}, target, arena.StatusSet{}, 1.0, 1.0, now)
	if !out.Skipped || out.SkipReason != SkipMissingStatus {
		t.Fatalf("expected missing-status skip, got %+v", out)
	}

	out = ResolveTechniqueTarget(tech, arena.StatusSet{}, target, statuses(arena.StatusStunned), 1.0, 1.0, now)
	if out.Skipped || out.Damage != 40 {
		t.Fatalf("expected 40 damage against stunned target, got %+v", out)
	}
}

func TestResolveTechniqueTarget_DamageImmunityKeepsStatuses(t *testing.T) {
	now := time.Now()
	tech := &arena.Technique{Key: "frost", Damage: 25, OpponentStatus: arena.StatusSilenced}
	target := &arena.CombatProfile{ActorID: "t1", CurrentHitPoints: 60}

	out := ResolveTechniqueTarget(tech, arena.StatusSet{}, target, statuses(arena.StatusShielded), 2.5, 1.0, now)

	if !out.Immune {
		t.Fatalf("expected damage immunity, got %+v", out)
	}
	if out.Damage != 0 || out.Pools.HitPoints != 60 {
		t.Fatalf("immune target must take no damage, got %+v", out)
	}
	if out.Status != arena.StatusSilenced {
		t.Fatalf("on-hit status must still land through immunity, got %q", out.Status)
	}
}

func TestResolveTechniqueTarget_AoeBypassesShielded(t *testing.T) {
	now := time.Now()
	tech := &arena.Technique{Key: "quake", Damage: 30, Tags: arena.NewTagSet(arena.TagAoe)}
	target := &arena.CombatProfile{ActorID: "t1", CurrentHitPoints: 60}

	out := ResolveTechniqueTarget(tech, arena.StatusSet{}, target, statuses(arena.StatusShielded), 1.0, 1.0, now)
	if out.Immune || out.Damage != 30 {
		t.Fatalf("aoe must bypass shielded, got %+v", out)
	}
}

func TestTargetReachable_ConcealmentAndElevation(t *testing.T) {
	plain := arena.NewTagSet(arena.TagPhysical)

	if _, ok := TargetReachable(arena.StatusSet{}, statuses(arena.StatusHidden), plain); ok {
		t.Fatalf("hidden target must be unreachable by plain effects")
	}
	if _, ok := TargetReachable(arena.StatusSet{}, statuses(arena.StatusHidden), arena.NewTagSet(arena.TagAoe)); !ok {
		t.Fatalf("aoe must reach hidden targets")
	}
	if _, ok := TargetReachable(arena.StatusSet{}, statuses(arena.StatusAirborne), plain); ok {
		t.Fatalf("airborne target must dodge single-target effects")
	}
	if _, ok := TargetReachable(statuses(arena.StatusFocused), statuses(arena.StatusAirborne), plain); !ok {
		t.Fatalf("focused attacker must reach airborne targets")
	}
	if _, ok := TargetReachable(arena.StatusSet{}, statuses(arena.StatusUnderground), arena.NewTagSet(arena.TagGlobal)); !ok {
		t.Fatalf("global effects must reach underground targets")
	}
}

func TestTagBlockedBy(t *testing.T) {
	if k, tag := TagBlockedBy(statuses(arena.StatusShrouded), arena.NewTagSet(arena.TagRanged)); k != arena.StatusShrouded || tag != arena.TagRanged {
		t.Fatalf("shrouded must block ranged, got %q/%q", k, tag)
	}
	if k, _ := TagBlockedBy(statuses(arena.StatusLaunchedUp), arena.NewTagSet(arena.TagDefensive)); k != arena.StatusLaunchedUp {
		t.Fatalf("launched-up must block defensive, got %q", k)
	}
	if k, _ := TagBlockedBy(statuses(arena.StatusUnwell), arena.NewTagSet(arena.TagMovement)); k != arena.StatusUnwell {
		t.Fatalf("unwell must block movement, got %q", k)
	}
	if k, _ := TagBlockedBy(statuses(arena.StatusShrouded), arena.NewTagSet(arena.TagPhysical)); k != arena.StatusNone {
		t.Fatalf("expected no block for untagged overlap, got %q", k)
	}
}

func TestResolveAttack_ZoneModifierAndKO(t *testing.T) {
	now := time.Now()
	target := &arena.CombatProfile{ActorID: "t1", CurrentHitPoints: 10}
	emperor := arena.Discipline{Name: "Emperor", ZoneDamageModifier: 0.5, GlobalReach: true}

	base := AttackBaseDamage(20, true, emperor)
	if base != 10 {
		t.Fatalf("expected halved zone damage 10, got %d", base)
	}

	out := ResolveAttack(arena.StatusSet{}, target, arena.StatusSet{}, base, now)
	if out.Pools.HitPoints != 0 || !out.KnockedOut {
		t.Fatalf("expected knockout at exactly 0 HP, got %+v", out)
	}
}

func TestResolveTechniqueSelf_GainsAndHeals(t *testing.T) {
	tech := &arena.Technique{Key: "bulwark", Heal: 20, ArmorGiven: 15, EnergyGiven: 5, AuraGiven: 30}

	out := ResolveTechniqueSelf(tech, statuses(arena.StatusBlessed), 2.0)
	if out.Heal != 30 {
		t.Fatalf("blessed heal should be amplified to 30, got %d", out.Heal)
	}
	if out.ArmorGiven != 15 || out.EnergyGiven != 5 {
		t.Fatalf("expected full gains, got %+v", out)
	}

	out = ResolveTechniqueSelf(tech, statuses(arena.StatusUnwell, arena.StatusWeakened), 2.0)
	if out.Heal != 0 {
		t.Fatalf("unwell must zero healing, got %d", out.Heal)
	}
	if out.ArmorGiven != 0 || out.EnergyGiven != 0 || !out.GainsBlocked {
		t.Fatalf("weakened must block armor and energy gains, got %+v", out)
	}
	if out.AuraGiven != 30 {
		t.Fatalf("aura grant is not a blocked gain, got %d", out.AuraGiven)
	}
}

func TestDrainFor(t *testing.T) {
	d, ok := DrainFor(arena.StatusBleeding, 55)
	if !ok || d.Damage != 11 {
		t.Fatalf("expected bleed of 11 at 55 HP, got %+v ok=%v", d, ok)
	}
	d, ok = DrainFor(arena.StatusChaos, 100)
	if !ok || d.Energy != 2 {
		t.Fatalf("expected chaos drain of 2 energy, got %+v", d)
	}
	d, ok = DrainFor(arena.StatusLaunchedUp, 100)
	if !ok || d.Mastery != 0.25 {
		t.Fatalf("expected launched-up drain of 0.25 mastery, got %+v", d)
	}
	if _, ok = DrainFor(arena.StatusStunned, 100); ok {
		t.Fatalf("stunned has no periodic drain")
	}
}

func TestDecayDamage(t *testing.T) {
	now := time.Now()
	p := &arena.CombatProfile{
		MaxHitPoints: 100,
		LastActionAt: now.Add(-2 * time.Minute),
		LastAttackAt: now.Add(-5 * time.Minute),
	}

	if got := DecayDamage(p, arena.StatusSet{}, now); got != 35 {
		t.Fatalf("expected stacked decay of 35, got %d", got)
	}
	if got := DecayDamage(p, statuses(arena.StatusStunned), now); got != 0 {
		t.Fatalf("stunned actors must not decay, got %d", got)
	}

	p.LastAttackAt = now.Add(-30 * time.Second)
	if got := DecayDamage(p, arena.StatusSet{}, now); got != 20 {
		t.Fatalf("expected action-only decay of 20, got %d", got)
	}
}
