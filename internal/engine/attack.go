package engine

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// AttackBaseDamage computes the raw damage of a basic attack before target
// multipliers. Zone-wide attacks are scaled by the attacker discipline's
// zone damage modifier (the Emperor discipline halves them).
func AttackBaseDamage(attack int, zoneTarget bool, disc arena.Discipline) int {
	if attack < 0 {
		return 0
	}
	if zoneTarget {
		return int(float64(attack) * disc.ZoneDamageModifier)
	}
	return attack
}

// AttackOutcome describes the result of a basic attack against one target.
type AttackOutcome struct {
	TargetID   string
	Skipped    bool
	SkipReason SkipReason
	Immune     bool
	Damage     int
	Pools      arena.Pools
	KnockedOut bool
}

// attackTags is the effective tag set of a basic attack: plain physical
// contact, no special reach.
var attackTags = arena.NewTagSet(arena.TagPhysical)

// ResolveAttack computes the per-target outcome of a basic attack. The
// caller applies the resulting Pools to durable state and triggers K.O
// handling when KnockedOut is set.
func ResolveAttack(attacker arena.StatusSet, target *arena.CombatProfile, targetStatuses arena.StatusSet, baseDamage int, now time.Time) AttackOutcome {
	out := AttackOutcome{TargetID: target.ActorID}
	if reason, ok := TargetReachable(attacker, targetStatuses, attackTags); !ok {
		out.Skipped = true
		out.SkipReason = reason
		return out
	}
	if DamageImmune(targetStatuses, attackTags) {
		out.Immune = true
		return out
	}
	dmg := ScaleDamage(baseDamage, DamageMultiplier(targetStatuses, attackTags))
	hp, armor, aura := arena.ApplyDamage(dmg, target.CurrentHitPoints, target.Armor, target.EffectiveAura(now))
	out.Damage = dmg
	out.Pools = arena.Pools{HitPoints: hp, Armor: armor, Aura: aura}
	out.KnockedOut = hp == 0 && target.CurrentHitPoints > 0
	return out
}
