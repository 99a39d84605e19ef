package engine

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// --- Technique resolution ----------------------------------------------

const (
	// SkipImmuneMastery marks a target whose mastery sits at or above the
	// technique's no-hit threshold.
	SkipImmuneMastery SkipReason = "mastery too high"
	// SkipImmuneEnergy marks a target whose energy sits at or above the
	// technique's no-hit threshold.
	SkipImmuneEnergy SkipReason = "energy too high"
	// SkipMissingStatus marks a target lacking the status the technique
	// requires.
	SkipMissingStatus SkipReason = "required status missing"
)

// TechniqueTargetOutcome is the per-target result of a technique use. A
// skipped target receives nothing at all; an Immune target swallows the
// damage components but still receives statuses and debuffs.
type TechniqueTargetOutcome struct {
	TargetID   string
	Skipped    bool
	SkipReason SkipReason
	Immune     bool

	Damage      int
	ArmorDamage int
	AuraDamage  int
	Pools       arena.Pools

	Status         arena.StatusKind
	StatusDuration time.Duration
	AttackDebuff   int
	MasteryTaken   float64
	KnockedOut     bool
}

// immunityPredicateSkip checks the technique's per-target immunity
// predicates. A failing target is skipped entirely, not partially hit.
func immunityPredicateSkip(t *arena.Technique, target *arena.CombatProfile, targetStatuses arena.StatusSet) (SkipReason, bool) {
	if t.ImmuneAboveMastery > 0 && target.Mastery >= t.ImmuneAboveMastery {
		return SkipImmuneMastery, true
	}
	if t.ImmuneAboveEnergy > 0 && target.Energy >= t.ImmuneAboveEnergy {
		return SkipImmuneEnergy, true
	}
	if t.RequiredTargetStatus != arena.StatusNone && !targetStatuses.Has(t.RequiredTargetStatus) {
		return SkipMissingStatus, true
	}
	return "", false
}

// ResolveTechniqueTarget computes the outcome of a technique use against a
// single target. zoneMod scales the HP-pool damage component when the use
// resolves against a whole zone (1.0 for single-target uses).
func ResolveTechniqueTarget(t *arena.Technique, attacker arena.StatusSet, target *arena.CombatProfile, targetStatuses arena.StatusSet, attackerMastery float64, zoneMod float64, now time.Time) TechniqueTargetOutcome {
	out := TechniqueTargetOutcome{TargetID: target.ActorID}
	if reason, ok := TargetReachable(attacker, targetStatuses, t.Tags); !ok {
		out.Skipped = true
		out.SkipReason = reason
		return out
	}
	if reason, skip := immunityPredicateSkip(t, target, targetStatuses); skip {
		out.Skipped = true
		out.SkipReason = reason
		return out
	}

	if !DamageImmune(targetStatuses, t.Tags) {
		base := ScaleDamage(t.Damage, zoneMod)
		out.Damage = ScaleDamage(base, DamageMultiplier(targetStatuses, t.Tags))
		out.ArmorDamage = t.ArmorDamage
		out.AuraDamage = t.AuraDamage
	} else if t.Damage > 0 || t.ArmorDamage > 0 || t.AuraDamage > 0 {
		out.Immune = true
	}

	hp, armor, aura := arena.ApplyDamage(out.Damage, target.CurrentHitPoints, target.Armor, target.EffectiveAura(now))
	if out.AuraDamage > 0 {
		aura -= minInt(out.AuraDamage, aura)
	}
	if out.ArmorDamage > 0 {
		armor -= minInt(out.ArmorDamage, armor)
	}
	out.Pools = arena.Pools{HitPoints: hp, Armor: armor, Aura: aura}
	out.KnockedOut = hp == 0 && target.CurrentHitPoints > 0

	if t.OpponentStatus != arena.StatusNone {
		out.Status = t.OpponentStatus
		out.StatusDuration = arena.StatusDuration(t.OpponentStatus, attackerMastery)
	}
	out.AttackDebuff = t.AttackDebuff
	out.MasteryTaken = t.MasteryTaken
	return out
}

// TechniqueSelfOutcome is applied once per technique use, independent of
// how many targets resolved.
type TechniqueSelfOutcome struct {
	Heal           int
	ArmorGiven     int
	AuraGiven      int
	EnergyGiven    int
	AttackBoost    int
	MasteryGiven   float64
	Status         arena.StatusKind
	StatusDuration time.Duration
	GainsBlocked   bool
}

// ResolveTechniqueSelf computes the caster-side effects of a technique
// use. Weakened suppresses armor and energy gains; Unwell zeroes healing
// and Blessed amplifies it.
func ResolveTechniqueSelf(t *arena.Technique, self arena.StatusSet, selfMastery float64) TechniqueSelfOutcome {
	out := TechniqueSelfOutcome{
		AuraGiven:    t.AuraGiven,
		AttackBoost:  t.AttackBoost,
		MasteryGiven: t.MasteryGiven,
	}
	out.Heal = ScaleDamage(t.Heal, HealMultiplier(self))
	if GainsBlocked(self) {
		out.GainsBlocked = true
	} else {
		out.ArmorGiven = t.ArmorGiven
		out.EnergyGiven = t.EnergyGiven
	}
	if t.SelfStatus != arena.StatusNone {
		out.Status = t.SelfStatus
		out.StatusDuration = arena.StatusDuration(t.SelfStatus, selfMastery)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
