package engine

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// --- Damage and heal multipliers ---------------------------------------

// DamageMultiplier computes the combined damage multiplier for an effect
// with the given tags landing on the target. Multipliers stack by
// multiplication.
func DamageMultiplier(target arena.StatusSet, tags arena.TagSet) float64 {
	mult := 1.0
	if target.Has(arena.StatusElementAffected) && tags.Has(arena.TagElemental) {
		mult *= 1.5
	}
	if target.Has(arena.StatusAnalyzed) && tags.Has(arena.TagPhysical) {
		mult *= 1.5
	}
	if tags.Has(arena.TagSetup) && target.HasAuraNamed() {
		mult *= 1.5
	}
	return mult
}

// ScaleDamage applies a multiplier to a flat damage amount, truncating
// toward zero. Negative amounts are treated as zero.
func ScaleDamage(amount int, mult float64) int {
	if amount <= 0 {
		return 0
	}
	return int(float64(amount) * mult)
}

// HealMultiplier computes the multiplier applied to healing received by
// the given actor. Blessed amplifies healing, Unwell cancels it outright.
func HealMultiplier(self arena.StatusSet) float64 {
	if self.Has(arena.StatusUnwell) {
		return 0
	}
	if self.Has(arena.StatusBlessed) {
		return 1.5
	}
	return 1.0
}

// GainsBlocked reports whether armor and energy gains are suppressed for
// the actor. Weakened actors cannot stockpile defenses.
func GainsBlocked(self arena.StatusSet) bool {
	return self.Has(arena.StatusWeakened)
}
