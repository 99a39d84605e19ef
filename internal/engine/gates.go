package engine

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// --- Action gates ------------------------------------------------------

// TagBlockedBy reports which of the actor's statuses forbids a technique
// carrying the given tags. Shrouded shuts down ranged and area techniques,
// Launched-Up removes defensive options and Unwell stops movement.
func TagBlockedBy(actor arena.StatusSet, tags arena.TagSet) (arena.StatusKind, arena.Tag) {
	if actor.Has(arena.StatusShrouded) {
		if tags.Has(arena.TagRanged) {
			return arena.StatusShrouded, arena.TagRanged
		}
		if tags.Has(arena.TagAoe) {
			return arena.StatusShrouded, arena.TagAoe
		}
	}
	if actor.Has(arena.StatusLaunchedUp) && tags.Has(arena.TagDefensive) {
		return arena.StatusLaunchedUp, arena.TagDefensive
	}
	if actor.Has(arena.StatusUnwell) && tags.Has(arena.TagMovement) {
		return arena.StatusUnwell, arena.TagMovement
	}
	return "", ""
}

// --- Target gates ------------------------------------------------------

// bypassesConcealment reports whether an effect with these tags can reach a
// Hidden target.
func bypassesConcealment(tags arena.TagSet) bool {
	return tags.HasAny(arena.TagAoe, arena.TagSetup, arena.TagGlobal)
}

// bypassesElevation reports whether an effect can reach an Airborne or
// Underground target. Focused attackers see through elevation; so do area
// and zone-wide effects.
func bypassesElevation(attacker arena.StatusSet, tags arena.TagSet) bool {
	return attacker.Has(arena.StatusFocused) || tags.HasAny(arena.TagAoe, arena.TagGlobal)
}

// SkipReason explains why a target could not be reached.
type SkipReason string

const (
	SkipConcealed SkipReason = "concealed"
	SkipElevated  SkipReason = "out of reach"
)

// TargetReachable checks whether the attacker can reach the target with an
// effect carrying the given tags. A non-empty SkipReason means the target
// is skipped entirely (no damage, no statuses).
func TargetReachable(attacker, target arena.StatusSet, tags arena.TagSet) (SkipReason, bool) {
	if target.Has(arena.StatusHidden) && !bypassesConcealment(tags) {
		return SkipConcealed, false
	}
	if (target.Has(arena.StatusAirborne) || target.Has(arena.StatusUnderground)) && !bypassesElevation(attacker, tags) {
		return SkipElevated, false
	}
	return "", true
}

// DamageImmune reports whether the target ignores incoming damage from an
// effect with the given tags. Shielded, Stasis, Airborne and Underground
// grant immunity; area and zone-wide effects punch through. Immunity
// swallows damage only, on-hit statuses still land.
func DamageImmune(target arena.StatusSet, tags arena.TagSet) bool {
	if tags.HasAny(arena.TagAoe, arena.TagGlobal) {
		return false
	}
	return target.Has(arena.StatusShielded) || target.Has(arena.StatusStasis) ||
		target.Has(arena.StatusAirborne) || target.Has(arena.StatusUnderground)
}
