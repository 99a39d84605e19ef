package engine

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
)

// DecayDamage computes the inactivity penalty for one actor at one tick.
// Both thresholds are checked independently and their penalties stack in
// a single tick. Stunned actors are exempt, idleness is not their fault.
func DecayDamage(p *arena.CombatProfile, statuses arena.StatusSet, now time.Time) int {
	if statuses.Has(arena.StatusStunned) {
		return 0
	}
	dmg := 0
	if now.Sub(p.LastActionAt) >= constants.DecayActionThreshold {
		dmg += int(float64(p.MaxHitPoints) * constants.DecayActionFraction)
	}
	if now.Sub(p.LastAttackAt) >= constants.DecayAttackThreshold {
		dmg += int(float64(p.MaxHitPoints) * constants.DecayAttackFraction)
	}
	return dmg
}
