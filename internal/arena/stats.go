package arena

import "time"

// Level-based baselines.
const (
	BaseHitPoints      = 100
	HitPointsPerLevel  = 5
	BaseAttack         = 20
	AttackPerLevel     = 2
	BaseEnergy         = 100
	MasteryCap         = 5.0
	AttackMasteryGain  = 0.25
	AuraLifetime       = 2 * time.Minute
	BattleFeedTTL      = 5 * time.Minute
	SessionOpenWindow  = 40 * time.Minute
	SessionCloseWindow = 20 * time.Minute
	BattleTimerWindow  = 60 * time.Second
	SetupPhaseWindow   = 30 * time.Second
	KOEjectGrace       = 60 * time.Second
)

// MaxHPForLevel derives the hit point ceiling for a level.
func MaxHPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseHitPoints + (level-1)*HitPointsPerLevel
}

// MaxATKForLevel derives the attack baseline for a level.
func MaxATKForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseAttack + (level-1)*AttackPerLevel
}

// ApplyDamage consumes the pools in strict order Aura, then Armor, then
// HP. Each pool floors at zero and the excess carries to the next. The
// three new values are returned together: callers must persist them as a
// single state transition, never as three independent writes.
func ApplyDamage(amount, hp, armor, aura int) (newHP, newArmor, newAura int) {
	if amount < 0 {
		amount = 0
	}
	newHP, newArmor, newAura = hp, armor, aura

	absorbed := minInt(amount, newAura)
	newAura -= absorbed
	amount -= absorbed

	absorbed = minInt(amount, newArmor)
	newArmor -= absorbed
	amount -= absorbed

	newHP -= amount
	if newHP < 0 {
		newHP = 0
	}
	return newHP, newArmor, newAura
}

// ApplyHeal raises HP without exceeding the ceiling.
func ApplyHeal(amount, hp, maxHP int) int {
	if amount < 0 {
		amount = 0
	}
	healed := hp + amount
	if healed > maxHP {
		healed = maxHP
	}
	return healed
}

// CapMastery clamps mastery to the [0, 5] band.
func CapMastery(m float64) float64 {
	if m < 0 {
		return 0
	}
	if m > MasteryCap {
		return MasteryCap
	}
	return m
}

// MasteryUnlocked reports whether whole-number mastery effects are
// available (threshold gate: floor(mastery) >= 1).
func MasteryUnlocked(m float64) bool { return m >= 1.0 }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
