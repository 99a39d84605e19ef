package arena

import (
	"time"

	"gorm.io/gorm"
)

// CombatProfile is the authoritative combat record for one actor. It is
// owned exclusively by the combat engine: API handlers never write these
// fields directly, every mutation goes through a repository operation
// invoked by a resolution pipeline.
type CombatProfile struct {
	gorm.Model
	ActorID    string `json:"actor_id" gorm:"uniqueIndex"`
	ActorName  string `json:"actor_name"`
	Discipline string `json:"discipline"`
	Level      int    `json:"level"`

	MaxHitPoints     int `json:"max_hp"`
	CurrentHitPoints int `json:"current_hp"`
	MaxAttack        int `json:"max_atk"`
	CurrentAttack    int `json:"current_atk"`
	Armor            int `json:"armor"`
	Energy           int `json:"energy"`

	// Aura is a temporary absorption pool. It always expires exactly
	// two minutes after being granted; once AuraExpiresAt has passed the
	// stored value must read as zero (expiry is lazy, reconciled to the
	// row opportunistically by the damage path).
	Aura          int        `json:"aura"`
	AuraExpiresAt *time.Time `json:"aura_expires_at"`

	// Mastery is continuous in [0,5]; whole-number thresholds gate
	// discipline effects.
	Mastery float64 `json:"mastery"`

	LastActionAt time.Time `json:"last_action_at"`
	LastAttackAt time.Time `json:"last_attack_at"`

	// An actor holds at most one active target reference: a single
	// opposing actor or a zone, never both. Selecting one clears the
	// other.
	CurrentTargetID     *string `json:"current_target_id"`
	CurrentTargetZoneID *string `json:"current_target_zone_id"`
}

// TableName keeps the persisted table aligned with the rest of the
// arena_* schema.
func (CombatProfile) TableName() string { return "arena_combat_profiles" }

// EffectiveAura returns the usable aura value at the given instant,
// applying the lazy two-minute expiry.
func (p *CombatProfile) EffectiveAura(now time.Time) int {
	if p.AuraExpiresAt == nil || !now.Before(*p.AuraExpiresAt) {
		return 0
	}
	return p.Aura
}

// StatusEffect is one (actor, kind) state machine instance. Renewal
// replaces the row (unique index on actor+kind); expired rows are
// soft-expired: readers filter by ExpiresAt, a background sweep deletes
// them for hygiene only.
type StatusEffect struct {
	gorm.Model
	ActorID string     `json:"actor_id" gorm:"index;uniqueIndex:idx_arena_status_actor_kind"`
	Kind    StatusKind `json:"kind" gorm:"uniqueIndex:idx_arena_status_actor_kind"`

	AppliedAt time.Time `json:"applied_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`

	// AppliedByMastery records the applier's mastery at application time
	// so duration-derived values can be recomputed later.
	AppliedByMastery float64 `json:"applied_by_mastery"`
	AppliedBy        string  `json:"applied_by"`

	// LastTickedAt drives once-per-minute periodic drains (Bleeding,
	// Chaos-Affected, Launched-Up). Ticks advance by whole minutes from
	// absolute timestamps so late sweeps never double-fire.
	LastTickedAt time.Time `json:"last_ticked_at"`
}

func (StatusEffect) TableName() string { return "arena_status_effects" }

// Active reports whether the effect is still live at the given instant.
func (s *StatusEffect) Active(now time.Time) bool { return now.Before(s.ExpiresAt) }

// Cooldown is the per-(actor, action key) expiry record. The unique pair
// index plus upsert writes guarantee at most one row per key: renewal
// replaces, never duplicates.
type Cooldown struct {
	gorm.Model
	ActorID   string    `json:"actor_id" gorm:"uniqueIndex:idx_arena_cooldown_actor_key"`
	ActionKey string    `json:"action_key" gorm:"uniqueIndex:idx_arena_cooldown_actor_key"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

func (Cooldown) TableName() string { return "arena_cooldowns" }

// ArenaSession is the battle-window clock. One row cycles indefinitely:
// 40 minutes open, 20 minutes closed, with the same id advanced across
// the closed->open transition. IsOpen is derived state and must always
// match now against OpenedAt/ClosedAt; Reconcile corrects disagreement.
type ArenaSession struct {
	gorm.Model
	SessionNumber int       `json:"session_number"`
	OpenedAt      time.Time `json:"opened_at"`
	ClosedAt      time.Time `json:"closed_at"`
	IsOpen        bool      `json:"is_open"`

	// A short battle timer may be nested inside an open window. Its
	// first 30 seconds are the setup phase during which only Setup or
	// Combo tagged techniques are usable.
	BattleStartedAt   *time.Time `json:"battle_started_at"`
	BattleTimerEndsAt *time.Time `json:"battle_timer_ends_at"`
}

func (ArenaSession) TableName() string { return "arena_sessions" }

// ZonePosition is actor-to-zone membership (the position store): one row
// per actor, upserted on movement, deleted on ejection.
type ZonePosition struct {
	gorm.Model
	ActorID string `json:"actor_id" gorm:"uniqueIndex"`
	ZoneID  string `json:"zone_id" gorm:"index"`
}

func (ZonePosition) TableName() string { return "arena_zone_positions" }

// BattleFeedEntry is a display/log artifact, not gameplay state. Entries
// older than five minutes are excluded from reads and eligible for
// deletion.
type BattleFeedEntry struct {
	gorm.Model
	EntryUUID    string  `json:"entry_uuid" gorm:"uniqueIndex"`
	ActorID      string  `json:"actor_id" gorm:"index"`
	ActionType   string  `json:"action_type"`
	TechniqueKey string  `json:"technique_key,omitempty"`
	TargetID     *string `json:"target_id,omitempty"`
	TargetZoneID *string `json:"target_zone_id,omitempty" gorm:"index"`
	Description  string  `json:"description"`
}

func (BattleFeedEntry) TableName() string { return "arena_battle_feed" }

// Pools is the atomic three-pool damage state returned by the CAS write.
type Pools struct {
	HitPoints int `json:"hp"`
	Armor     int `json:"armor"`
	Aura      int `json:"aura"`
}

// Depleted reports whether the actor was driven to exactly zero HP.
func (p Pools) Depleted() bool { return p.HitPoints <= 0 }

// ResourceDelta describes clamped adjustments applied atomically to a
// profile row (gains already filtered through the Weakened gate by the
// caller).
type ResourceDelta struct {
	Energy  int
	Armor   int
	Aura    int
	Attack  int
	Mastery float64
}

// ActionType values recorded on battle feed entries.
const (
	FeedActionAttack    = "attack"
	FeedActionTechnique = "technique"
	FeedActionTarget    = "target"
	FeedActionObserve   = "observe"
	FeedActionMove      = "move"
	FeedActionJoin      = "join"
	FeedActionKO        = "ko"
	FeedActionDecay     = "decay"
	FeedActionPeriodic  = "periodic"
	FeedActionEjected   = "ejected"
	FeedActionRevive    = "revive"
)
