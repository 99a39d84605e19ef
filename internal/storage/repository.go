package storage

import (
	"errors"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// ErrConcurrentUpdate is returned when the three-pool compare-and-swap
// write loses the race too many times in a row.
var ErrConcurrentUpdate = errors.New("concurrent profile update, retry exhausted")

type Repository interface {
	// Profiles.
	CreateProfile(p *arena.CombatProfile) error
	GetProfileByActorID(actorID string) (*arena.CombatProfile, error)
	SaveProfile(p *arena.CombatProfile) error

	// ApplyDamage routes a damage amount through the Aura->Armor->HP
	// pools as one atomic compare-and-swap write and returns the
	// resulting pools. Expired aura reads as zero and is reconciled to
	// the row by the same write.
	ApplyDamage(actorID string, amount int, now time.Time) (arena.Pools, error)
	// ApplyHeal raises current HP, clamped to the actor's max.
	ApplyHeal(actorID string, amount int) error
	// AdjustResources applies clamped deltas to energy, armor, attack
	// and mastery in one update.
	AdjustResources(actorID string, delta arena.ResourceDelta) error
	// GrantAura sets the aura pool and restarts its fixed lifetime.
	GrantAura(actorID string, amount int, expiresAt time.Time) error
	SetTargetActor(actorID string, targetID *string) error
	SetTargetZone(actorID string, zoneID *string) error
	// TouchAction stamps lastActionAt (and lastAttackAt when attack) for
	// the inactivity decay monitor.
	TouchAction(actorID string, now time.Time, attack bool) error

	// Status effects.
	ActiveStatuses(actorID string, now time.Time) ([]arena.StatusEffect, error)
	UpsertStatus(e *arena.StatusEffect) error
	ClearStatus(actorID string, kind arena.StatusKind) error
	ListActiveStatusesByKind(kind arena.StatusKind, now time.Time) ([]arena.StatusEffect, error)
	MarkStatusTicked(id uint, tickedAt time.Time) error
	DeleteExpiredStatuses(before time.Time) (int64, error)

	// Cooldowns. ActiveCooldown is the single authoritative check: it
	// always consults the durable store, never a cache.
	ActiveCooldown(actorID, actionKey string, now time.Time) (*arena.Cooldown, error)
	SetCooldown(actorID, actionKey string, expiresAt time.Time) error
	DeleteExpiredCooldowns(before time.Time) (int64, error)

	// Zone positions.
	UpsertPosition(actorID, zoneID string) error
	GetPosition(actorID string) (*arena.ZonePosition, error)
	ActorsInZone(zoneID string) ([]arena.ZonePosition, error)
	ListPositions() ([]arena.ZonePosition, error)
	RemoveFromZones(actorID string) error

	// Session clock. GetSession returns (nil, nil) when no session row
	// exists yet.
	GetSession() (*arena.ArenaSession, error)
	SaveSession(s *arena.ArenaSession) error

	// Battle feed.
	AppendFeedEntry(e *arena.BattleFeedEntry) error
	RecentFeedEntries(since time.Time, limit int) ([]arena.BattleFeedEntry, error)
	DeleteFeedEntriesBefore(cutoff time.Time) (int64, error)
}
