package storage

import (
	"errors"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// casRetryLimit bounds the damage compare-and-swap loop. Contention on a
// single profile row is short-lived; losing this many times in a row
// means something is wrong.
const casRetryLimit = 5

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// --- Profiles ----------------------------------------------------------

func (r *sqliteRepository) CreateProfile(p *arena.CombatProfile) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetProfileByActorID(actorID string) (*arena.CombatProfile, error) {
	var p arena.CombatProfile
	if err := r.db.Where("actor_id = ?", actorID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *arena.CombatProfile) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) ApplyDamage(actorID string, amount int, now time.Time) (arena.Pools, error) {
	if amount < 0 {
		amount = 0
	}
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		p, err := r.GetProfileByActorID(actorID)
		if err != nil {
			return arena.Pools{}, err
		}
		hp, armor, aura := arena.ApplyDamage(amount, p.CurrentHitPoints, p.Armor, p.EffectiveAura(now))
		// The WHERE clause pins the exact tuple that was read; a racing
		// writer makes RowsAffected zero and we re-read.
		res := r.db.Model(&arena.CombatProfile{}).
			Where("actor_id = ? AND current_hit_points = ? AND armor = ? AND aura = ?",
				actorID, p.CurrentHitPoints, p.Armor, p.Aura).
			Updates(map[string]interface{}{
				"current_hit_points": hp,
				"armor":              armor,
				"aura":               aura,
			})
		if res.Error != nil {
			return arena.Pools{}, res.Error
		}
		if res.RowsAffected == 1 {
			return arena.Pools{HitPoints: hp, Armor: armor, Aura: aura}, nil
		}
	}
	return arena.Pools{}, ErrConcurrentUpdate
}

func (r *sqliteRepository) ApplyHeal(actorID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	return r.db.Model(&arena.CombatProfile{}).
		Where("actor_id = ?", actorID).
		Update("current_hit_points", gorm.Expr("MIN(max_hit_points, current_hit_points + ?)", amount)).Error
}

func (r *sqliteRepository) AdjustResources(actorID string, delta arena.ResourceDelta) error {
	updates := map[string]interface{}{}
	if delta.Energy != 0 {
		updates["energy"] = gorm.Expr("MAX(0, energy + ?)", delta.Energy)
	}
	if delta.Armor != 0 {
		updates["armor"] = gorm.Expr("MAX(0, armor + ?)", delta.Armor)
	}
	if delta.Aura != 0 {
		updates["aura"] = gorm.Expr("MAX(0, aura + ?)", delta.Aura)
	}
	if delta.Attack != 0 {
		updates["current_attack"] = gorm.Expr("MAX(0, current_attack + ?)", delta.Attack)
	}
	if delta.Mastery != 0 {
		updates["mastery"] = gorm.Expr("MAX(0.0, MIN(?, mastery + ?))", arena.MasteryCap, delta.Mastery)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&arena.CombatProfile{}).Where("actor_id = ?", actorID).Updates(updates).Error
}

func (r *sqliteRepository) GrantAura(actorID string, amount int, expiresAt time.Time) error {
	return r.db.Model(&arena.CombatProfile{}).
		Where("actor_id = ?", actorID).
		Updates(map[string]interface{}{"aura": amount, "aura_expires_at": expiresAt}).Error
}

func (r *sqliteRepository) SetTargetActor(actorID string, targetID *string) error {
	return r.db.Model(&arena.CombatProfile{}).
		Where("actor_id = ?", actorID).
		Updates(map[string]interface{}{
			"current_target_id":      targetID,
			"current_target_zone_id": nil,
		}).Error
}

func (r *sqliteRepository) SetTargetZone(actorID string, zoneID *string) error {
	return r.db.Model(&arena.CombatProfile{}).
		Where("actor_id = ?", actorID).
		Updates(map[string]interface{}{
			"current_target_id":      nil,
			"current_target_zone_id": zoneID,
		}).Error
}

func (r *sqliteRepository) TouchAction(actorID string, now time.Time, attack bool) error {
	updates := map[string]interface{}{"last_action_at": now}
	if attack {
		updates["last_attack_at"] = now
	}
	return r.db.Model(&arena.CombatProfile{}).Where("actor_id = ?", actorID).Updates(updates).Error
}

// --- Status effects ----------------------------------------------------

func (r *sqliteRepository) ActiveStatuses(actorID string, now time.Time) ([]arena.StatusEffect, error) {
	var effects []arena.StatusEffect
	err := r.db.Where("actor_id = ? AND expires_at > ?", actorID, now).Find(&effects).Error
	return effects, err
}

func (r *sqliteRepository) UpsertStatus(e *arena.StatusEffect) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"applied_at", "expires_at", "applied_by_mastery", "applied_by", "last_ticked_at"}),
	}).Create(e).Error
}

func (r *sqliteRepository) ClearStatus(actorID string, kind arena.StatusKind) error {
	return r.db.Unscoped().
		Where("actor_id = ? AND kind = ?", actorID, kind).
		Delete(&arena.StatusEffect{}).Error
}

func (r *sqliteRepository) ListActiveStatusesByKind(kind arena.StatusKind, now time.Time) ([]arena.StatusEffect, error) {
	var effects []arena.StatusEffect
	err := r.db.Where("kind = ? AND expires_at > ?", kind, now).Find(&effects).Error
	return effects, err
}

func (r *sqliteRepository) MarkStatusTicked(id uint, tickedAt time.Time) error {
	return r.db.Model(&arena.StatusEffect{}).Where("id = ?", id).
		Update("last_ticked_at", tickedAt).Error
}

func (r *sqliteRepository) DeleteExpiredStatuses(before time.Time) (int64, error) {
	res := r.db.Unscoped().Where("expires_at <= ?", before).Delete(&arena.StatusEffect{})
	return res.RowsAffected, res.Error
}

// --- Cooldowns ---------------------------------------------------------

func (r *sqliteRepository) ActiveCooldown(actorID, actionKey string, now time.Time) (*arena.Cooldown, error) {
	var cd arena.Cooldown
	err := r.db.Where("actor_id = ? AND action_key = ? AND expires_at > ?", actorID, actionKey, now).
		First(&cd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cd, nil
}

func (r *sqliteRepository) SetCooldown(actorID, actionKey string, expiresAt time.Time) error {
	cd := arena.Cooldown{ActorID: actorID, ActionKey: actionKey, ExpiresAt: expiresAt}
	// A racing duplicate request collides on the pair index; overwriting
	// is the desired end state either way.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "action_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
	}).Create(&cd).Error
}

func (r *sqliteRepository) DeleteExpiredCooldowns(before time.Time) (int64, error) {
	res := r.db.Unscoped().Where("expires_at <= ?", before).Delete(&arena.Cooldown{})
	return res.RowsAffected, res.Error
}

// --- Zone positions ----------------------------------------------------

func (r *sqliteRepository) UpsertPosition(actorID, zoneID string) error {
	pos := arena.ZonePosition{ActorID: actorID, ZoneID: zoneID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"zone_id"}),
	}).Create(&pos).Error
}

func (r *sqliteRepository) GetPosition(actorID string) (*arena.ZonePosition, error) {
	var pos arena.ZonePosition
	err := r.db.Where("actor_id = ?", actorID).First(&pos).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *sqliteRepository) ActorsInZone(zoneID string) ([]arena.ZonePosition, error) {
	var positions []arena.ZonePosition
	err := r.db.Where("zone_id = ?", zoneID).Find(&positions).Error
	return positions, err
}

func (r *sqliteRepository) ListPositions() ([]arena.ZonePosition, error) {
	var positions []arena.ZonePosition
	err := r.db.Find(&positions).Error
	return positions, err
}

func (r *sqliteRepository) RemoveFromZones(actorID string) error {
	return r.db.Unscoped().Where("actor_id = ?", actorID).Delete(&arena.ZonePosition{}).Error
}

// --- Session -----------------------------------------------------------

func (r *sqliteRepository) GetSession() (*arena.ArenaSession, error) {
	var s arena.ArenaSession
	err := r.db.Order("id").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) SaveSession(s *arena.ArenaSession) error {
	return r.db.Save(s).Error
}

// --- Battle feed -------------------------------------------------------

func (r *sqliteRepository) AppendFeedEntry(e *arena.BattleFeedEntry) error {
	return r.db.Create(e).Error
}

func (r *sqliteRepository) RecentFeedEntries(since time.Time, limit int) ([]arena.BattleFeedEntry, error) {
	var entries []arena.BattleFeedEntry
	q := r.db.Where("created_at > ?", since).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *sqliteRepository) DeleteFeedEntriesBefore(cutoff time.Time) (int64, error) {
	res := r.db.Unscoped().Where("created_at <= ?", cutoff).Delete(&arena.BattleFeedEntry{})
	return res.RowsAffected, res.Error
}
