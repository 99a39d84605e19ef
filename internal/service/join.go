package service

import (
	"errors"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
	"gorm.io/gorm"
)

// Join places an actor into a zone, creating the combat profile on first
// entry. Rejoining an arena the actor already has a profile in just
// moves the position; combat state survives absences.
func (a *Arena) Join(actorID, actorName, discipline string, level int, zoneID string) (*arena.CombatProfile, error) {
	now := a.now()

	p, err := a.repo.GetProfileByActorID(actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		disc := a.catalog.Discipline(discipline)
		p = &arena.CombatProfile{
			ActorID:          actorID,
			ActorName:        actorName,
			Discipline:       disc.Name,
			Level:            level,
			MaxHitPoints:     arena.MaxHPForLevel(level),
			CurrentHitPoints: arena.MaxHPForLevel(level),
			MaxAttack:        arena.MaxATKForLevel(level),
			CurrentAttack:    arena.MaxATKForLevel(level),
			Energy:           arena.BaseEnergy,
			LastActionAt:     now,
			LastAttackAt:     now,
		}
		if err := a.repo.CreateProfile(p); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := a.repo.UpsertPosition(actorID, zoneID); err != nil {
		return nil, err
	}
	if err := a.repo.TouchAction(actorID, now, false); err != nil {
		return nil, err
	}

	logging.Info("actor joined arena", logging.Fields{"actor_id": actorID, "zone_id": zoneID})
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:      actorID,
		ActionType:   arena.FeedActionJoin,
		TargetZoneID: strptr(zoneID),
		Description:  p.ActorName + " entered the arena",
	})
	return p, nil
}
