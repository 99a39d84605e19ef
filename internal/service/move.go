package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/keys"
)

// ChangeZone moves the actor to another zone. Movement is an ordinary
// action: hard-control statuses block it and it carries its own
// cooldown.
func (a *Arena) ChangeZone(actorID, zoneID string) error {
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return err
	}
	set, err := a.statuses(actorID, now)
	if err != nil {
		return err
	}
	if _, blocked := set.BlocksAction(); blocked {
		return ErrActionBlocked
	}
	if err := a.checkCooldown(actorID, keys.ActionChangeZone, now); err != nil {
		return err
	}

	if err := a.repo.UpsertPosition(actorID, zoneID); err != nil {
		return err
	}
	a.setCooldown(actorID, keys.ActionChangeZone, constants.ChangeZoneCooldown, now)
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:      actorID,
		ActionType:   arena.FeedActionMove,
		TargetZoneID: strptr(zoneID),
		Description:  p.ActorName + " moved to another zone",
	})
	return a.repo.TouchAction(actorID, now, false)
}
