package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/keys"
	"github.com/Isaacdev2004/shonencloud-arena/internal/notify"
)

// notifyPreviousTarget tells whoever the actor was aiming at that the
// lock is gone.
func (a *Arena) notifyPreviousTarget(p *arena.CombatProfile) {
	if p.CurrentTargetID != nil && *p.CurrentTargetID != "" {
		a.notifier.Notify(*p.CurrentTargetID, p.ActorName+" is no longer targeting you", notify.TypeUntargeted)
	}
}

// SetTarget locks the actor onto a single opposing actor. Holding a
// target is exclusive: any zone target is cleared by the same write.
// Targets must share the actor's zone unless the actor holds Observe.
func (a *Arena) SetTarget(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfTarget
	}
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return err
	}
	if _, err := a.profile(targetID); err != nil {
		return ErrTargetNotFound
	}

	set, err := a.statuses(actorID, now)
	if err != nil {
		return err
	}
	if !set.Has(arena.StatusObserve) {
		pos, err := a.repo.GetPosition(actorID)
		if err != nil {
			return err
		}
		if pos == nil {
			return ErrActorNotJoined
		}
		targetPos, err := a.repo.GetPosition(targetID)
		if err != nil {
			return err
		}
		if targetPos == nil || targetPos.ZoneID != pos.ZoneID {
			return ErrDifferentZone
		}
	}

	a.notifyPreviousTarget(p)
	if err := a.repo.SetTargetActor(actorID, strptr(targetID)); err != nil {
		return err
	}
	a.notifier.Notify(targetID, p.ActorName+" is now targeting you", notify.TypeTargeted)
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:     actorID,
		ActionType:  arena.FeedActionTarget,
		TargetID:    strptr(targetID),
		Description: p.ActorName + " locked a new target",
	})
	return a.repo.TouchAction(actorID, now, false)
}

// SetZoneTarget aims the actor at an entire zone. Whether the actor can
// actually reach the zone depends on the action they resolve with, so
// reach is checked there, not here.
func (a *Arena) SetZoneTarget(actorID, zoneID string) error {
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return err
	}

	a.notifyPreviousTarget(p)
	if err := a.repo.SetTargetZone(actorID, strptr(zoneID)); err != nil {
		return err
	}
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:      actorID,
		ActionType:   arena.FeedActionTarget,
		TargetZoneID: strptr(zoneID),
		Description:  p.ActorName + " is targeting a whole zone",
	})
	return a.repo.TouchAction(actorID, now, false)
}

// ClearTarget drops whatever the actor is aiming at.
func (a *Arena) ClearTarget(actorID string) error {
	p, err := a.profile(actorID)
	if err != nil {
		return err
	}
	a.notifyPreviousTarget(p)
	return a.repo.SetTargetActor(actorID, nil)
}

// Observe grants the self status that lifts the same-zone targeting
// requirement for three minutes. Requires unlocked mastery and carries
// its own five-minute cooldown.
func (a *Arena) Observe(actorID string) error {
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return err
	}
	if !arena.MasteryUnlocked(p.Mastery) {
		return ErrInsufficientMastery
	}
	set, err := a.statuses(actorID, now)
	if err != nil {
		return err
	}
	if _, blocked := set.BlocksAction(); blocked {
		return ErrActionBlocked
	}
	if err := a.checkCooldown(actorID, keys.ActionObserve, now); err != nil {
		return err
	}

	if err := a.applyStatus(actorID, arena.StatusObserve, actorID, p.Mastery, now); err != nil {
		return err
	}
	a.setCooldown(actorID, keys.ActionObserve, constants.ObserveCooldown, now)
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:     actorID,
		ActionType:  arena.FeedActionObserve,
		Description: p.ActorName + " is observing the arena",
	})
	return a.repo.TouchAction(actorID, now, false)
}
