package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
	"github.com/Isaacdev2004/shonencloud-arena/internal/notify"
)

// Revive clears another actor's K.O before the ejection grace runs out
// and puts them back on their feet with a quarter of their health. The
// reviver must be standing, in the same zone, and able to act.
func (a *Arena) Revive(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfTarget
	}
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
	tp, err := a.profile(targetID)
	if err != nil {
		return ErrTargetNotFound
	}
	targetSet, err := a.statuses(targetID, now)
	if err != nil {
		return err
	}
	if !targetSet.Has(arena.StatusKO) {
		return ErrTargetNotKnockedOut
	}

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

	if err := a.repo.ClearStatus(targetID, arena.StatusKO); err != nil {
		return err
	}
	heal := int(float64(tp.MaxHitPoints) * constants.ReviveHealFraction)
	if heal < 1 {
		heal = 1
	}
	if err := a.repo.ApplyHeal(targetID, heal); err != nil {
		return err
	}
	a.notifier.Notify(targetID, p.ActorName+" revived you", notify.TypeRevived)
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:     actorID,
		ActionType:  arena.FeedActionRevive,
		TargetID:    strptr(targetID),
		Description: p.ActorName + " revived " + tp.ActorName,
	})
	logging.Info("actor revived", logging.Fields{"actor_id": targetID, "by": actorID})
	return a.repo.TouchAction(actorID, now, false)
}

// EjectExpiredKOs removes actors from all zones when their K.O has
// lingered past the sixty-second grace. A revive clears the status
// before the grace runs out and the scan finds nothing.
func (a *Arena) EjectExpiredKOs() {
	now := a.now()
	effects, err := a.repo.ListActiveStatusesByKind(arena.StatusKO, now)
	if err != nil {
		logging.Error("ko scan failed to list statuses", err, nil)
		return
	}

	for _, e := range effects {
		if now.Before(e.AppliedAt.Add(arena.KOEjectGrace)) {
			continue
		}
		pos, err := a.repo.GetPosition(e.ActorID)
		if err != nil || pos == nil {
			// Already ejected; repeat scans are no-ops.
			continue
		}
		if err := a.repo.RemoveFromZones(e.ActorID); err != nil {
			logging.Error("failed to eject knocked out actor", err, logging.Fields{"actor_id": e.ActorID})
			continue
		}
		a.notifier.Notify(e.ActorID, "You were ejected from the arena", notify.TypeEjected)
		a.appendFeed(&arena.BattleFeedEntry{
			ActorID:     e.ActorID,
			ActionType:  arena.FeedActionEjected,
			Description: "was carried out of the arena",
		})
		logging.Info("actor ejected after knockout", logging.Fields{"actor_id": e.ActorID})
	}
}
