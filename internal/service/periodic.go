package service

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/engine"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// PeriodicTick advances once-per-minute status drains. Ticks move by
// whole minutes from each effect's absolute LastTickedAt, so a late or
// doubled scan never fires the same minute twice.
func (a *Arena) PeriodicTick() {
	now := a.now()
	for _, kind := range engine.PeriodicKinds {
		effects, err := a.repo.ListActiveStatusesByKind(kind, now)
		if err != nil {
			logging.Error("periodic tick failed to list statuses", err, logging.Fields{"kind": string(kind)})
			continue
		}
		for i := range effects {
			a.tickEffect(&effects[i], now)
		}
	}
}

func (a *Arena) tickEffect(e *arena.StatusEffect, now time.Time) {
	due := e.LastTickedAt.Add(time.Minute)
	if now.Before(due) {
		return
	}

	p, err := a.repo.GetProfileByActorID(e.ActorID)
	if err != nil {
		return
	}
	drain, ok := engine.DrainFor(e.Kind, p.CurrentHitPoints)
	if !ok {
		return
	}

	if drain.Damage > 0 {
		if _, err := a.repo.ApplyDamage(e.ActorID, drain.Damage, now); err != nil {
			logging.Error("failed to apply periodic damage", err, logging.Fields{"actor_id": e.ActorID, "kind": string(e.Kind)})
			return
		}
	}
	if drain.Energy != 0 || drain.Mastery != 0 {
		if err := a.repo.AdjustResources(e.ActorID, arena.ResourceDelta{Energy: -drain.Energy, Mastery: -drain.Mastery}); err != nil {
			logging.Error("failed to apply periodic drain", err, logging.Fields{"actor_id": e.ActorID, "kind": string(e.Kind)})
			return
		}
	}

	// Advance by one whole minute, not to now: a scan that was late by
	// several minutes catches up one tick per scan instead of skipping.
	if err := a.repo.MarkStatusTicked(e.ID, due); err != nil {
		logging.Error("failed to mark status ticked", err, logging.Fields{"actor_id": e.ActorID, "kind": string(e.Kind)})
		return
	}
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:     e.ActorID,
		ActionType:  arena.FeedActionPeriodic,
		Description: p.ActorName + " suffers from " + string(e.Kind),
	})
}
