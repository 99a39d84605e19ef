package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/engine"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// DecayTick runs the inactivity monitor over every joined actor. Both
// penalties stack in one tick; either reaching zero HP triggers the
// knockout path.
func (a *Arena) DecayTick() {
	now := a.now()
	positions, err := a.repo.ListPositions()
	if err != nil {
		logging.Error("decay tick failed to list positions", err, nil)
		return
	}

	for _, pos := range positions {
		p, err := a.repo.GetProfileByActorID(pos.ActorID)
		if err != nil {
			continue
		}
		set, err := a.statuses(pos.ActorID, now)
		if err != nil {
			continue
		}
		dmg := engine.DecayDamage(p, set, now)
		if dmg == 0 {
			continue
		}

		pools, err := a.repo.ApplyDamage(pos.ActorID, dmg, now)
		if err != nil {
			logging.Error("failed to apply decay damage", err, logging.Fields{"actor_id": pos.ActorID})
			continue
		}
		a.appendFeed(&arena.BattleFeedEntry{
			ActorID:     pos.ActorID,
			ActionType:  arena.FeedActionDecay,
			Description: p.ActorName + " is wasting away from inactivity",
		})
		if pools.Depleted() && !set.Has(arena.StatusKO) {
			a.knockOut(pos.ActorID, "", now)
		}
	}
}
