package service

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/engine"
	"github.com/Isaacdev2004/shonencloud-arena/internal/keys"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// AttackResult summarizes one basic attack for the caller.
type AttackResult struct {
	Targets []engine.AttackOutcome `json:"targets"`
	Damage  int                    `json:"damage"`
}

// Attack resolves a basic attack against the actor's current target,
// single actor or whole zone. Damage is the actor's current ATK routed
// through the target pools; landing any hit grants the fixed mastery
// increment.
func (a *Arena) Attack(actorID string) (*AttackResult, error) {
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return nil, err
	}
	set, err := a.statuses(actorID, now)
	if err != nil {
		return nil, err
	}
	if _, blocked := set.BlocksAction(); blocked {
		return nil, ErrActionBlocked
	}
	if err := a.checkCooldown(actorID, keys.ActionAttack, now); err != nil {
		return nil, err
	}

	disc := a.catalog.Discipline(p.Discipline)
	res := &AttackResult{}

	switch {
	case p.CurrentTargetID != nil && *p.CurrentTargetID != "":
		base := engine.AttackBaseDamage(p.CurrentAttack, false, *disc)
		out, err := a.strikeActor(set, *p.CurrentTargetID, base, actorID, now)
		if err != nil {
			return nil, err
		}
		if out.Skipped {
			return nil, ErrTargetUnreachable
		}
		res.Targets = append(res.Targets, out)
		res.Damage = out.Damage

	case p.CurrentTargetZoneID != nil && *p.CurrentTargetZoneID != "":
		if !disc.GlobalReach {
			return nil, ErrZoneTargetNotAllowed
		}
		base := engine.AttackBaseDamage(p.CurrentAttack, true, *disc)
		outs, err := a.strikeZone(set, *p.CurrentTargetZoneID, base, actorID, now)
		if err != nil {
			return nil, err
		}
		res.Targets = outs
		for _, o := range outs {
			res.Damage += o.Damage
		}

	default:
		return nil, ErrNoTarget
	}

	landed := false
	for _, o := range res.Targets {
		if !o.Skipped && !o.Immune {
			landed = true
			break
		}
	}
	if landed {
		if err := a.repo.AdjustResources(actorID, arena.ResourceDelta{Mastery: arena.AttackMasteryGain}); err != nil {
			logging.Error("failed to grant attack mastery", err, logging.Fields{"actor_id": actorID})
		}
	}

	a.setCooldown(actorID, keys.ActionAttack, constants.AttackCooldown, now)
	if err := a.repo.TouchAction(actorID, now, true); err != nil {
		return nil, err
	}

	entry := &arena.BattleFeedEntry{
		ActorID:     actorID,
		ActionType:  arena.FeedActionAttack,
		TargetID:    p.CurrentTargetID,
		Description: p.ActorName + " attacked",
	}
	if p.CurrentTargetZoneID != nil {
		entry.TargetZoneID = p.CurrentTargetZoneID
	}
	a.appendFeed(entry)
	return res, nil
}

// strikeActor resolves one basic-attack hit and persists it through the
// atomic pool write.
func (a *Arena) strikeActor(attacker arena.StatusSet, targetID string, baseDamage int, by string, now time.Time) (engine.AttackOutcome, error) {
	target, err := a.repo.GetProfileByActorID(targetID)
	if err != nil {
		return engine.AttackOutcome{}, ErrTargetNotFound
	}
	targetSet, err := a.statuses(targetID, now)
	if err != nil {
		return engine.AttackOutcome{}, err
	}

	out := engine.ResolveAttack(attacker, target, targetSet, baseDamage, now)
	if out.Skipped || out.Immune {
		return out, nil
	}

	pools, err := a.repo.ApplyDamage(targetID, out.Damage, now)
	if err != nil {
		return engine.AttackOutcome{}, err
	}
	out.Pools = pools
	out.KnockedOut = pools.Depleted() && !targetSet.Has(arena.StatusKO)
	if out.KnockedOut {
		a.knockOut(targetID, by, now)
	}
	return out, nil
}

// strikeZone applies a basic attack independently to every occupant of
// the zone except the attacker. Unreachable occupants are skipped, not
// an error.
func (a *Arena) strikeZone(attacker arena.StatusSet, zoneID string, baseDamage int, by string, now time.Time) ([]engine.AttackOutcome, error) {
	positions, err := a.repo.ActorsInZone(zoneID)
	if err != nil {
		return nil, err
	}
	outs := make([]engine.AttackOutcome, 0, len(positions))
	for _, pos := range positions {
		if pos.ActorID == by {
			continue
		}
		out, err := a.strikeActor(attacker, pos.ActorID, baseDamage, by, now)
		if err != nil {
			logging.Error("zone strike failed for occupant", err, logging.Fields{"actor_id": pos.ActorID, "zone_id": zoneID})
			continue
		}
		outs = append(outs, out)
	}
	return outs, nil
}
