package service

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/engine"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// TechniqueResult summarizes one technique use.
type TechniqueResult struct {
	Technique string                          `json:"technique"`
	Targets   []engine.TechniqueTargetOutcome `json:"targets,omitempty"`
	Self      engine.TechniqueSelfOutcome     `json:"self"`
}

// UseTechnique validates and resolves one technique use end to end. The
// validation order is fixed: status gates, tag locks, mastery floors,
// energy sufficiency, setup-phase restriction, cooldown. Nothing is
// applied until every gate has passed; the energy cost is deducted once,
// last.
func (a *Arena) UseTechnique(actorID, techniqueKey string) (*TechniqueResult, error) {
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
	if _, blocked := set.BlocksTechnique(); blocked {
		return nil, ErrTechniqueBlocked
	}

	t, ok := a.catalog.Technique(techniqueKey)
	if !ok {
		return nil, ErrTechniqueNotFound
	}
	if kind, _ := engine.TagBlockedBy(set, t.Tags); kind != arena.StatusNone {
		return nil, ErrTagBlocked
	}
	if p.Mastery < t.MinMastery {
		return nil, ErrInsufficientMastery
	}
	if t.Tags.Has(arena.TagCombo) && p.Mastery < constants.ComboMinMastery {
		return nil, ErrInsufficientMastery
	}
	if p.Energy < t.EnergyCost {
		return nil, ErrInsufficientEnergy
	}

	session, err := a.reconcileSession(now)
	if err != nil {
		return nil, err
	}
	if inSetupPhase(session, now) && !t.Tags.HasAny(arena.TagSetup, arena.TagCombo) {
		return nil, ErrSetupPhase
	}

	if err := a.checkCooldown(actorID, techniqueCooldownKey(t), now); err != nil {
		return nil, err
	}

	res := &TechniqueResult{Technique: t.Key}
	offensive := t.Offensive()
	if offensive {
		res.Targets, err = a.resolveTechniqueTargets(p, set, t, now)
		if err != nil {
			return nil, err
		}
	}

	res.Self = engine.ResolveTechniqueSelf(t, set, p.Mastery)
	a.applyTechniqueSelf(p, t, res.Self, now)

	if t.EnergyCost > 0 {
		if err := a.repo.AdjustResources(actorID, arena.ResourceDelta{Energy: -t.EnergyCost}); err != nil {
			logging.Error("failed to deduct technique energy cost", err, logging.Fields{"actor_id": actorID, "technique": t.Key})
		}
	}
	a.setCooldown(actorID, techniqueCooldownKey(t), time.Duration(t.CooldownMinutes)*time.Minute, now)
	if err := a.repo.TouchAction(actorID, now, offensive); err != nil {
		return nil, err
	}

	entry := &arena.BattleFeedEntry{
		ActorID:      actorID,
		ActionType:   arena.FeedActionTechnique,
		TechniqueKey: t.Key,
		TargetID:     p.CurrentTargetID,
		TargetZoneID: p.CurrentTargetZoneID,
		Description:  p.ActorName + " used " + t.Name,
	}
	a.appendFeed(entry)
	return res, nil
}

// resolveTechniqueTargets fans an offensive technique out to its target
// set: the locked single actor, or every occupant of the locked zone.
func (a *Arena) resolveTechniqueTargets(p *arena.CombatProfile, set arena.StatusSet, t *arena.Technique, now time.Time) ([]engine.TechniqueTargetOutcome, error) {
	disc := a.catalog.Discipline(p.Discipline)

	switch {
	case p.CurrentTargetID != nil && *p.CurrentTargetID != "":
		out, err := a.techniqueStrike(p, set, t, *p.CurrentTargetID, 1.0, now)
		if err != nil {
			return nil, err
		}
		// Reach failures abort before any cost; an immunity-predicate
		// skip is a resolved use against an unaffected target.
		if out.Skipped && (out.SkipReason == engine.SkipConcealed || out.SkipReason == engine.SkipElevated) {
			return nil, ErrTargetUnreachable
		}
		return []engine.TechniqueTargetOutcome{out}, nil

	case p.CurrentTargetZoneID != nil && *p.CurrentTargetZoneID != "":
		if !t.ZoneCapable() && !disc.GlobalReach {
			return nil, ErrZoneTargetNotAllowed
		}
		positions, err := a.repo.ActorsInZone(*p.CurrentTargetZoneID)
		if err != nil {
			return nil, err
		}
		outs := make([]engine.TechniqueTargetOutcome, 0, len(positions))
		for _, pos := range positions {
			if pos.ActorID == p.ActorID {
				continue
			}
			out, err := a.techniqueStrike(p, set, t, pos.ActorID, disc.ZoneDamageModifier, now)
			if err != nil {
				logging.Error("zone technique failed for occupant", err, logging.Fields{"actor_id": pos.ActorID, "technique": t.Key})
				continue
			}
			outs = append(outs, out)
		}
		return outs, nil
	}
	return nil, ErrNoTarget
}

// techniqueStrike resolves and persists a technique's effect on one
// target. Skipped targets receive nothing.
func (a *Arena) techniqueStrike(p *arena.CombatProfile, set arena.StatusSet, t *arena.Technique, targetID string, zoneMod float64, now time.Time) (engine.TechniqueTargetOutcome, error) {
	target, err := a.repo.GetProfileByActorID(targetID)
	if err != nil {
		return engine.TechniqueTargetOutcome{}, ErrTargetNotFound
	}
	targetSet, err := a.statuses(targetID, now)
	if err != nil {
		return engine.TechniqueTargetOutcome{}, err
	}

	out := engine.ResolveTechniqueTarget(t, set, target, targetSet, p.Mastery, zoneMod, now)
	if out.Skipped {
		return out, nil
	}

	if out.Damage > 0 {
		pools, err := a.repo.ApplyDamage(targetID, out.Damage, now)
		if err != nil {
			return engine.TechniqueTargetOutcome{}, err
		}
		out.Pools = pools
	}
	if out.ArmorDamage > 0 || out.AuraDamage > 0 {
		if err := a.repo.AdjustResources(targetID, arena.ResourceDelta{Armor: -out.ArmorDamage, Aura: -out.AuraDamage}); err != nil {
			return engine.TechniqueTargetOutcome{}, err
		}
		if out.Damage > 0 {
			// The damage write replaced the reported pools before
			// the strip landed, so fold the strip back in.
			out.Pools.Armor = clampNonNegative(out.Pools.Armor - out.ArmorDamage)
			out.Pools.Aura = clampNonNegative(out.Pools.Aura - out.AuraDamage)
		}
	}
	if out.Status != arena.StatusNone {
		if err := a.applyStatus(targetID, out.Status, p.ActorID, p.Mastery, now); err != nil {
			logging.Error("failed to apply technique status", err, logging.Fields{"actor_id": targetID, "technique": t.Key})
		}
	}
	if out.AttackDebuff > 0 || out.MasteryTaken > 0 {
		if err := a.repo.AdjustResources(targetID, arena.ResourceDelta{Attack: -out.AttackDebuff, Mastery: -out.MasteryTaken}); err != nil {
			logging.Error("failed to apply technique debuffs", err, logging.Fields{"actor_id": targetID, "technique": t.Key})
		}
	}

	if out.Damage > 0 && out.Pools.Depleted() && !targetSet.Has(arena.StatusKO) {
		out.KnockedOut = true
		a.knockOut(targetID, p.ActorID, now)
	} else {
		out.KnockedOut = false
	}
	return out, nil
}

// applyTechniqueSelf persists the caster-side effects: heal, gains, aura
// with its fixed lifetime restart, boosts and self status.
func (a *Arena) applyTechniqueSelf(p *arena.CombatProfile, t *arena.Technique, self engine.TechniqueSelfOutcome, now time.Time) {
	if self.Heal > 0 {
		if err := a.repo.ApplyHeal(p.ActorID, self.Heal); err != nil {
			logging.Error("failed to apply technique heal", err, logging.Fields{"actor_id": p.ActorID, "technique": t.Key})
		}
	}
	delta := arena.ResourceDelta{
		Armor:   self.ArmorGiven,
		Energy:  self.EnergyGiven,
		Attack:  self.AttackBoost,
		Mastery: self.MasteryGiven,
	}
	if delta != (arena.ResourceDelta{}) {
		if err := a.repo.AdjustResources(p.ActorID, delta); err != nil {
			logging.Error("failed to apply technique gains", err, logging.Fields{"actor_id": p.ActorID, "technique": t.Key})
		}
	}
	if self.AuraGiven > 0 {
		// Any aura grant restarts the fixed lifetime, regardless of source.
		if err := a.repo.GrantAura(p.ActorID, self.AuraGiven, now.Add(arena.AuraLifetime)); err != nil {
			logging.Error("failed to grant aura", err, logging.Fields{"actor_id": p.ActorID, "technique": t.Key})
		}
	}
	if self.Status != arena.StatusNone {
		if err := a.applyStatus(p.ActorID, self.Status, p.ActorID, p.Mastery, now); err != nil {
			logging.Error("failed to apply self status", err, logging.Fields{"actor_id": p.ActorID, "technique": t.Key})
		}
	}
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
