package service

import (
	"errors"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/config"
	"github.com/Isaacdev2004/shonencloud-arena/internal/feed"
	"github.com/Isaacdev2004/shonencloud-arena/internal/keys"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
	"github.com/Isaacdev2004/shonencloud-arena/internal/notify"
	"github.com/Isaacdev2004/shonencloud-arena/internal/storage"
	"gorm.io/gorm"
)

// Arena orchestrates every combat operation: it validates against the
// status machine, delegates pure resolution to the engine package and
// persists outcomes through the repository.
type Arena struct {
	repo     storage.Repository
	catalog  *config.Catalog
	notifier notify.Sink
	feed     *feed.Log

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

func New(repo storage.Repository, catalog *config.Catalog, notifier notify.Sink, feedLog *feed.Log) *Arena {
	return &Arena{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		feed:     feedLog,
		now:      time.Now,
	}
}

// profile fetches the actor's combat record, translating the storage
// not-found into the service sentinel.
func (a *Arena) profile(actorID string) (*arena.CombatProfile, error) {
	p, err := a.repo.GetProfileByActorID(actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (a *Arena) statuses(actorID string, now time.Time) (arena.StatusSet, error) {
	effects, err := a.repo.ActiveStatuses(actorID, now)
	if err != nil {
		return nil, err
	}
	return arena.ActiveStatusSet(effects, now), nil
}

// checkCooldown consults the durable store. A cached "not on cooldown"
// never short-circuits this read, and a failed read blocks the action
// rather than permitting it on no information.
func (a *Arena) checkCooldown(actorID, actionKey string, now time.Time) error {
	cd, err := a.repo.ActiveCooldown(actorID, actionKey, now)
	if err != nil {
		logging.Warn("cooldown check failed, treating as blocked", logging.Fields{"actor_id": actorID, "key": actionKey, "error": err.Error()})
		return ErrOnCooldown
	}
	if cd != nil {
		return ErrOnCooldown
	}
	return nil
}

func (a *Arena) applyStatus(targetID string, kind arena.StatusKind, appliedBy string, applierMastery float64, now time.Time) error {
	return a.repo.UpsertStatus(&arena.StatusEffect{
		ActorID:          targetID,
		Kind:             kind,
		AppliedAt:        now,
		ExpiresAt:        now.Add(arena.StatusDuration(kind, applierMastery)),
		AppliedBy:        appliedBy,
		AppliedByMastery: applierMastery,
		LastTickedAt:     now,
	})
}

// knockOut applies the fixed-duration K.O status and alerts the victim.
// The 60-second ejection grace is enforced by the background scan, not
// here.
func (a *Arena) knockOut(targetID, by string, now time.Time) {
	if err := a.applyStatus(targetID, arena.StatusKO, by, 0, now); err != nil {
		logging.Error("failed to apply knockout status", err, logging.Fields{"actor_id": targetID})
		return
	}
	a.notifier.Notify(targetID, "You have been knocked out", notify.TypeKnockedOut)
	a.appendFeed(&arena.BattleFeedEntry{
		ActorID:     targetID,
		ActionType:  arena.FeedActionKO,
		Description: "was knocked out",
	})
}

// appendFeed records a feed entry, logging instead of failing: the feed
// is display state and must never abort a resolution.
func (a *Arena) appendFeed(e *arena.BattleFeedEntry) {
	if a.feed == nil {
		return
	}
	if err := a.feed.Append(e); err != nil {
		logging.Error("failed to append battle feed entry", err, logging.Fields{"actor_id": e.ActorID, "action": e.ActionType})
	}
}

func (a *Arena) setCooldown(actorID, actionKey string, d time.Duration, now time.Time) {
	if d <= 0 {
		return
	}
	if err := a.repo.SetCooldown(actorID, actionKey, now.Add(d)); err != nil {
		logging.Error("failed to set cooldown", err, logging.Fields{"actor_id": actorID, "key": actionKey})
	}
}

// techniqueCooldownKey is a tiny convenience wrapper kept close to its
// only callers.
func techniqueCooldownKey(t *arena.Technique) string {
	return keys.TechniqueKey(t.Key)
}

func strptr(s string) *string { return &s }
