package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// ProfileView is the read model returned to actors: the combat record
// plus derived state the row alone cannot show.
type ProfileView struct {
	Profile  *arena.CombatProfile `json:"profile"`
	Statuses []arena.StatusEffect `json:"statuses"`
	ZoneID   string               `json:"zone_id,omitempty"`
	Aura     int                  `json:"effective_aura"`
}

// Profile assembles the actor's current view, filtering expired
// statuses and aura at read time.
func (a *Arena) Profile(actorID string) (*ProfileView, error) {
	now := a.now()
	p, err := a.profile(actorID)
	if err != nil {
		return nil, err
	}
	effects, err := a.repo.ActiveStatuses(actorID, now)
	if err != nil {
		return nil, err
	}
	view := &ProfileView{
		Profile:  p,
		Statuses: effects,
		Aura:     p.EffectiveAura(now),
	}
	pos, err := a.repo.GetPosition(actorID)
	if err != nil {
		return nil, err
	}
	if pos != nil {
		view.ZoneID = pos.ZoneID
	}
	return view, nil
}

// ZoneOccupant is one visible actor in a zone listing. Hidden actors are
// excluded from enumeration entirely.
type ZoneOccupant struct {
	ActorID    string `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	Level      int    `json:"level"`
	KnockedOut bool   `json:"knocked_out,omitempty"`
}

// ZoneOccupants lists who is visibly present in a zone.
func (a *Arena) ZoneOccupants(zoneID string) ([]ZoneOccupant, error) {
	now := a.now()
	positions, err := a.repo.ActorsInZone(zoneID)
	if err != nil {
		return nil, err
	}
	occupants := make([]ZoneOccupant, 0, len(positions))
	for _, pos := range positions {
		p, err := a.repo.GetProfileByActorID(pos.ActorID)
		if err != nil {
			continue
		}
		set, err := a.statuses(pos.ActorID, now)
		if err != nil {
			continue
		}
		if set.Has(arena.StatusHidden) {
			continue
		}
		occupants = append(occupants, ZoneOccupant{
			ActorID:    p.ActorID,
			ActorName:  p.ActorName,
			Level:      p.Level,
			KnockedOut: set.Has(arena.StatusKO),
		})
	}
	return occupants, nil
}

// RecentFeed returns the TTL-filtered battle feed, newest first.
func (a *Arena) RecentFeed(limit int) ([]arena.BattleFeedEntry, error) {
	return a.feed.Recent(limit)
}

// Techniques exposes the loaded catalog.
func (a *Arena) Techniques() []*arena.Technique {
	return a.catalog.Techniques()
}
