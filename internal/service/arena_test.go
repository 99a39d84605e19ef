package service

import (
	"sync"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/config"
	"github.com/Isaacdev2004/shonencloud-arena/internal/feed"
	"gorm.io/gorm"
)

// memRepo is an in-memory storage.Repository used by service tests.
type memRepo struct {
	mu        sync.Mutex
	nextID    uint
	profiles  map[string]*arena.CombatProfile
	statuses  []arena.StatusEffect
	cooldowns map[string]arena.Cooldown
	positions map[string]string
	session   *arena.ArenaSession
	entries   []arena.BattleFeedEntry
}

func newMemRepo() *memRepo {
	return &memRepo{
		profiles:  map[string]*arena.CombatProfile{},
		cooldowns: map[string]arena.Cooldown{},
		positions: map[string]string{},
	}
}

func (m *memRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memRepo) CreateProfile(p *arena.CombatProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.profiles[p.ActorID] = p
	return nil
}

func (m *memRepo) GetProfileByActorID(actorID string) (*arena.CombatProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) SaveProfile(p *arena.CombatProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profiles[p.ActorID] = &cp
	return nil
}

func (m *memRepo) ApplyDamage(actorID string, amount int, now time.Time) (arena.Pools, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return arena.Pools{}, gorm.ErrRecordNotFound
	}
	hp, armor, aura := arena.ApplyDamage(amount, p.CurrentHitPoints, p.Armor, p.EffectiveAura(now))
	p.CurrentHitPoints, p.Armor, p.Aura = hp, armor, aura
	return arena.Pools{HitPoints: hp, Armor: armor, Aura: aura}, nil
}

func (m *memRepo) ApplyHeal(actorID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentHitPoints = arena.ApplyHeal(amount, p.CurrentHitPoints, p.MaxHitPoints)
	return nil
}

func (m *memRepo) AdjustResources(actorID string, delta arena.ResourceDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	p.Energy = clamp(p.Energy + delta.Energy)
	p.Armor = clamp(p.Armor + delta.Armor)
	p.Aura = clamp(p.Aura + delta.Aura)
	p.CurrentAttack = clamp(p.CurrentAttack + delta.Attack)
	p.Mastery = arena.CapMastery(p.Mastery + delta.Mastery)
	return nil
}

func (m *memRepo) GrantAura(actorID string, amount int, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Aura = amount
	exp := expiresAt
	p.AuraExpiresAt = &exp
	return nil
}

func (m *memRepo) SetTargetActor(actorID string, targetID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentTargetID = targetID
	p.CurrentTargetZoneID = nil
	return nil
}

func (m *memRepo) SetTargetZone(actorID string, zoneID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentTargetID = nil
	p.CurrentTargetZoneID = zoneID
	return nil
}

func (m *memRepo) TouchAction(actorID string, now time.Time, attack bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[actorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.LastActionAt = now
	if attack {
		p.LastAttackAt = now
	}
	return nil
}

func (m *memRepo) ActiveStatuses(actorID string, now time.Time) ([]arena.StatusEffect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []arena.StatusEffect
	for _, e := range m.statuses {
		if e.ActorID == actorID && now.Before(e.ExpiresAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) UpsertStatus(e *arena.StatusEffect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.statuses {
		if m.statuses[i].ActorID == e.ActorID && m.statuses[i].Kind == e.Kind {
			e.ID = m.statuses[i].ID
			m.statuses[i] = *e
			return nil
		}
	}
	e.ID = m.id()
	m.statuses = append(m.statuses, *e)
	return nil
}

func (m *memRepo) ClearStatus(actorID string, kind arena.StatusKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.statuses[:0]
	for _, e := range m.statuses {
		if !(e.ActorID == actorID && e.Kind == kind) {
			kept = append(kept, e)
		}
	}
	m.statuses = kept
	return nil
}

func (m *memRepo) ListActiveStatusesByKind(kind arena.StatusKind, now time.Time) ([]arena.StatusEffect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []arena.StatusEffect
	for _, e := range m.statuses {
		if e.Kind == kind && now.Before(e.ExpiresAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) MarkStatusTicked(id uint, tickedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.statuses {
		if m.statuses[i].ID == id {
			m.statuses[i].LastTickedAt = tickedAt
		}
	}
	return nil
}

func (m *memRepo) DeleteExpiredStatuses(before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.statuses[:0]
	for _, e := range m.statuses {
		if e.ExpiresAt.After(before) {
			kept = append(kept, e)
		} else {
			n++
		}
	}
	m.statuses = kept
	return n, nil
}

func (m *memRepo) ActiveCooldown(actorID, actionKey string, now time.Time) (*arena.Cooldown, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cd, ok := m.cooldowns[actorID+"|"+actionKey]
	if !ok || !now.Before(cd.ExpiresAt) {
		return nil, nil
	}
	return &cd, nil
}

func (m *memRepo) SetCooldown(actorID, actionKey string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cooldowns[actorID+"|"+actionKey] = arena.Cooldown{ActorID: actorID, ActionKey: actionKey, ExpiresAt: expiresAt}
	return nil
}

func (m *memRepo) DeleteExpiredCooldowns(before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, cd := range m.cooldowns {
		if !cd.ExpiresAt.After(before) {
			delete(m.cooldowns, k)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) UpsertPosition(actorID, zoneID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[actorID] = zoneID
	return nil
}

func (m *memRepo) GetPosition(actorID string) (*arena.ZonePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	zone, ok := m.positions[actorID]
	if !ok {
		return nil, nil
	}
	return &arena.ZonePosition{ActorID: actorID, ZoneID: zone}, nil
}

func (m *memRepo) ActorsInZone(zoneID string) ([]arena.ZonePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []arena.ZonePosition
	for actor, zone := range m.positions {
		if zone == zoneID {
			out = append(out, arena.ZonePosition{ActorID: actor, ZoneID: zone})
		}
	}
	return out, nil
}

func (m *memRepo) ListPositions() ([]arena.ZonePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []arena.ZonePosition
	for actor, zone := range m.positions {
		out = append(out, arena.ZonePosition{ActorID: actor, ZoneID: zone})
	}
	return out, nil
}

func (m *memRepo) RemoveFromZones(actorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, actorID)
	return nil
}

func (m *memRepo) GetSession() (*arena.ArenaSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	cp := *m.session
	return &cp, nil
}

func (m *memRepo) SaveSession(s *arena.ArenaSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.id()
	}
	cp := *s
	m.session = &cp
	return nil
}

func (m *memRepo) AppendFeedEntry(e *arena.BattleFeedEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memRepo) RecentFeedEntries(since time.Time, limit int) ([]arena.BattleFeedEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []arena.BattleFeedEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].CreatedAt.After(since) {
			out = append(out, m.entries[i])
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memRepo) DeleteFeedEntriesBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.CreatedAt.After(cutoff) {
			kept = append(kept, e)
		} else {
			n++
		}
	}
	m.entries = kept
	return n, nil
}

type recordedNotification struct {
	recipient string
	ntype     string
}

// fakeSink records notifications for assertions.
type fakeSink struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (s *fakeSink) Notify(recipientID, message, ntype string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, recordedNotification{recipient: recipientID, ntype: ntype})
}

func (s *fakeSink) count(recipient, ntype string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.sent {
		if r.recipient == recipient && r.ntype == ntype {
			n++
		}
	}
	return n
}

func testCatalog() *config.Catalog {
	techniques := []*arena.Technique{
		{Key: "flame_burst", Name: "Flame Burst", Damage: 50, EnergyCost: 10, CooldownMinutes: 2, Tags: arena.NewTagSet(arena.TagElemental)},
		{Key: "opening_stance", Name: "Opening Stance", Damage: 10, EnergyCost: 5, Tags: arena.NewTagSet(arena.TagSetup)},
		{Key: "guard_up", Name: "Guard Up", Heal: 20, ArmorGiven: 15, AuraGiven: 30, EnergyCost: 5, Tags: arena.NewTagSet(arena.TagDefensive)},
		{Key: "silence_strike", Name: "Silence Strike", Damage: 20, EnergyCost: 5, OpponentStatus: arena.StatusSilenced, Tags: arena.NewTagSet(arena.TagPhysical)},
		{Key: "earth_ruin", Name: "Earth Ruin", Damage: 30, EnergyCost: 15, Tags: arena.NewTagSet(arena.TagGlobal)},
		{Key: "crushing_blow", Name: "Crushing Blow", Damage: 35, ArmorDamage: 10, EnergyCost: 8, Tags: arena.NewTagSet(arena.TagPhysical)},
	}
	disciplines := []*arena.Discipline{
		{Name: "Emperor", ZoneDamageModifier: 0.5, GlobalReach: true},
		{Name: "Duelist", ZoneDamageModifier: 1.0},
	}
	return config.NewCatalog(techniques, disciplines)
}

// newTestArena wires a service over the in-memory repo with a pinned
// clock.
func newTestArena(at time.Time) (*Arena, *memRepo, *fakeSink) {
	repo := newMemRepo()
	sink := &fakeSink{}
	svc := New(repo, testCatalog(), sink, feed.NewLog(repo, nil, arena.BattleFeedTTL))
	svc.now = func() time.Time { return at }
	return svc, repo, sink
}

// setClock repins the service clock.
func setClock(svc *Arena, at time.Time) {
	svc.now = func() time.Time { return at }
}

// mustJoin seeds an actor and fails the test on error.
func seedActor(svc *Arena, actorID, discipline, zone string, level int) *arena.CombatProfile {
	p, err := svc.Join(actorID, actorID, discipline, level, zone)
	if err != nil {
		panic(err)
	}
	return p
}
