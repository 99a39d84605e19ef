package feed

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/bus"
	"github.com/Isaacdev2004/shonencloud-arena/internal/storage"
	"github.com/google/uuid"
)

// Publisher pushes freshly appended entries to live subscribers. The
// durable log is authoritative; publishing is best effort.
type Publisher interface {
	Publish(ev bus.Event)
}

// Log is the rolling battle feed: append-only inserts with a fixed TTL
// on reads and a background sweep for deletion.
type Log struct {
	repo storage.Repository
	pub  Publisher
	ttl  time.Duration
	now  func() time.Time
}

func NewLog(repo storage.Repository, pub Publisher, ttl time.Duration) *Log {
	return &Log{repo: repo, pub: pub, ttl: ttl, now: time.Now}
}

// Append assigns the entry id, stores the entry and pushes it to
// subscribers. Insert failure is returned, publish failure is not a
// failure at all.
func (l *Log) Append(e *arena.BattleFeedEntry) error {
	e.EntryUUID = uuid.NewString()
	if err := l.repo.AppendFeedEntry(e); err != nil {
		return err
	}
	if l.pub != nil {
		ev := bus.Event{Type: bus.EventFeedEntry, ActorID: e.ActorID, Data: e}
		if e.TargetZoneID != nil {
			ev.ZoneID = *e.TargetZoneID
		}
		l.pub.Publish(ev)
	}
	return nil
}

// Recent returns entries newer than the TTL window, newest first.
func (l *Log) Recent(limit int) ([]arena.BattleFeedEntry, error) {
	return l.repo.RecentFeedEntries(l.now().Add(-l.ttl), limit)
}

// Sweep deletes entries older than the TTL window.
func (l *Log) Sweep() (int64, error) {
	return l.repo.DeleteFeedEntriesBefore(l.now().Add(-l.ttl))
}
