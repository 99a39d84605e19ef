package service

import (
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/dedupe"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// SessionState returns the current session after self-healing it
// against the clock.
func (a *Arena) SessionState() (*arena.ArenaSession, error) {
	return a.reconcileSession(a.now())
}

// reconcileSession collapses concurrent reconciles into one in-flight
// call so two simultaneous first reads cannot create two session rows.
func (a *Arena) reconcileSession(now time.Time) (*arena.ArenaSession, error) {
	v, err, _ := dedupe.SessionGroup.Do("session", func() (interface{}, error) {
		return a.advanceSession(now)
	})
	if err != nil {
		return nil, err
	}
	// Collapsed callers share the result, so each gets its own copy.
	cp := *v.(*arena.ArenaSession)
	return &cp, nil
}

// advanceSession derives the correct open/closed state from absolute
// timestamps and corrects any stored disagreement immediately. The same
// row cycles forever: forty minutes open, twenty closed, then the next
// window under an incremented session number.
func (a *Arena) advanceSession(now time.Time) (*arena.ArenaSession, error) {
	s, err := a.repo.GetSession()
	if err != nil {
		return nil, err
	}
	if s == nil {
		opened := now.Truncate(time.Hour)
		s = &arena.ArenaSession{
			SessionNumber: 1,
			OpenedAt:      opened,
			ClosedAt:      opened.Add(arena.SessionOpenWindow),
		}
		s.IsOpen = now.Before(s.ClosedAt)
		if err := a.repo.SaveSession(s); err != nil {
			return nil, err
		}
		logging.Info("arena session created", logging.Fields{"session_number": s.SessionNumber})
		return s, nil
	}

	changed := false
	// Advance whole cycles first so a long outage lands on the current
	// window instead of replaying every missed one.
	cycle := arena.SessionOpenWindow + arena.SessionCloseWindow
	for !now.Before(s.OpenedAt.Add(cycle)) {
		s.OpenedAt = s.OpenedAt.Add(cycle)
		s.ClosedAt = s.OpenedAt.Add(arena.SessionOpenWindow)
		s.SessionNumber++
		s.BattleStartedAt = nil
		s.BattleTimerEndsAt = nil
		changed = true
	}

	open := !now.Before(s.OpenedAt) && now.Before(s.ClosedAt)
	if s.IsOpen != open {
		s.IsOpen = open
		changed = true
	}
	if s.BattleTimerEndsAt != nil && !now.Before(*s.BattleTimerEndsAt) {
		s.BattleStartedAt = nil
		s.BattleTimerEndsAt = nil
		changed = true
	}

	if changed {
		if err := a.repo.SaveSession(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// StartBattleTimer nests the sixty-second battle window inside an open
// session. The first thirty seconds form the setup phase.
func (a *Arena) StartBattleTimer() (*arena.ArenaSession, error) {
	now := a.now()
	s, err := a.reconcileSession(now)
	if err != nil {
		return nil, err
	}
	if !s.IsOpen {
		return nil, ErrSessionClosed
	}
	if s.BattleTimerEndsAt != nil && now.Before(*s.BattleTimerEndsAt) {
		return nil, ErrBattleRunning
	}
	started := now
	ends := now.Add(arena.BattleTimerWindow)
	s.BattleStartedAt = &started
	s.BattleTimerEndsAt = &ends
	if err := a.repo.SaveSession(s); err != nil {
		return nil, err
	}
	logging.Info("battle timer started", logging.Fields{"session_number": s.SessionNumber})
	return s, nil
}

// inSetupPhase reports whether the battle timer is in its first thirty
// seconds, when only Setup or Combo tagged techniques are usable.
func inSetupPhase(s *arena.ArenaSession, now time.Time) bool {
	if s == nil || s.BattleStartedAt == nil || s.BattleTimerEndsAt == nil {
		return false
	}
	if !now.Before(*s.BattleTimerEndsAt) {
		return false
	}
	return now.Before(s.BattleStartedAt.Add(arena.SetupPhaseWindow))
}
