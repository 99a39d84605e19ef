package service

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSession_CycleKeepsSameRow(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestArena(base.Add(5 * time.Minute))

	s, err := svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if !s.IsOpen {
		t.Fatalf("session must be open at 10:05")
	}
	if !s.OpenedAt.Equal(base) || !s.ClosedAt.Equal(base.Add(40*time.Minute)) {
		t.Fatalf("expected 10:00-10:40 window, got %v-%v", s.OpenedAt, s.ClosedAt)
	}
	firstID := s.ID
	firstNumber := s.SessionNumber

	// 10:45 sits inside the closed window.
	setClock(svc, base.Add(45*time.Minute))
	s, err = svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if s.IsOpen {
		t.Fatalf("session must be closed at 10:45")
	}
	if s.ID != firstID || s.SessionNumber != firstNumber {
		t.Fatalf("closed window must not advance the session")
	}

	// 11:05 is the next open window on the same row.
	setClock(svc, base.Add(65*time.Minute))
	s, err = svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if !s.IsOpen {
		t.Fatalf("session must be open at 11:05")
	}
	if s.ID != firstID {
		t.Fatalf("cycle must reuse the same row, got id %d want %d", s.ID, firstID)
	}
	if s.SessionNumber != firstNumber+1 {
		t.Fatalf("expected session number %d, got %d", firstNumber+1, s.SessionNumber)
	}
	if !s.OpenedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected next window at 11:00, got %v", s.OpenedAt)
	}
}

func TestSession_SelfHealsStoredFlag(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestArena(base.Add(10 * time.Minute))

	if _, err := svc.SessionState(); err != nil {
		t.Fatalf("session state: %v", err)
	}
	// Corrupt the derived flag behind the manager's back.
	repo.session.IsOpen = false

	s, err := svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if !s.IsOpen {
		t.Fatalf("reconcile must correct a stale stored flag")
	}
	if !repo.session.IsOpen {
		t.Fatalf("correction must be written back")
	}
}

func TestSession_SkipsMissedCycles(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestArena(base)

	s, err := svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	first := s.SessionNumber

	// A long outage: five full cycles later the clock lands mid-window.
	setClock(svc, base.Add(5*time.Hour+10*time.Minute))
	s, err = svc.SessionState()
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if s.SessionNumber != first+5 {
		t.Fatalf("expected session number %d after outage, got %d", first+5, s.SessionNumber)
	}
	if !s.IsOpen {
		t.Fatalf("session must be open at :10 past the hour")
	}
}

func TestBattleTimer_RequiresOpenSession(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestArena(base.Add(45 * time.Minute))

	if _, err := svc.StartBattleTimer(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestBattleTimer_SetupPhaseWindow(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestArena(base)

	s, err := svc.StartBattleTimer()
	if err != nil {
		t.Fatalf("start battle timer: %v", err)
	}
	if !inSetupPhase(s, base.Add(10*time.Second)) {
		t.Fatalf("first 30 seconds are the setup phase")
	}
	if inSetupPhase(s, base.Add(31*time.Second)) {
		t.Fatalf("setup phase ends at 30 seconds")
	}
	if inSetupPhase(s, base.Add(2*time.Minute)) {
		t.Fatalf("a finished battle timer has no setup phase")
	}

	if _, err := svc.StartBattleTimer(); !errors.Is(err, ErrBattleRunning) {
		t.Fatalf("expected ErrBattleRunning, got %v", err)
	}

	// Once the timer lapses it can be armed again.
	setClock(svc, base.Add(2*time.Minute))
	if _, err := svc.StartBattleTimer(); err != nil {
		t.Fatalf("restart after lapse: %v", err)
	}
}

func TestSession_ConcurrentFirstAccessCreatesOneRow(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestArena(base.Add(5 * time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				svc.SessionState()
			} else {
				svc.StartBattleTimer()
			}
		}(i)
	}
	wg.Wait()

	s, err := repo.GetSession()
	if err != nil || s == nil {
		t.Fatalf("session missing after concurrent access: %v", err)
	}
	if s.ID != 1 {
		t.Fatalf("expected a single created row, last write carries ID %d", s.ID)
	}
	if s.SessionNumber != 1 {
		t.Fatalf("session number %d, want 1", s.SessionNumber)
	}
}
