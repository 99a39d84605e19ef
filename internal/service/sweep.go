package service

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/dedupe"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// SweepExpired deletes expired status, cooldown and feed rows. Readers
// already filter on expiry, so this is hygiene only; overlapping sweeps
// collapse to one.
func (a *Arena) SweepExpired() {
	dedupe.SweepGroup.Do("sweep", func() (interface{}, error) {
		now := a.now()
		if n, err := a.repo.DeleteExpiredStatuses(now); err != nil {
			logging.Error("failed to sweep expired statuses", err, nil)
		} else if n > 0 {
			logging.Info("swept expired statuses", logging.Fields{"count": n})
		}
		if n, err := a.repo.DeleteExpiredCooldowns(now); err != nil {
			logging.Error("failed to sweep expired cooldowns", err, nil)
		} else if n > 0 {
			logging.Info("swept expired cooldowns", logging.Fields{"count": n})
		}
		if a.feed != nil {
			if n, err := a.feed.Sweep(); err != nil {
				logging.Error("failed to sweep battle feed", err, nil)
			} else if n > 0 {
				logging.Info("swept stale feed entries", logging.Fields{"count": n})
			}
		}
		return nil, nil
	})
}
