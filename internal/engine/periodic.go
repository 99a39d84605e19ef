package engine

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
)

// PeriodicDrain is one minute's worth of an ongoing status drain.
type PeriodicDrain struct {
	Kind    arena.StatusKind
	Damage  int
	Energy  int
	Mastery float64
}

// DrainFor computes the per-minute drain for a status, or false when the
// status has no periodic component. Bleeding bites a fraction of current
// HP so it decays geometrically rather than finishing anyone off on its
// own.
func DrainFor(kind arena.StatusKind, currentHP int) (PeriodicDrain, bool) {
	switch kind {
	case arena.StatusBleeding:
		return PeriodicDrain{Kind: kind, Damage: int(float64(currentHP) * constants.BleedFraction)}, true
	case arena.StatusChaos:
		return PeriodicDrain{Kind: kind, Energy: constants.ChaosEnergyDrain}, true
	case arena.StatusLaunchedUp:
		return PeriodicDrain{Kind: kind, Mastery: constants.LaunchedUpMasteryDrain}, true
	}
	return PeriodicDrain{}, false
}

// PeriodicKinds lists the statuses that carry a per-minute drain, in the
// order the tick applies them.
var PeriodicKinds = []arena.StatusKind{arena.StatusBleeding, arena.StatusChaos, arena.StatusLaunchedUp}
