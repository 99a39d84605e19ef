package arena

import (
	"math"
	"strings"
	"time"
)

// StatusKind identifies one status state machine. Using a dedicated type
// instead of plain string makes code safer and self-documenting.
type StatusKind string

const (
	StatusNone StatusKind = ""

	// Hard control.
	StatusStunned  StatusKind = "Stunned"
	StatusSilenced StatusKind = "Silenced"
	StatusKO       StatusKind = "K.O"
	StatusGrounded StatusKind = "Grounded"

	// Tag-specific locks.
	StatusShrouded   StatusKind = "Shrouded"
	StatusLaunchedUp StatusKind = "Launched-Up"
	StatusUnwell     StatusKind = "Unwell"

	// Position/visibility.
	StatusHidden      StatusKind = "Hidden"
	StatusAirborne    StatusKind = "Airborne"
	StatusUnderground StatusKind = "Underground"
	StatusFocused     StatusKind = "Focused"

	// Damage interaction.
	StatusShielded        StatusKind = "Shielded"
	StatusStasis          StatusKind = "Stasis"
	StatusElementAffected StatusKind = "Element-Affected"
	StatusAnalyzed        StatusKind = "Analyzed"

	// Resource interaction.
	StatusBlessed  StatusKind = "Blessed"
	StatusWeakened StatusKind = "Weakened"

	// Periodic drains.
	StatusBleeding StatusKind = "Bleeding"
	StatusChaos    StatusKind = "Chaos-Affected"

	// Self-granted observation state: lifts the same-zone targeting
	// requirement while active.
	StatusObserve StatusKind = "Observe"

	// Aura-named statuses make the holder take +50% from Setup-tagged
	// effects. Techniques may define more kinds with the "Aura" prefix;
	// this is the stock one.
	StatusAuraBlazing StatusKind = "Aura-Blazing"
)

// IsAuraNamed reports whether the kind counts as an aura stance for the
// Setup-tag damage multiplier.
func (k StatusKind) IsAuraNamed() bool { return strings.HasPrefix(string(k), "Aura") }

// Fixed-duration statuses: these never scale with the applier's mastery.
const (
	ControlStatusDuration = 2 * time.Minute // Stunned, Silenced, K.O
	ObserveStatusDuration = 3 * time.Minute
)

// StatusDuration computes how long a freshly applied status lasts.
// Stunned, Silenced and K.O are always exactly two minutes; Observe is
// always three. Everything else lasts floor(applier mastery) minutes,
// floored to one minute so no status is ever instant.
func StatusDuration(kind StatusKind, applierMastery float64) time.Duration {
	switch kind {
	case StatusStunned, StatusSilenced, StatusKO:
		return ControlStatusDuration
	case StatusObserve:
		return ObserveStatusDuration
	}
	minutes := int(math.Floor(applierMastery))
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

// StatusSet is the set of currently active kinds for one actor,
// precomputed once per gating decision.
type StatusSet map[StatusKind]bool

// ActiveStatusSet filters effects by expiry and collects their kinds.
func ActiveStatusSet(effects []StatusEffect, now time.Time) StatusSet {
	set := make(StatusSet, len(effects))
	for i := range effects {
		if effects[i].Active(now) {
			set[effects[i].Kind] = true
		}
	}
	return set
}

func (s StatusSet) Has(kind StatusKind) bool { return s[kind] }

// HasAuraNamed reports whether any active status is an aura stance.
func (s StatusSet) HasAuraNamed() bool {
	for k := range s {
		if k.IsAuraNamed() {
			return true
		}
	}
	return false
}

// BlocksAction reports rule 1: Stunned, K.O or Grounded block every
// action (attack, move, observe, technique).
func (s StatusSet) BlocksAction() (StatusKind, bool) {
	for _, k := range []StatusKind{StatusStunned, StatusKO, StatusGrounded} {
		if s[k] {
			return k, true
		}
	}
	return StatusNone, false
}

// BlocksTechnique reports rule 2. The listing is kept separate from
// BlocksAction on purpose: future statuses may block one but not the
// other.
func (s StatusSet) BlocksTechnique() (StatusKind, bool) {
	for _, k := range []StatusKind{StatusStunned, StatusSilenced, StatusKO} {
		if s[k] {
			return k, true
		}
	}
	return StatusNone, false
}
