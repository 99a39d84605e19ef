package keys

import "strings"

// Canonical action keys used for cooldown rows. At most one cooldown row
// exists per (actor, key) pair, so keys must be stable across releases.
const (
	ActionAttack     = "attack"
	ActionObserve    = "observe"
	ActionChangeZone = "change_zone"

	techniquePrefix = "technique:"
)

// TechniqueKey builds the cooldown key for a technique. Technique keys
// are already lowercased by the catalog loader; normalize anyway so a
// stray caller cannot mint a second row for the same technique.
func TechniqueKey(techniqueKey string) string {
	return techniquePrefix + strings.ToLower(strings.TrimSpace(techniqueKey))
}

// IsTechniqueKey reports whether an action key refers to a technique and
// returns the bare technique key.
func IsTechniqueKey(actionKey string) (string, bool) {
	if strings.HasPrefix(actionKey, techniquePrefix) {
		return strings.TrimPrefix(actionKey, techniquePrefix), true
	}
	return "", false
}
