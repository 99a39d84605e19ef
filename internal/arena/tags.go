package arena

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tag classifies a technique for gating and multiplier rules.
type Tag string

const (
	TagSetup     Tag = "Setup"
	TagCombo     Tag = "Combo"
	TagGlobal    Tag = "Global"
	TagAoe       Tag = "Aoe"
	TagMovement  Tag = "Movement"
	TagRanged    Tag = "Ranged"
	TagDefensive Tag = "Defensive"
	TagElemental Tag = "Elemental"
	TagPhysical  Tag = "Physical"
)

var knownTags = map[string]Tag{
	strings.ToLower(string(TagSetup)):     TagSetup,
	strings.ToLower(string(TagCombo)):     TagCombo,
	strings.ToLower(string(TagGlobal)):    TagGlobal,
	strings.ToLower(string(TagAoe)):       TagAoe,
	strings.ToLower(string(TagMovement)):  TagMovement,
	strings.ToLower(string(TagRanged)):    TagRanged,
	strings.ToLower(string(TagDefensive)): TagDefensive,
	strings.ToLower(string(TagElemental)): TagElemental,
	strings.ToLower(string(TagPhysical)):  TagPhysical,
}

// ParseTag normalizes one tag string. Unknown tags are rejected at the
// catalog boundary so nothing downstream ever re-parses strings.
func ParseTag(s string) (Tag, error) {
	t, ok := knownTags[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown technique tag %q", s)
	}
	return t, nil
}

// TagSet is a normalized set of technique tags, decoded once when the
// catalog loads.
type TagSet map[Tag]bool

// NewTagSet builds a set from already-normalized tags.
func NewTagSet(tags ...Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// ParseTagSet normalizes a list of raw tag strings.
func ParseTagSet(raw []string) (TagSet, error) {
	set := make(TagSet, len(raw))
	for _, s := range raw {
		t, err := ParseTag(s)
		if err != nil {
			return nil, err
		}
		set[t] = true
	}
	return set, nil
}

func (s TagSet) Has(t Tag) bool { return s[t] }

// HasAny reports whether any of the given tags is present.
func (s TagSet) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if s[t] {
			return true
		}
	}
	return false
}

// Slice returns the tags in stable order for logs and API responses.
func (s TagSet) Slice() []Tag {
	ordered := []Tag{TagSetup, TagCombo, TagGlobal, TagAoe, TagMovement, TagRanged, TagDefensive, TagElemental, TagPhysical}
	out := make([]Tag, 0, len(s))
	for _, t := range ordered {
		if s[t] {
			out = append(out, t)
		}
	}
	return out
}

// MarshalJSON renders the set as an ordered array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s TagSet) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s.Slice() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}
