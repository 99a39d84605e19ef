package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"
)

// rawTags accepts both the legacy single-string form ("Ranged,Elemental")
// and the array form (["Ranged","Elemental"]) seen in older catalog
// exports. Normalization happens exactly once, here; downstream code
// only ever sees arena.TagSet.
type rawTags []string

func (r *rawTags) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*r = list
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	if strings.TrimSpace(single) == "" {
		*r = nil
		return nil
	}
	*r = strings.Split(single, ",")
	return nil
}

type techniqueEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	Damage      int `json:"damage"`
	ArmorDamage int `json:"armor_damage"`
	AuraDamage  int `json:"aura_damage"`

	Heal       int `json:"heal"`
	ArmorGiven int `json:"armor_given"`
	AuraGiven  int `json:"given_aura"`

	EnergyCost  int `json:"energy_cost"`
	EnergyGiven int `json:"energy_given"`

	CooldownMinutes int `json:"cooldown_minutes"`

	Tags rawTags `json:"tags"`

	OpponentStatus string `json:"opponent_status"`
	SelfStatus     string `json:"self_status"`

	MasteryGiven float64 `json:"mastery_given"`
	MasteryTaken float64 `json:"mastery_taken"`

	AttackBoost  int `json:"atk_boost"`
	AttackDebuff int `json:"atk_debuff"`

	MinMastery         float64 `json:"no_use_m"`
	ImmuneAboveMastery float64 `json:"no_hit_m"`
	ImmuneAboveEnergy  int     `json:"no_hit_e"`
	RequiredTargetHit  string  `json:"specific_status_hit"`
}

type disciplineEntry struct {
	Name               string   `json:"name"`
	ZoneDamageModifier *float64 `json:"zone_damage_modifier"`
	GlobalReach        bool     `json:"global_reach"`
}

type rawConfig struct {
	TechniqueList  []techniqueEntry  `json:"technique_list"`
	DisciplineList []disciplineEntry `json:"discipline_list"`
	Server         *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional override for the battle feed TTL, in minutes. Used by
	// operators running short-lived staging arenas.
	FeedTTLMinutes int `json:"feed_ttl_minutes"`
}

// Catalog holds the loaded, normalized technique and discipline
// definitions. It is read-only after startup.
type Catalog struct {
	techniques  map[string]*arena.Technique
	disciplines map[string]*arena.Discipline
}

// Technique looks up a definition by key (case-insensitive).
func (c *Catalog) Technique(key string) (*arena.Technique, bool) {
	t, ok := c.techniques[strings.ToLower(strings.TrimSpace(key))]
	return t, ok
}

// Discipline looks up an archetype by name (case-insensitive). Unknown
// disciplines fall back to a neutral archetype: no global reach,
// unmodified zone damage.
func (c *Catalog) Discipline(name string) *arena.Discipline {
	if d, ok := c.disciplines[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return &arena.Discipline{Name: name, ZoneDamageModifier: 1.0}
}

// Techniques returns every definition, for listing endpoints.
func (c *Catalog) Techniques() []*arena.Technique {
	out := make([]*arena.Technique, 0, len(c.techniques))
	for _, t := range c.techniques {
		out = append(out, t)
	}
	return out
}

// LoadedConfig contains the catalog and server settings.
type LoadedConfig struct {
	Catalog       *Catalog
	ServerAddress string
	FeedTTL       time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `technique_list` (snake_case) and validates every entry before the
// server starts.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.TechniqueList) == 0 {
		return nil, fmt.Errorf("config file %s: technique_list is empty (provide a 'technique_list' array)", path)
	}

	catalog := &Catalog{
		techniques:  make(map[string]*arena.Technique, len(rc.TechniqueList)),
		disciplines: make(map[string]*arena.Discipline, len(rc.DisciplineList)),
	}

	for _, e := range rc.TechniqueList {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			return nil, fmt.Errorf("config file %s: technique entry missing 'key'", path)
		}
		if _, dup := catalog.techniques[key]; dup {
			return nil, fmt.Errorf("config file %s: duplicate technique key '%s'", path, key)
		}
		tags, err := arena.ParseTagSet(e.Tags)
		if err != nil {
			return nil, fmt.Errorf("config file %s: technique '%s': %w", path, key, err)
		}
		if e.EnergyCost < 0 || e.CooldownMinutes < 0 {
			return nil, fmt.Errorf("config file %s: technique '%s': negative cost or cooldown", path, key)
		}
		catalog.techniques[key] = &arena.Technique{
			Key:                  key,
			Name:                 e.Name,
			Damage:               e.Damage,
			ArmorDamage:          e.ArmorDamage,
			AuraDamage:           e.AuraDamage,
			Heal:                 e.Heal,
			ArmorGiven:           e.ArmorGiven,
			AuraGiven:            e.AuraGiven,
			EnergyCost:           e.EnergyCost,
			EnergyGiven:          e.EnergyGiven,
			CooldownMinutes:      e.CooldownMinutes,
			Tags:                 tags,
			OpponentStatus:       arena.StatusKind(strings.TrimSpace(e.OpponentStatus)),
			SelfStatus:           arena.StatusKind(strings.TrimSpace(e.SelfStatus)),
			MasteryGiven:         e.MasteryGiven,
			MasteryTaken:         e.MasteryTaken,
			AttackBoost:          e.AttackBoost,
			AttackDebuff:         e.AttackDebuff,
			MinMastery:           e.MinMastery,
			ImmuneAboveMastery:   e.ImmuneAboveMastery,
			ImmuneAboveEnergy:    e.ImmuneAboveEnergy,
			RequiredTargetStatus: arena.StatusKind(strings.TrimSpace(e.RequiredTargetHit)),
		}
	}

	for _, d := range rc.DisciplineList {
		name := strings.ToLower(strings.TrimSpace(d.Name))
		if name == "" {
			return nil, fmt.Errorf("config file %s: discipline entry missing 'name'", path)
		}
		if _, dup := catalog.disciplines[name]; dup {
			return nil, fmt.Errorf("config file %s: duplicate discipline '%s'", path, d.Name)
		}
		mod := 1.0
		if d.ZoneDamageModifier != nil {
			mod = *d.ZoneDamageModifier
			if mod < 0 || mod > 1 {
				return nil, fmt.Errorf("config file %s: discipline '%s': zone_damage_modifier must be in [0,1]", path, d.Name)
			}
		}
		catalog.disciplines[name] = &arena.Discipline{
			Name:               d.Name,
			ZoneDamageModifier: mod,
			GlobalReach:        d.GlobalReach,
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	feedTTL := arena.BattleFeedTTL
	if rc.FeedTTLMinutes > 0 {
		feedTTL = time.Duration(rc.FeedTTLMinutes) * time.Minute
	}

	return &LoadedConfig{Catalog: catalog, ServerAddress: addr, FeedTTL: feedTTL}, nil
}

// NewCatalog builds a catalog from already-normalized definitions. Used
// by tests and seed tooling.
func NewCatalog(techniques []*arena.Technique, disciplines []*arena.Discipline) *Catalog {
	c := &Catalog{
		techniques:  make(map[string]*arena.Technique, len(techniques)),
		disciplines: make(map[string]*arena.Discipline, len(disciplines)),
	}
	for _, t := range techniques {
		c.techniques[strings.ToLower(t.Key)] = t
	}
	for _, d := range disciplines {
		c.disciplines[strings.ToLower(d.Name)] = d
	}
	return c
}
