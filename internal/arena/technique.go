package arena

// Technique is a static definition from the catalog (arena_config.json).
// Definitions are loaded once at startup, normalized, and never
// persisted in the database.
type Technique struct {
	Key  string
	Name string

	// Offensive components. Damage goes through the full multiplier
	// chain and the Aura->Armor->HP pools; ArmorDamage and AuraDamage
	// strip their pool directly, independent of Damage.
	Damage      int
	ArmorDamage int
	AuraDamage  int

	// Self components, applied once per use regardless of target count.
	Heal       int
	ArmorGiven int
	AuraGiven  int

	EnergyCost  int
	EnergyGiven int

	// CooldownMinutes of zero means no cooldown.
	CooldownMinutes int

	Tags TagSet

	OpponentStatus StatusKind
	SelfStatus     StatusKind

	MasteryGiven float64
	MasteryTaken float64

	AttackBoost  int
	AttackDebuff int

	// MinMastery is the floor required to use the technique at all.
	MinMastery float64

	// Target immunity thresholds: a target at or above the mastery or
	// energy threshold is skipped entirely (zero disables the check).
	ImmuneAboveMastery float64
	ImmuneAboveEnergy  int

	// RequiredTargetStatus, when set, restricts the technique to targets
	// currently carrying that status; everyone else is skipped.
	RequiredTargetStatus StatusKind
}

// Offensive reports whether the technique has any hostile component and
// therefore needs a resolved target.
func (t *Technique) Offensive() bool {
	return t.Damage > 0 || t.ArmorDamage > 0 || t.AuraDamage > 0 ||
		t.OpponentStatus != StatusNone || t.AttackDebuff > 0 || t.MasteryTaken > 0
}

// ZoneCapable reports whether the technique itself reaches a whole zone.
// Disciplines with global reach can zone-target regardless.
func (t *Technique) ZoneCapable() bool {
	return t.Tags.Has(TagGlobal)
}

// Discipline is an actor's combat archetype. The zone damage modifier is
// declarative and applied uniformly to every zone-target resolution for
// that discipline (basic attacks and techniques alike).
type Discipline struct {
	Name string

	// ZoneDamageModifier scales damage when the actor resolves against a
	// zone. 1.0 means unmodified; the Emperor ships with 0.5.
	ZoneDamageModifier float64

	// GlobalReach permits targeting a zone instead of a single actor.
	GlobalReach bool
}
