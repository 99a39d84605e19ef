package constants

import "time"

// Centralized constants for env keys, routes and gameplay timing.
const (
	// Environment variable keys
	EnvArenaConfig = "ARENA_CONFIG"
	EnvArenaDB     = "ARENA_DB"

	// HTTP headers and content types
	HeaderActorID     = "X-Actor-ID"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Standard action cooldowns. Technique cooldowns come from the catalog.
const (
	AttackCooldown     = 1 * time.Minute
	ObserveCooldown    = 5 * time.Minute
	ChangeZoneCooldown = 5 * time.Minute
)

// Inactivity decay thresholds and penalties.
const (
	DecayActionThreshold = 1 * time.Minute
	DecayAttackThreshold = 4 * time.Minute

	// Penalties as a fraction of max HP.
	DecayActionFraction = 0.20
	DecayAttackFraction = 0.15

	// Bleeding periodic drain as a fraction of current HP.
	BleedFraction = 0.20

	// Chaos periodic energy drain and Launched-Up mastery drain.
	ChaosEnergyDrain       = 2
	LaunchedUpMasteryDrain = 0.25
)

// Combo-tagged techniques require this much mastery.
const ComboMinMastery = 1.5

// Fraction of max HP restored when a knocked out actor is revived.
const ReviveHealFraction = 0.25

// Background scanner intervals.
const (
	SessionTickInterval  = 5 * time.Second
	DecayTickInterval    = 1 * time.Minute
	PeriodicTickInterval = 15 * time.Second
	KOScanInterval       = 5 * time.Second
	SweepInterval        = 1 * time.Minute
)

// Routes used by the backend router.
const (
	RouteAPIPrefix = "/api"

	RouteJoin       = "/arena/join"
	RouteProfile    = "/arena/profile"
	RouteAttack     = "/arena/attack"
	RouteTechnique  = "/arena/technique"
	RouteTechniques = "/arena/techniques"
	RouteTarget     = "/arena/target"
	RouteObserve    = "/arena/observe"
	RouteRevive     = "/arena/revive"
	RouteMove       = "/arena/move"
	RouteZone       = "/arena/zones/:zoneID"
	RouteSession    = "/arena/session"
	RouteBattle     = "/arena/session/battle"
	RouteFeed       = "/arena/feed"
	RouteFeedWS     = "/arena/feed/ws"
	RouteVersion    = "/version"
)

// Common JSON response keys.
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers.
const (
	ErrInvalidRequest    = "Invalid request"
	ErrActorRequired     = "Actor identity required"
	ErrActorNotFound     = "Actor not joined to the arena"
	ErrTargetNotFound    = "Target not found"
	ErrTechniqueNotFound = "Unknown technique"
	ErrFailedStoreWrite  = "Failed to persist action"
	ErrFailedFetchFeed   = "Failed to fetch battle feed"
	ErrFailedSession     = "Failed to read session state"
)

// Logging field names.
const (
	LogFieldActorID   = "actor_id"
	LogFieldTargetID  = "target_id"
	LogFieldZoneID    = "zone_id"
	LogFieldTechnique = "technique"
	LogFieldSessionNo = "session_number"
	LogFieldAddr      = "addr"
)
