package service

import "errors"

var (
	ErrActorNotFound     = errors.New("actor not found")
	ErrActorNotJoined    = errors.New("actor holds no zone position")
	ErrTargetNotFound    = errors.New("target not found")
	ErrTechniqueNotFound = errors.New("unknown technique")

	ErrActionBlocked    = errors.New("a status blocks this action")
	ErrTechniqueBlocked = errors.New("a status blocks technique use")
	ErrTagBlocked       = errors.New("a status blocks this technique tag")

	ErrOnCooldown           = errors.New("action is on cooldown")
	ErrInsufficientEnergy   = errors.New("insufficient energy")
	ErrInsufficientMastery  = errors.New("insufficient mastery")
	ErrNoTarget             = errors.New("no target selected")
	ErrSelfTarget           = errors.New("cannot target yourself")
	ErrZoneTargetNotAllowed = errors.New("zone targeting requires global reach")
	ErrDifferentZone        = errors.New("target is in a different zone")
	ErrTargetUnreachable    = errors.New("target cannot be reached")
	ErrTargetNotKnockedOut  = errors.New("target is not knocked out")
	ErrSetupPhase           = errors.New("only setup or combo techniques during setup phase")
	ErrSessionClosed        = errors.New("arena session is closed")
	ErrBattleRunning        = errors.New("a battle timer is already running")
)
