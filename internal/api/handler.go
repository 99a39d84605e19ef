package api

import (
	"errors"
	"net/http"

	"github.com/Isaacdev2004/shonencloud-arena/internal/bus"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// ArenaHandler groups the HTTP handlers over the arena service.
type ArenaHandler struct {
	svc *service.Arena
	hub *bus.Hub
}

func NewArenaHandler(svc *service.Arena, hub *bus.Hub) *ArenaHandler {
	return &ArenaHandler{svc: svc, hub: hub}
}

// actorID returns the identity injected by ActorRequired.
func actorID(c *gin.Context) string {
	v, _ := c.Get("actorID")
	s, _ := v.(string)
	return s
}

// fail maps a service error onto an HTTP status and a stable message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActorNotFound), errors.Is(err, service.ErrActorNotJoined):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrActorNotFound})
	case errors.Is(err, service.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTargetNotFound})
	case errors.Is(err, service.ErrTechniqueNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTechniqueNotFound})
	case errors.Is(err, service.ErrActionBlocked),
		errors.Is(err, service.ErrTechniqueBlocked),
		errors.Is(err, service.ErrTagBlocked),
		errors.Is(err, service.ErrOnCooldown),
		errors.Is(err, service.ErrSetupPhase),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, service.ErrBattleRunning),
		errors.Is(err, service.ErrTargetUnreachable):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrInsufficientEnergy),
		errors.Is(err, service.ErrInsufficientMastery),
		errors.Is(err, service.ErrNoTarget),
		errors.Is(err, service.ErrSelfTarget),
		errors.Is(err, service.ErrZoneTargetNotAllowed),
		errors.Is(err, service.ErrDifferentZone),
		errors.Is(err, service.ErrTargetNotKnockedOut):
		c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreWrite})
	}
}

// ActorRequired extracts the caller identity from the X-Actor-ID header
// and rejects anonymous requests.
func ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderActorID)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrActorRequired})
			return
		}
		c.Set("actorID", id)
		c.Next()
	}
}
