package api

import (
	"net/http"

	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

type JoinRequest struct {
	ActorName  string `json:"actor_name"`
	Discipline string `json:"discipline"`
	Level      int    `json:"level"`
	ZoneID     string `json:"zone_id"`
}

// Join places the caller into a zone, creating their combat profile on
// first entry.
func (h *ArenaHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ZoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Level < 1 {
		req.Level = 1
	}
	p, err := h.svc.Join(actorID(c), req.ActorName, req.Discipline, req.Level, req.ZoneID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Attack resolves a basic attack against the caller's current target.
func (h *ArenaHandler) Attack(c *gin.Context) {
	res, err := h.svc.Attack(actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type TechniqueRequest struct {
	Technique string `json:"technique"`
}

// UseTechnique resolves one technique use.
func (h *ArenaHandler) UseTechnique(c *gin.Context) {
	var req TechniqueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Technique == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.UseTechnique(actorID(c), req.Technique)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type TargetRequest struct {
	TargetID string `json:"target_id"`
	ZoneID   string `json:"zone_id"`
}

// SetTarget locks the caller onto one actor or one zone.
func (h *ArenaHandler) SetTarget(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var err error
	switch {
	case req.TargetID != "" && req.ZoneID != "":
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	case req.TargetID != "":
		err = h.svc.SetTarget(actorID(c), req.TargetID)
	case req.ZoneID != "":
		err = h.svc.SetZoneTarget(actorID(c), req.ZoneID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "target set"})
}

// ClearTarget drops whatever the caller is aiming at.
func (h *ArenaHandler) ClearTarget(c *gin.Context) {
	if err := h.svc.ClearTarget(actorID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "target cleared"})
}

type ReviveRequest struct {
	TargetID string `json:"target_id"`
}

// Revive clears a knocked out actor's K.O before they are ejected.
func (h *ArenaHandler) Revive(c *gin.Context) {
	var req ReviveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.svc.Revive(actorID(c), req.TargetID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "revived"})
}

// Observe grants the cross-zone targeting status.
func (h *ArenaHandler) Observe(c *gin.Context) {
	if err := h.svc.Observe(actorID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "observing"})
}

type MoveRequest struct {
	ZoneID string `json:"zone_id"`
}

// Move relocates the caller to another zone.
func (h *ArenaHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ZoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.svc.ChangeZone(actorID(c), req.ZoneID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "moved"})
}

// StartBattle arms the sixty-second battle timer inside the open
// session.
func (h *ArenaHandler) StartBattle(c *gin.Context) {
	s, err := h.svc.StartBattleTimer()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
