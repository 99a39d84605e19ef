package api

import (
	"net/http"
	"strconv"

	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/version"
	"github.com/gin-gonic/gin"
)

// Profile returns the caller's combat view.
func (h *ArenaHandler) Profile(c *gin.Context) {
	view, err := h.svc.Profile(actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Zone lists the visible occupants of a zone.
func (h *ArenaHandler) Zone(c *gin.Context) {
	occupants, err := h.svc.ZoneOccupants(c.Param("zoneID"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, occupants)
}

// Techniques exposes the loaded catalog.
func (h *ArenaHandler) Techniques(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Techniques())
}

// Session returns the reconciled session clock.
func (h *ArenaHandler) Session(c *gin.Context) {
	s, err := h.svc.SessionState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSession})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Feed returns the recent battle feed, newest first.
func (h *ArenaHandler) Feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.svc.RecentFeed(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchFeed})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}
