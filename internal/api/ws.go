package api

import (
	"net/http"

	"github.com/Isaacdev2004/shonencloud-arena/internal/bus"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Identity rides in the connection itself; cross-origin viewers are
	// read-only subscribers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedWS upgrades the connection to a live battle-feed subscription.
// Optional zone_id and actor_id query filters narrow delivery.
func (h *ArenaHandler) FeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	client := bus.NewClient(h.hub, conn, c.Query("zone_id"), c.Query("actor_id"))
	client.Register()
	go client.WritePump()
	go client.ReadPump()
}
