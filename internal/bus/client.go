package bus

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer. Subscribers only listen,
	// anything beyond a pong is noise.
	maxMessageSize = 512
)

// Client is one subscriber connection. An empty filter field matches
// everything; a non-empty zoneID or actorID restricts delivery to events
// carrying that routing hint.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	zoneID  string
	actorID string
}

func NewClient(hub *Hub, conn *websocket.Conn, zoneID, actorID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		zoneID:  zoneID,
		actorID: actorID,
	}
}

func (c *Client) wants(ev Event) bool {
	if c.zoneID == "" && c.actorID == "" {
		return true
	}
	if c.zoneID != "" && ev.ZoneID == c.zoneID {
		return true
	}
	if c.actorID != "" && ev.ActorID == c.actorID {
		return true
	}
	return false
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump drains the connection so pong handlers fire and disconnects
// unregister promptly. Subscriber messages are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump pushes hub payloads and keepalive pings to the peer.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
