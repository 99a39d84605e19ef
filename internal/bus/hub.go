package bus

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// Event is one push-delivered arena occurrence. ActorID and ZoneID are
// routing hints only; subscribers with filters receive an event when
// either hint matches.
type Event struct {
	Type    string      `json:"type"`
	ActorID string      `json:"actor_id,omitempty"`
	ZoneID  string      `json:"zone_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	EventFeedEntry    = "feed_entry"
	EventNotification = "notification"
)

// Hub maintains the set of active subscriber connections and fans events
// out to them. Delivery is best effort: a slow subscriber is dropped
// rather than allowed to stall the rest.
type Hub struct {
	clients    map[*Client]bool
	publish    chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		publish:    make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drives the hub until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logging.Info("event hub shutting down", nil)
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case ev := <-h.publish:
			payload, err := json.Marshal(ev)
			if err != nil {
				logging.Error("failed to serialize event for broadcast", err, logging.Fields{"type": ev.Type})
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if !client.wants(ev) {
					continue
				}
				select {
				case client.send <- payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for fan-out. It never blocks the caller: when
// the hub is saturated the event is dropped, the durable feed remains
// the source of truth.
func (h *Hub) Publish(ev Event) {
	select {
	case h.publish <- ev:
	default:
		logging.Warn("event hub saturated, dropping event", logging.Fields{"type": ev.Type})
	}
}
