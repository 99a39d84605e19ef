package notify

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/bus"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
)

// Sink accepts fire-and-forget per-actor alerts (targeting changes,
// knockouts, ejections). Delivery guarantees are out of scope; a sink
// must never block or fail the calling resolution.
type Sink interface {
	Notify(recipientID, message, ntype string)
}

const (
	TypeTargeted   = "targeted"
	TypeUntargeted = "untargeted"
	TypeKnockedOut = "knocked_out"
	TypeEjected    = "ejected"
	TypeRevived    = "revived"
)

// LogSink writes notifications to the structured log. It is the fallback
// when no push transport is wired.
type LogSink struct{}

func (LogSink) Notify(recipientID, message, ntype string) {
	logging.Info("notification", logging.Fields{
		"recipient": recipientID,
		"type":      ntype,
		"message":   message,
	})
}

// HubSink pushes notifications to websocket subscribers filtered by
// actor id.
type HubSink struct {
	hub *bus.Hub
}

func NewHubSink(hub *bus.Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) Notify(recipientID, message, ntype string) {
	s.hub.Publish(bus.Event{
		Type:    bus.EventNotification,
		ActorID: recipientID,
		Data: map[string]string{
			"message": message,
			"type":    ntype,
		},
	})
}
