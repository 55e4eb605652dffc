package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/connman-go/connman/pkg/signal"
	"github.com/connman-go/connman/pkg/variant"
)

// Notification is the payload delivered to subscribers. Every subscriber
// of one publish receives the same Notification.
type Notification struct {
	// ID is unique per decoded signal.
	ID       uuid.UUID          `json:"id"`
	Received time.Time          `json:"received"`
	Path     variant.ObjectPath `json:"path"`
	Scope    signal.Scope       `json:"scope"`
	Kind     signal.Kind        `json:"kind"`
	Event    signal.Event       `json:"event"`
}

// NewNotification wraps a decoded event.
func NewNotification(msg signal.Message, ev signal.Event, received time.Time) Notification {
	return Notification{
		ID:       uuid.New(),
		Received: received,
		Path:     msg.Path,
		Scope:    ev.Kind().Scope(),
		Kind:     ev.Kind(),
		Event:    ev,
	}
}
