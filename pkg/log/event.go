package log

import (
	"time"

	"github.com/connman-go/connman/pkg/variant"
)

// Event is one captured bus exchange: a received signal, an outgoing
// method call, its reply, or an error. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the bus connection that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow relative to this process.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Sender is the unique bus name of the peer, when known.
	Sender string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Signal *SignalEvent    `cbor:"10,keyasint,omitempty"`
	Call   *CallEvent      `cbor:"11,keyasint,omitempty"`
	Reply  *ReplyEvent     `cbor:"12,keyasint,omitempty"`
	Error  *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategorySignal indicates a received signal.
	CategorySignal Category = 0
	// CategoryCall indicates a method call.
	CategoryCall Category = 1
	// CategoryReply indicates a method reply.
	CategoryReply Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySignal:
		return "SIGNAL"
	case CategoryCall:
		return "CALL"
	case CategoryReply:
		return "REPLY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SignalEvent captures a signal as it came off the bus together with the
// classification outcome.
type SignalEvent struct {
	Path      variant.ObjectPath `cbor:"1,keyasint"`
	Interface string             `cbor:"2,keyasint"`
	Member    string             `cbor:"3,keyasint"`
	Args      []variant.Value    `cbor:"4,keyasint,omitempty"`

	// Outcome is "decoded", "not_applicable" or "malformed".
	Outcome string `cbor:"5,keyasint,omitempty"`

	// Detail holds the decode error for malformed signals.
	Detail string `cbor:"6,keyasint,omitempty"`
}

// CallEvent captures an outgoing method call.
type CallEvent struct {
	// CallID correlates the call with its ReplyEvent.
	CallID    uint32             `cbor:"1,keyasint"`
	Path      variant.ObjectPath `cbor:"2,keyasint"`
	Interface string             `cbor:"3,keyasint"`
	Member    string             `cbor:"4,keyasint"`
	Args      []variant.Value    `cbor:"5,keyasint,omitempty"`
}

// ReplyEvent captures the reply to a method call.
type ReplyEvent struct {
	CallID uint32          `cbor:"1,keyasint"`
	Body   []variant.Value `cbor:"2,keyasint,omitempty"`

	// Error is the D-Bus error name or message when the call failed.
	Error string `cbor:"3,keyasint,omitempty"`

	// Duration is the round-trip time of the call.
	Duration *time.Duration `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures an error that is not tied to a single call.
type ErrorEventData struct {
	// Message is a human-readable error description.
	Message string `cbor:"1,keyasint"`

	// Context provides additional context about what was happening.
	Context string `cbor:"2,keyasint,omitempty"`
}
