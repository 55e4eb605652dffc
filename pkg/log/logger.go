package log

// Logger receives capture events. Pass nil or NoopLogger to disable
// capture.
type Logger interface {
	// Log records an event. Implementations must be thread-safe and should
	// not block; Log is called from the signal path.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
