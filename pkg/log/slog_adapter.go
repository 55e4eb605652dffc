package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Sender != "" {
		attrs = append(attrs, slog.String("sender", event.Sender))
	}

	switch {
	case event.Signal != nil:
		attrs = append(attrs,
			slog.String("path", string(event.Signal.Path)),
			slog.String("interface", event.Signal.Interface),
			slog.String("member", event.Signal.Member),
			slog.Int("args", len(event.Signal.Args)),
		)
		if event.Signal.Outcome != "" {
			attrs = append(attrs, slog.String("outcome", event.Signal.Outcome))
		}
		if event.Signal.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Signal.Detail))
		}
	case event.Call != nil:
		attrs = append(attrs,
			slog.Uint64("call_id", uint64(event.Call.CallID)),
			slog.String("path", string(event.Call.Path)),
			slog.String("interface", event.Call.Interface),
			slog.String("member", event.Call.Member),
		)
	case event.Reply != nil:
		attrs = append(attrs,
			slog.Uint64("call_id", uint64(event.Reply.CallID)),
			slog.Int("values", len(event.Reply.Body)),
		)
		if event.Reply.Error != "" {
			attrs = append(attrs, slog.String("error", event.Reply.Error))
		}
		if event.Reply.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Reply.Duration))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "dbus", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
