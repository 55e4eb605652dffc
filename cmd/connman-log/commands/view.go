// Package commands implements the connman-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/connman-go/connman/pkg/inspect"
	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/variant"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Direction *log.Direction
	Category  *log.Category
	Interface string
	Member    string
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Direction: f.Direction,
		Category:  f.Category,
		Interface: f.Interface,
		Member:    f.Member,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, fm *inspect.Formatter, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] %-3s %-6s %s\n",
		ts, shortenSessionID(event.SessionID), event.Direction, event.Category, eventLabel(event))

	switch {
	case event.Signal != nil:
		if event.Sender != "" {
			fmt.Fprintf(w, "  Sender: %s\n", event.Sender)
		}
		fmt.Fprintf(w, "  Path: %s\n", event.Signal.Path)
		formatArgs(w, fm, "Args", event.Signal.Args)
		if event.Signal.Outcome != "" {
			fmt.Fprintf(w, "  Outcome: %s\n", event.Signal.Outcome)
		}
		if event.Signal.Detail != "" {
			fmt.Fprintf(w, "  Detail: %s\n", event.Signal.Detail)
		}
	case event.Call != nil:
		fmt.Fprintf(w, "  CallID: %d\n", event.Call.CallID)
		fmt.Fprintf(w, "  Path: %s\n", event.Call.Path)
		formatArgs(w, fm, "Args", event.Call.Args)
	case event.Reply != nil:
		fmt.Fprintf(w, "  CallID: %d\n", event.Reply.CallID)
		if event.Reply.Duration != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*event.Reply.Duration))
		}
		if event.Reply.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", event.Reply.Error)
		}
		formatArgs(w, fm, "Body", event.Reply.Body)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

// eventLabel names the payload: interface.member for signals and calls.
func eventLabel(event log.Event) string {
	switch {
	case event.Signal != nil:
		return event.Signal.Interface + "." + event.Signal.Member
	case event.Call != nil:
		return event.Call.Interface + "." + event.Call.Member
	case event.Reply != nil:
		return "Reply"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

func formatArgs(w io.Writer, fm *inspect.Formatter, label string, args []variant.Value) {
	if len(args) == 0 {
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fm.FormatValue(a)
	}
	fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(parts, ", "))
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseDirectionFlag parses a direction string (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "signal":
		return log.CategorySignal, nil
	case "call":
		return log.CategoryCall, nil
	case "reply":
		return log.CategoryReply, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be signal, call, reply, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	fm := inspect.NewFormatter()
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, fm, event)
	}
}
