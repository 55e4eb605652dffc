package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/connman-go/connman/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	SignalsByOutcome  map[string]int
	SignalsByMember   map[string]int
	Sessions          map[string]*SessionStats
	FailedCalls       int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single bus session.
type SessionStats struct {
	// Started comes from the session's capture header, if any.
	Started   time.Time
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Calls     int

	// CallTime is the summed round-trip time of replied calls.
	CallTime time.Duration
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		SignalsByOutcome:  make(map[string]int),
		SignalsByMember:   make(map[string]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	for _, h := range reader.Headers() {
		if sess, ok := stats.Sessions[h.SessionID]; ok {
			sess.Started = h.Started
		}
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	switch {
	case event.Signal != nil:
		s.SignalsByOutcome[event.Signal.Outcome]++
		s.SignalsByMember[eventLabel(event)]++
	case event.Call != nil:
		sess.Calls++
	case event.Reply != nil:
		if event.Reply.Error != "" {
			s.FailedCalls++
		}
		if event.Reply.Duration != nil {
			sess.CallTime += *event.Reply.Duration
		}
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== ConnMan Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategorySignal, log.CategoryCall, log.CategoryReply, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.SignalsByOutcome) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Signals by Outcome:")
		for _, outcome := range sortedKeys(stats.SignalsByOutcome) {
			fmt.Fprintf(w, "  %-16s %d\n", outcome+":", stats.SignalsByOutcome[outcome])
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Signals by Member:")
		for _, member := range sortedKeys(stats.SignalsByMember) {
			fmt.Fprintf(w, "  %-40s %d\n", member, stats.SignalsByMember[member])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if !s.stats.Started.IsZero() {
				fmt.Fprintf(w, "           Started: %s\n", s.stats.Started.Format(time.RFC3339))
			}
			if s.stats.Calls > 0 {
				fmt.Fprintf(w, "           Calls: %d (total %s)\n", s.stats.Calls, formatDuration(s.stats.CallTime))
			}
		}
	}

	if stats.FailedCalls > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failed Calls: %d\n", stats.FailedCalls)
	}
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
