package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterLogsSignal(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp: time.Now(),
		SessionID: "s-123",
		Direction: DirectionIn,
		Category:  CategorySignal,
		Sender:    ":1.7",
		Signal: &SignalEvent{
			Path:      "/net/connman/service/wifi_1",
			Interface: "net.connman.Service",
			Member:    "PropertyChanged",
			Outcome:   "malformed",
			Detail:    "Strength: property has unexpected type",
		},
	})

	want := map[string]any{
		"level":     "DEBUG",
		"msg":       "dbus",
		"session":   "s-123",
		"direction": "IN",
		"category":  "SIGNAL",
		"sender":    ":1.7",
		"member":    "PropertyChanged",
		"outcome":   "malformed",
		"detail":    "Strength: property has unexpected type",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterLogsReply(t *testing.T) {
	d := 2 * time.Millisecond
	entry := logJSON(t, Event{
		Direction: DirectionIn,
		Category:  CategoryReply,
		Reply:     &ReplyEvent{CallID: 9, Error: "net.connman.Error.InProgress", Duration: &d},
	})

	if entry["call_id"] != float64(9) {
		t.Errorf("call_id: got %v", entry["call_id"])
	}
	if entry["error"] != "net.connman.Error.InProgress" {
		t.Errorf("error: got %v", entry["error"])
	}
	if entry["duration"] != float64(d) {
		t.Errorf("duration: got %v, want %v", entry["duration"], float64(d))
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{Category: CategoryError, Error: &ErrorEventData{Message: "x"}})

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
