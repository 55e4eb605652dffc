package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/connman-go/connman/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSONL rendering of a capture event.
type jsonEvent struct {
	Timestamp string              `json:"timestamp"`
	SessionID string              `json:"session_id"`
	Direction string              `json:"direction"`
	Category  string              `json:"category"`
	Sender    string              `json:"sender,omitempty"`
	Signal    *log.SignalEvent    `json:"signal,omitempty"`
	Call      *log.CallEvent      `json:"call,omitempty"`
	Reply     *log.ReplyEvent     `json:"reply,omitempty"`
	Error     *log.ErrorEventData `json:"error,omitempty"`
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		out := jsonEvent{
			Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			SessionID: event.SessionID,
			Direction: event.Direction.String(),
			Category:  event.Category.String(),
			Sender:    event.Sender,
			Signal:    event.Signal,
			Call:      event.Call,
			Reply:     event.Reply,
			Error:     event.Error,
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "category", "path", "member", "outcome", "call_id"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var path, member, outcome, callID string
		switch {
		case event.Signal != nil:
			path = string(event.Signal.Path)
			member = event.Signal.Interface + "." + event.Signal.Member
			outcome = event.Signal.Outcome
		case event.Call != nil:
			path = string(event.Call.Path)
			member = event.Call.Interface + "." + event.Call.Member
			callID = strconv.FormatUint(uint64(event.Call.CallID), 10)
		case event.Reply != nil:
			callID = strconv.FormatUint(uint64(event.Reply.CallID), 10)
			outcome = event.Reply.Error
		case event.Error != nil:
			outcome = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Direction.String(),
			event.Category.String(),
			path,
			member,
			outcome,
			callID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}
