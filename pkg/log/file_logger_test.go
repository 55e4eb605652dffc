package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{
		Timestamp: time.Now(),
		SessionID: "s-123",
		Direction: DirectionIn,
		Category:  CategorySignal,
		Signal:    &SignalEvent{Path: "/", Interface: "net.connman.Manager", Member: "ServicesChanged"},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read capture file: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.SessionID != "s-123" {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, "s-123")
	}
	if decoded.Signal == nil || decoded.Signal.Member != "ServicesChanged" {
		t.Errorf("Signal: got %+v", decoded.Signal)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")

	for _, id := range []string{"s-1", "s-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: id})
		logger.Close()
	}

	ids := readSessionIDs(t, path)
	if len(ids) != 2 || ids[0] != "s-1" || ids[1] != "s-2" {
		t.Errorf("sessions: got %v, want [s-1 s-2]", ids)
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{SessionID: "before"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	logger.Log(Event{SessionID: "after"})

	if ids := readSessionIDs(t, path); len(ids) != 1 {
		t.Errorf("got %d events, want 1", len(ids))
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const goroutines, perGoroutine = 8, 50
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				logger.Log(Event{Timestamp: time.Now(), SessionID: "s", Category: CategoryCall})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	if ids := readSessionIDs(t, path); len(ids) != goroutines*perGoroutine {
		t.Errorf("got %d events, want %d", len(ids), goroutines*perGoroutine)
	}
}

func TestFileLoggerBadPath(t *testing.T) {
	if _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "capture.clog")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSessionLoggerWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")

	before := time.Now()
	for _, id := range []string{"s-1", "s-2"} {
		logger, err := NewSessionLogger(path, id)
		if err != nil {
			t.Fatalf("NewSessionLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), Category: CategorySignal})
		logger.Log(Event{Timestamp: time.Now(), SessionID: "explicit", Category: CategoryCall})
		logger.Close()
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var ids []string
	for _, e := range readAll(t, r) {
		ids = append(ids, e.SessionID)
	}

	want := []string{"s-1", "explicit", "s-2", "explicit"}
	if len(ids) != len(want) {
		t.Fatalf("sessions: got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("event %d session: got %q, want %q", i, ids[i], want[i])
		}
	}

	headers := r.Headers()
	if len(headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(headers))
	}
	for i, h := range headers {
		if h.Version != CaptureVersion {
			t.Errorf("header %d version: got %d", i, h.Version)
		}
		if h.Started.Before(before.Add(-time.Second)) {
			t.Errorf("header %d started: got %v", i, h.Started)
		}
	}
	if headers[0].SessionID != "s-1" || headers[1].SessionID != "s-2" {
		t.Errorf("header sessions: got %q, %q", headers[0].SessionID, headers[1].SessionID)
	}
}

func TestReaderRejectsUnknownTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.clog")
	data, err := logEncMode.Marshal(cbor.Tag{Number: 42, Content: "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("Next: got %v, want ErrUnknownTag", err)
	}
}
