package log

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends capture events to a file as a stream of CBOR items.
// It is safe for concurrent use.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool

	// sessionID fills events logged without one.
	sessionID string
}

// NewFileLogger opens path for appending, creating it with mode 0644 if
// needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f, encoder: NewEncoder(f)}, nil
}

// NewSessionLogger opens path like NewFileLogger and starts the session
// with a Header. Events logged without a SessionID get sessionID.
func NewSessionLogger(path, sessionID string) (*FileLogger, error) {
	l, err := NewFileLogger(path)
	if err != nil {
		return nil, err
	}
	h := Header{Version: CaptureVersion, SessionID: sessionID, Started: time.Now()}
	if err := l.encoder.Encode(cbor.Tag{Number: headerTag, Content: h}); err != nil {
		l.file.Close()
		return nil, fmt.Errorf("write capture header: %w", err)
	}
	l.sessionID = sessionID
	return l, nil
}

// Log writes an event. Encoding errors are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}
	_ = l.encoder.Encode(event)
}

// Close closes the file. Later Log calls are ignored; Close may be called
// more than once.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
