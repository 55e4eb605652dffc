package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/connman-go/connman/pkg/variant"
)

// Filter selects capture events. Zero fields match everything.
type Filter struct {
	// SessionID filters by exact session ID.
	SessionID string

	Direction *Direction
	Category  *Category

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time

	// Interface, Member and Path match signal and call events. Reply and
	// error events never match when any of them is set.
	Interface string
	Member    string
	Path      variant.ObjectPath
}

func (f *Filter) matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if f.Interface == "" && f.Member == "" && f.Path == "" {
		return true
	}

	var path variant.ObjectPath
	var iface, member string
	switch {
	case event.Signal != nil:
		path, iface, member = event.Signal.Path, event.Signal.Interface, event.Signal.Member
	case event.Call != nil:
		path, iface, member = event.Call.Path, event.Call.Interface, event.Call.Member
	default:
		return false
	}
	if f.Interface != "" && iface != f.Interface {
		return false
	}
	if f.Member != "" && member != f.Member {
		return false
	}
	if f.Path != "" && path != f.Path {
		return false
	}
	return true
}

// Reader streams capture events from a file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
	headers []Header
}

// NewReader opens a capture file and reads every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a capture file and reads the events matching
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, decoder: NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
// Session headers are collected for Headers and not returned.
// A truncated trailing item yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (Event, error) {
	for {
		var raw cbor.RawMessage
		if err := r.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if isHeader(raw) {
			h, err := decodeHeader(raw)
			if err != nil {
				return Event{}, err
			}
			r.headers = append(r.headers, h)
			continue
		}
		event, err := DecodeEvent(raw)
		if err != nil {
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Headers returns the session headers passed so far, in file order.
func (r *Reader) Headers() []Header {
	return r.headers
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
