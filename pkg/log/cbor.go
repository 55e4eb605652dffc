package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// logEncMode is the CBOR encoder mode for capture events. Timestamps keep
// nanosecond precision and encoding is deterministic.
var logEncMode cbor.EncMode

// logDecMode is the CBOR decoder mode for capture events.
var logDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	logEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	logDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR.
func EncodeEvent(event Event) ([]byte, error) {
	return logEncMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := logDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder creates a CBOR encoder for capture events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return logEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for capture events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}

// CaptureVersion is the capture format version written in headers.
const CaptureVersion = 1

// headerTag is the CBOR tag number marking a header item ("clog").
const headerTag = 0x636c6f67

// ErrUnknownTag is returned for a tagged item that is not a capture header.
var ErrUnknownTag = errors.New("unknown capture tag")

// Header opens the events written by one session logger. A file that
// several sessions appended to holds one header per session.
type Header struct {
	Version   uint      `cbor:"1,keyasint"`
	SessionID string    `cbor:"2,keyasint"`
	Started   time.Time `cbor:"3,keyasint"`
}

// isHeader reports whether raw is a tagged item. Events are maps, so
// only headers start with the tag major type.
func isHeader(raw []byte) bool {
	return len(raw) > 0 && raw[0]>>5 == 6
}

func decodeHeader(raw []byte) (Header, error) {
	var tag cbor.RawTag
	if err := logDecMode.Unmarshal(raw, &tag); err != nil {
		return Header{}, err
	}
	if tag.Number != headerTag {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownTag, tag.Number)
	}
	var h Header
	if err := logDecMode.Unmarshal(tag.Content, &h); err != nil {
		return Header{}, fmt.Errorf("failed to decode capture header: %w", err)
	}
	return h, nil
}
