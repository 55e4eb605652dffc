package variant

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for captured values.
// Deterministic so identical values produce identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for captured values.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient decoding so captures written by newer versions still load
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		MaxNestedLevels:   64,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes v to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// wireValue is the capture encoding of a Value:
//
//	[kind, payload]
//
// payload is a bool, an unsigned integer, a text string, an array of
// values, an array of [key, value] pairs (dict) or a single value (variant).
type wireValue struct {
	_       struct{} `cbor:",toarray"`
	Kind    Kind
	Payload cbor.RawMessage
}

type wireEntry struct {
	_     struct{} `cbor:",toarray"`
	Key   string
	Value Value
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	var payload any
	switch v.kind {
	case KindBool:
		payload = v.b
	case KindUint8, KindUint16, KindUint32, KindUint64:
		payload = v.u
	case KindString, KindObjectPath:
		payload = v.s
	case KindArray:
		payload = v.elems
	case KindDict:
		entries := make([]wireEntry, len(v.entries))
		for i, e := range v.entries {
			entries[i] = wireEntry{Key: e.Key, Value: e.Value}
		}
		payload = entries
	case KindVariant:
		payload = *v.inner
	default:
		return nil, fmt.Errorf("cannot encode %s value", v.kind)
	}

	raw, err := encMode.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(wireValue{Kind: v.kind, Payload: raw})
}

// maxDepth bounds how deeply decoded values may nest.
const maxDepth = 32

// ErrTooDeep is returned when a captured value nests deeper than maxDepth.
var ErrTooDeep = errors.New("value nested too deeply")

// UnmarshalCBOR implements cbor.Unmarshaler. The whole value is decoded
// in one pass and then converted with an explicit depth bound.
func (v *Value) UnmarshalCBOR(data []byte) error {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	out, err := fromWire(raw, 0)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func fromWire(raw any, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, ErrTooDeep
	}
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return Value{}, fmt.Errorf("failed to decode value: want [kind, payload], got %T", raw)
	}
	k, ok := pair[0].(uint64)
	if !ok || k > uint64(KindVariant) || k == uint64(KindInvalid) {
		return Value{}, fmt.Errorf("unknown value kind %v", pair[0])
	}

	kind := Kind(k)
	payload := pair[1]
	out := Value{kind: kind}
	switch kind {
	case KindBool:
		if out.b, ok = payload.(bool); !ok {
			return Value{}, payloadErr(kind, payload)
		}
	case KindUint8, KindUint16, KindUint32, KindUint64:
		if out.u, ok = payload.(uint64); !ok {
			return Value{}, payloadErr(kind, payload)
		}
		if out.u > maxForKind(kind) {
			return Value{}, fmt.Errorf("failed to decode %s payload: %d overflows %s", kind, out.u, kind)
		}
	case KindString, KindObjectPath:
		if out.s, ok = payload.(string); !ok {
			return Value{}, payloadErr(kind, payload)
		}
	case KindArray:
		elems, ok := payload.([]any)
		if !ok {
			return Value{}, payloadErr(kind, payload)
		}
		out.elems = make([]Value, 0, len(elems))
		for _, e := range elems {
			ev, err := fromWire(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			out.elems = append(out.elems, ev)
		}
	case KindDict:
		entries, ok := payload.([]any)
		if !ok {
			return Value{}, payloadErr(kind, payload)
		}
		out.entries = make([]Entry, 0, len(entries))
		for _, e := range entries {
			kv, ok := e.([]any)
			if !ok || len(kv) != 2 {
				return Value{}, payloadErr(kind, e)
			}
			key, ok := kv[0].(string)
			if !ok {
				return Value{}, payloadErr(kind, kv[0])
			}
			ev, err := fromWire(kv[1], depth+1)
			if err != nil {
				return Value{}, err
			}
			out.entries = append(out.entries, Entry{Key: key, Value: ev})
		}
	case KindVariant:
		inner, err := fromWire(payload, depth+1)
		if err != nil {
			return Value{}, err
		}
		out.inner = &inner
	}
	return out, nil
}

func payloadErr(kind Kind, got any) error {
	return fmt.Errorf("failed to decode %s payload: unexpected %T", kind, got)
}

func maxForKind(k Kind) uint64 {
	switch k {
	case KindUint8:
		return 1<<8 - 1
	case KindUint16:
		return 1<<16 - 1
	case KindUint32:
		return 1<<32 - 1
	default:
		return 1<<64 - 1
	}
}

// Compile-time interface satisfaction checks.
var (
	_ cbor.Marshaler   = Value{}
	_ cbor.Unmarshaler = (*Value)(nil)
)
