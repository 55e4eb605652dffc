package variant

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders v as plain JSON: scalars as JSON scalars, arrays as
// arrays, dicts as objects in wire order. Variant wrappers and the
// distinction between strings and object paths are not preserved; use
// the CBOR encoding when the wire types matter.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindUint8, KindUint16, KindUint32, KindUint64:
		fmt.Fprintf(buf, "%d", v.u)
	case KindString, KindObjectPath:
		s, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(s)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindDict:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindVariant:
		return v.inner.writeJSON(buf)
	default:
		buf.WriteString("null")
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ json.Marshaler = Value{}
