package variant

import (
	"fmt"
	"strings"
)

// Kind identifies the wire type carried by a Value.
type Kind uint8

const (
	// KindInvalid is the zero Value's kind.
	KindInvalid Kind = 0
	KindBool    Kind = 1
	KindUint8   Kind = 2
	KindUint16  Kind = 3
	KindUint32  Kind = 4
	KindUint64  Kind = 5
	KindString  Kind = 6

	// KindObjectPath is a D-Bus object path. It reads as a string too.
	KindObjectPath Kind = 7

	// KindArray is an ordered sequence. D-Bus structs are carried as arrays.
	KindArray Kind = 8

	// KindDict is an ordered string-keyed dictionary.
	KindDict Kind = 9

	// KindVariant wraps exactly one inner value.
	KindVariant Kind = 10
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "INVALID"
	case KindBool:
		return "BOOL"
	case KindUint8:
		return "UINT8"
	case KindUint16:
		return "UINT16"
	case KindUint32:
		return "UINT32"
	case KindUint64:
		return "UINT64"
	case KindString:
		return "STRING"
	case KindObjectPath:
		return "OBJECT_PATH"
	case KindArray:
		return "ARRAY"
	case KindDict:
		return "DICT"
	case KindVariant:
		return "VARIANT"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether k is one of the defined kinds (other than Invalid).
func (k Kind) IsValid() bool {
	return k >= KindBool && k <= KindVariant
}

// ObjectPath is a D-Bus object path such as "/net/connman/technology/wifi".
type ObjectPath string

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   string
	Value Value
}

// Value is an immutable dynamically typed wire value.
//
// The zero Value is invalid. Values are built with the constructors in
// this file and never modified afterwards; slices passed to Array and
// Dict are copied.
type Value struct {
	kind    Kind
	b       bool
	u       uint64
	s       string
	elems   []Value
	entries []Entry
	inner   *Value
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Uint8 returns a byte value.
func Uint8(u uint8) Value { return Value{kind: KindUint8, u: uint64(u)} }

// Uint16 returns an unsigned 16-bit value.
func Uint16(u uint16) Value { return Value{kind: KindUint16, u: uint64(u)} }

// Uint32 returns an unsigned 32-bit value.
func Uint32(u uint32) Value { return Value{kind: KindUint32, u: uint64(u)} }

// Uint64 returns an unsigned 64-bit value.
func Uint64(u uint64) Value { return Value{kind: KindUint64, u: u} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Path returns an object path value.
func Path(p ObjectPath) Value { return Value{kind: KindObjectPath, s: string(p)} }

// Array returns an array holding a copy of elems.
func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, elems: cp}
}

// Strings returns an array of string values.
func Strings(ss ...string) Value {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = String(s)
	}
	return Value{kind: KindArray, elems: elems}
}

// Dict returns a dictionary holding a copy of entries, in the given order.
func Dict(entries ...Entry) Value {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Value{kind: KindDict, entries: cp}
}

// Wrap returns a variant wrapping v.
func Wrap(v Value) Value {
	inner := v
	return Value{kind: KindVariant, inner: &inner}
}

// Kind returns the value's own kind, without unwrapping variants.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool { return v.kind.IsValid() }

// Unwrap strips any number of variant wrappers.
func (v Value) Unwrap() Value {
	for v.kind == KindVariant && v.inner != nil {
		v = *v.inner
	}
	return v
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	v = v.Unwrap()
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsUint8 returns the byte held by v.
func (v Value) AsUint8() (uint8, bool) {
	v = v.Unwrap()
	if v.kind != KindUint8 {
		return 0, false
	}
	return uint8(v.u), true
}

// AsUint16 returns the uint16 held by v.
func (v Value) AsUint16() (uint16, bool) {
	v = v.Unwrap()
	if v.kind != KindUint16 {
		return 0, false
	}
	return uint16(v.u), true
}

// AsUint32 returns the uint32 held by v.
func (v Value) AsUint32() (uint32, bool) {
	v = v.Unwrap()
	if v.kind != KindUint32 {
		return 0, false
	}
	return uint32(v.u), true
}

// AsUint64 returns the uint64 held by v.
func (v Value) AsUint64() (uint64, bool) {
	v = v.Unwrap()
	if v.kind != KindUint64 {
		return 0, false
	}
	return v.u, true
}

// AsString returns the string held by v. Object paths read as strings.
func (v Value) AsString() (string, bool) {
	v = v.Unwrap()
	if v.kind != KindString && v.kind != KindObjectPath {
		return "", false
	}
	return v.s, true
}

// AsObjectPath returns the object path held by v.
func (v Value) AsObjectPath() (ObjectPath, bool) {
	v = v.Unwrap()
	if v.kind != KindObjectPath {
		return "", false
	}
	return ObjectPath(v.s), true
}

// Elements returns the elements of an array. For a dict it returns the
// entries flattened into alternating key and value elements, keys as
// String values. Any other kind reports false.
//
// The returned slice must not be modified.
func (v Value) Elements() ([]Value, bool) {
	v = v.Unwrap()
	switch v.kind {
	case KindArray:
		return v.elems, true
	case KindDict:
		flat := make([]Value, 0, 2*len(v.entries))
		for _, e := range v.entries {
			flat = append(flat, String(e.Key), e.Value)
		}
		return flat, true
	default:
		return nil, false
	}
}

// Entries returns the entries of a dict. The returned slice must not be
// modified.
func (v Value) Entries() ([]Entry, bool) {
	v = v.Unwrap()
	if v.kind != KindDict {
		return nil, false
	}
	return v.entries, true
}

// Len returns the number of elements of an array or entries of a dict,
// and zero for every other kind.
func (v Value) Len() int {
	v = v.Unwrap()
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindDict:
		return len(v.entries)
	default:
		return 0
	}
}

// Equal reports whether v and o carry the same kind and contents.
// Variant wrappers are significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.b == o.b
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindString, KindObjectPath:
		return v.s == o.s
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.entries) != len(o.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != o.entries[i].Key || !v.entries[i].Value.Equal(o.entries[i].Value) {
				return false
			}
		}
		return true
	case KindVariant:
		return v.inner.Equal(*o.inner)
	default:
		return false
	}
}

// GoString renders v in a compact debugging form, e.g. v(s"wifi").
func (v Value) GoString() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

// String implements fmt.Stringer with the same rendering as GoString.
func (v Value) String() string {
	return v.GoString()
}

func (v Value) format(b *strings.Builder) {
	switch v.kind {
	case KindBool:
		fmt.Fprintf(b, "b%t", v.b)
	case KindUint8:
		fmt.Fprintf(b, "y%d", v.u)
	case KindUint16:
		fmt.Fprintf(b, "q%d", v.u)
	case KindUint32:
		fmt.Fprintf(b, "u%d", v.u)
	case KindUint64:
		fmt.Fprintf(b, "t%d", v.u)
	case KindString:
		fmt.Fprintf(b, "s%q", v.s)
	case KindObjectPath:
		fmt.Fprintf(b, "o%q", v.s)
	case KindArray:
		b.WriteString("[")
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.format(b)
		}
		b.WriteString("]")
	case KindDict:
		b.WriteString("{")
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", e.Key)
			e.Value.format(b)
		}
		b.WriteString("}")
	case KindVariant:
		b.WriteString("v(")
		v.inner.format(b)
		b.WriteString(")")
	default:
		b.WriteString("<invalid>")
	}
}
