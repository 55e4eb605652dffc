package transport

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/connman-go/connman/pkg/signal"
	"github.com/connman-go/connman/pkg/variant"
)

// ErrUnsupportedType is returned for D-Bus types the value model does not
// carry (signed integers, doubles, file descriptors, signatures).
var ErrUnsupportedType = errors.New("unsupported D-Bus type")

// FromDBus converts a value decoded by godbus into a variant.Value.
// Structs and arrays become Array; maps become Dict with keys sorted.
func FromDBus(v any) (variant.Value, error) {
	switch x := v.(type) {
	case bool:
		return variant.Bool(x), nil
	case byte:
		return variant.Uint8(x), nil
	case uint16:
		return variant.Uint16(x), nil
	case uint32:
		return variant.Uint32(x), nil
	case uint64:
		return variant.Uint64(x), nil
	case string:
		return variant.String(x), nil
	case dbus.ObjectPath:
		return variant.Path(variant.ObjectPath(x)), nil
	case dbus.Variant:
		inner, err := FromDBus(x.Value())
		if err != nil {
			return variant.Value{}, err
		}
		return variant.Wrap(inner), nil
	case []string:
		return variant.Strings(x...), nil
	case map[string]dbus.Variant:
		entries := make([]variant.Entry, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			val, err := FromDBus(x[k])
			if err != nil {
				return variant.Value{}, fmt.Errorf("%s: %w", k, err)
			}
			entries = append(entries, variant.Entry{Key: k, Value: val})
		}
		return variant.Dict(entries...), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]variant.Value, rv.Len())
		for i := range elems {
			elem, err := FromDBus(rv.Index(i).Interface())
			if err != nil {
				return variant.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = elem
		}
		return variant.Array(elems...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		entries := make([]variant.Entry, 0, len(keys))
		for _, k := range keys {
			val, err := FromDBus(rv.MapIndex(k).Interface())
			if err != nil {
				return variant.Value{}, fmt.Errorf("%s: %w", k.String(), err)
			}
			entries = append(entries, variant.Entry{Key: k.String(), Value: val})
		}
		return variant.Dict(entries...), nil
	}
	return variant.Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// FromDBusBody converts a message body.
func FromDBusBody(body []any) ([]variant.Value, error) {
	out := make([]variant.Value, len(body))
	for i, v := range body {
		val, err := FromDBus(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// ToDBus converts a variant.Value into the Go type godbus encodes with
// the matching signature. Arrays of strings or object paths become typed
// slices and the empty array becomes an empty []string; other arrays
// become []any. A dict whose values are all variants becomes
// map[string]dbus.Variant. Nested variant wrappers collapse into one.
func ToDBus(v variant.Value) any {
	switch v.Kind() {
	case variant.KindBool:
		b, _ := v.AsBool()
		return b
	case variant.KindUint8:
		u, _ := v.AsUint8()
		return u
	case variant.KindUint16:
		u, _ := v.AsUint16()
		return u
	case variant.KindUint32:
		u, _ := v.AsUint32()
		return u
	case variant.KindUint64:
		u, _ := v.AsUint64()
		return u
	case variant.KindString:
		s, _ := v.AsString()
		return s
	case variant.KindObjectPath:
		p, _ := v.AsObjectPath()
		return dbus.ObjectPath(p)
	case variant.KindVariant:
		return dbus.MakeVariant(ToDBus(v.Unwrap()))
	case variant.KindArray:
		elems, _ := v.Elements()
		return arrayToDBus(elems)
	case variant.KindDict:
		entries, _ := v.Entries()
		return dictToDBus(entries)
	default:
		return nil
	}
}

func arrayToDBus(elems []variant.Value) any {
	switch {
	case allKind(elems, variant.KindString):
		out := make([]string, len(elems))
		for i, e := range elems {
			out[i], _ = e.AsString()
		}
		return out
	case allKind(elems, variant.KindObjectPath):
		out := make([]dbus.ObjectPath, len(elems))
		for i, e := range elems {
			p, _ := e.AsObjectPath()
			out[i] = dbus.ObjectPath(p)
		}
		return out
	}
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = ToDBus(e)
	}
	return out
}

func dictToDBus(entries []variant.Entry) any {
	variants := true
	for _, e := range entries {
		if e.Value.Kind() != variant.KindVariant {
			variants = false
			break
		}
	}
	if variants {
		out := make(map[string]dbus.Variant, len(entries))
		for _, e := range entries {
			out[e.Key] = dbus.MakeVariant(ToDBus(e.Value.Unwrap()))
		}
		return out
	}
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[e.Key] = ToDBus(e.Value)
	}
	return out
}

// allKind reports whether every element has kind k. The empty slice
// counts as strings only.
func allKind(elems []variant.Value, k variant.Kind) bool {
	if len(elems) == 0 {
		return k == variant.KindString
	}
	for _, e := range elems {
		if e.Kind() != k {
			return false
		}
	}
	return true
}

// MessageFromSignal converts a received godbus signal.
func MessageFromSignal(s *dbus.Signal) (signal.Message, error) {
	i := strings.LastIndexByte(s.Name, '.')
	if i < 0 {
		return signal.Message{}, fmt.Errorf("signal name %q has no interface", s.Name)
	}
	args, err := FromDBusBody(s.Body)
	if err != nil {
		return signal.Message{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	return signal.Message{
		Sender:    s.Sender,
		Path:      variant.ObjectPath(s.Path),
		Interface: s.Name[:i],
		Member:    s.Name[i+1:],
		Args:      args,
	}, nil
}
