package variant

import (
	"fmt"
	"sort"
)

// Map is a property snapshot: exact, case-sensitive wire names such as
// "IPv4.Configuration" mapped to their values.
//
// A Map must not be modified after it has been handed to a decoder.
type Map map[string]Value

// MapFromValue builds a Map from a dict value (a{sv}). Variant wrappers
// around the dict are stripped; wrappers around entry values are kept,
// since accessors see through them anyway.
func MapFromValue(v Value) (Map, error) {
	entries, ok := v.Entries()
	if !ok {
		return nil, fmt.Errorf("expected %s, got %s", KindDict, v.Unwrap().Kind())
	}
	m := make(Map, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m, nil
}

// Keys returns the map's keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns m as a dict value with entries in sorted key order, each
// entry value wrapped in a variant the way a{sv} carries them.
func (m Map) Value() Value {
	entries := make([]Entry, 0, len(m))
	for _, k := range m.Keys() {
		v := m[k]
		if v.Kind() != KindVariant {
			v = Wrap(v)
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return Value{kind: KindDict, entries: entries}
}

// Equal reports whether both maps hold the same keys with equal values.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
