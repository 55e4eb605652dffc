package property

import (
	"github.com/connman-go/connman/pkg/variant"
)

// ScalarType is the set of Go types a value can be cast to directly.
type ScalarType interface {
	bool | uint8 | uint16 | uint32 | uint64 | string | variant.ObjectPath
}

// As casts a single value to T by its kind. Variant wrappers are seen
// through; numeric kinds never widen.
func As[T ScalarType](v variant.Value) (T, bool) {
	var out T
	var ok bool
	switch p := any(&out).(type) {
	case *bool:
		*p, ok = v.AsBool()
	case *uint8:
		*p, ok = v.AsUint8()
	case *uint16:
		*p, ok = v.AsUint16()
	case *uint32:
		*p, ok = v.AsUint32()
	case *uint64:
		*p, ok = v.AsUint64()
	case *string:
		*p, ok = v.AsString()
	case *variant.ObjectPath:
		*p, ok = v.AsObjectPath()
	}
	return out, ok
}

// AsList casts an array value to a slice of T. Every element must cast.
func AsList[T ScalarType](v variant.Value) ([]T, bool) {
	if v.Unwrap().Kind() != variant.KindArray {
		return nil, false
	}
	elems, _ := v.Elements()
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		x, ok := As[T](e)
		if !ok {
			return nil, false
		}
		out = append(out, x)
	}
	return out, true
}

// Lookup returns the raw value of the named field.
func Lookup(m variant.Map, name string) (variant.Value, error) {
	v, ok := m[name]
	if !ok {
		return variant.Value{}, NotPresent(name)
	}
	return v, nil
}

// Scalar fetches the named field and casts it to T.
func Scalar[T ScalarType](m variant.Map, name string) (T, error) {
	v, err := Lookup(m, name)
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := As[T](v)
	if !ok {
		return out, Cast(name)
	}
	return out, nil
}

// List fetches the named field as an array of T.
func List[T ScalarType](m variant.Map, name string) ([]T, error) {
	v, err := Lookup(m, name)
	if err != nil {
		return nil, err
	}
	out, ok := AsList[T](v)
	if !ok {
		return nil, Cast(name)
	}
	return out, nil
}

// Parsed fetches the named field, requires a string and runs parse on it.
// A parse failure is reported as Cast for the field; the parse error
// itself and the string value are dropped.
func Parsed[T any](m variant.Map, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	v, err := Lookup(m, name)
	if err != nil {
		return zero, err
	}
	s, ok := v.AsString()
	if !ok {
		return zero, Cast(name)
	}
	out, err := parse(s)
	if err != nil {
		return zero, Cast(name)
	}
	return out, nil
}

// Sequence fetches the named field as an array or dict and returns an
// iterator over its elements. A dict yields alternating key and value
// elements.
func Sequence(m variant.Map, name string) (*Iter, error) {
	v, err := Lookup(m, name)
	if err != nil {
		return nil, err
	}
	it, ok := NewIter(v)
	if !ok {
		return nil, Cast(name)
	}
	return it, nil
}
