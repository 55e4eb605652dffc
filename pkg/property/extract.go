package property

import (
	"github.com/connman-go/connman/pkg/variant"
)

// Extractor pulls a value of type T named name out of a property map.
// It is the strict extraction mode: absence and type mismatch are both
// errors, and the first error aborts the caller's assembly.
type Extractor[T any] func(m variant.Map, name string) (T, error)

// Built-in extractors.
var (
	Bool   Extractor[bool]   = Scalar[bool]
	Uint8  Extractor[uint8]  = Scalar[uint8]
	Uint16 Extractor[uint16] = Scalar[uint16]
	Uint32 Extractor[uint32] = Scalar[uint32]

	// String goes through Parsed with the identity parse.
	String Extractor[string] = func(m variant.Map, name string) (string, error) {
		return Parsed(m, name, func(s string) (string, error) { return s, nil })
	}
)

// ListOf returns an extractor for an array whose elements all cast to T.
func ListOf[T ScalarType]() Extractor[[]T] {
	return List[T]
}

// Enum returns an extractor for a string field parsed by parse.
func Enum[T any](parse func(string) (T, error)) Extractor[T] {
	return func(m variant.Map, name string) (T, error) {
		return Parsed(m, name, parse)
	}
}

// Optional wraps ex so that an absent field yields (nil, nil). A present
// field that fails to cast is still an error; absence and mismatch are
// never conflated.
func Optional[T any](ex Extractor[T]) Extractor[*T] {
	return func(m variant.Map, name string) (*T, error) {
		v, err := ex(m, name)
		if err != nil {
			if IsNotPresent(err) {
				return nil, nil
			}
			return nil, err
		}
		return &v, nil
	}
}

// WithDefault wraps ex so that an absent field yields def. Cast errors
// propagate unchanged.
func WithDefault[T any](ex Extractor[T], def T) Extractor[T] {
	return func(m variant.Map, name string) (T, error) {
		v, err := ex(m, name)
		if err != nil {
			if IsNotPresent(err) {
				return def, nil
			}
			return v, err
		}
		return v, nil
	}
}
