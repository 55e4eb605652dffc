package connman

import (
	"errors"
	"fmt"
)

// ErrUnknownValue is returned by the Parse functions for a string that is
// not a known wire spelling.
var ErrUnknownValue = errors.New("unknown value")

func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

func parseEnum[T ~uint8](what string, names []string, s string) (T, error) {
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownValue, what, s)
}

// Enums render as their wire spelling in JSON.

func (m IPv4Method) MarshalText() ([]byte, error)     { return []byte(m.String()), nil }
func (m IPv6Method) MarshalText() ([]byte, error)     { return []byte(m.String()), nil }
func (p IPv6Privacy) MarshalText() ([]byte, error)    { return []byte(p.String()), nil }
func (m ProxyMethod) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (m EthernetMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (s ManagerState) MarshalText() ([]byte, error)   { return []byte(s.String()), nil }
func (s ServiceState) MarshalText() ([]byte, error)   { return []byte(s.String()), nil }
func (e ServiceError) MarshalText() ([]byte, error)   { return []byte(e.String()), nil }
