package connman

import (
	"context"
	"errors"
	"fmt"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// Well-known names on the system bus.
const (
	// Destination is ConnMan's bus name.
	Destination = "net.connman"

	ManagerInterface    = "net.connman.Manager"
	TechnologyInterface = "net.connman.Technology"
	ServiceInterface    = "net.connman.Service"

	// ManagerPath is the object path of the singleton manager.
	ManagerPath variant.ObjectPath = "/"
)

// ErrUnexpectedReply is returned when a reply does not have the shape
// the method is documented to return.
var ErrUnexpectedReply = errors.New("unexpected reply")

// ErrNotObjectList is returned by ObjectsFromValue for a value that is not
// an a(oa{sv}) list.
var ErrNotObjectList = errors.New("not an object list")

// Caller issues one remote method call and returns the reply body.
//
// Implementations own timeouts and connection handling; errors they
// return are passed to callers unchanged (wrapped with %w).
type Caller interface {
	Call(ctx context.Context, path variant.ObjectPath, iface, member string, args ...variant.Value) ([]variant.Value, error)
}

// Object is one (path, properties) pair as returned by GetTechnologies,
// GetServices and GetPeers.
type Object struct {
	Path  variant.ObjectPath
	Props variant.Map
}

// replyMap decodes a reply whose single element is an a{sv}.
func replyMap(reply []variant.Value) (variant.Map, error) {
	if len(reply) != 1 {
		return nil, fmt.Errorf("%w: %d values, want 1", ErrUnexpectedReply, len(reply))
	}
	m, err := variant.MapFromValue(reply[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return m, nil
}

// replyObjects decodes a reply whose single element is an a(oa{sv}).
func replyObjects(reply []variant.Value) ([]Object, error) {
	if len(reply) != 1 {
		return nil, fmt.Errorf("%w: %d values, want 1", ErrUnexpectedReply, len(reply))
	}
	objs, err := ObjectsFromValue(reply[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}
	return objs, nil
}

// ObjectsFromValue decodes an a(oa{sv}) value. Each struct is carried as
// a two element array [path, dict].
func ObjectsFromValue(v variant.Value) ([]Object, error) {
	elems, ok := v.Elements()
	if !ok || v.Unwrap().Kind() != variant.KindArray {
		return nil, fmt.Errorf("%w: expected array of (oa{sv}), got %s", ErrNotObjectList, v.Unwrap().Kind())
	}

	objects := make([]Object, 0, len(elems))
	for i, e := range elems {
		fields, ok := e.Elements()
		if !ok || len(fields) != 2 {
			return nil, fmt.Errorf("%w: element %d is not a (oa{sv}) struct", ErrNotObjectList, i)
		}
		path, ok := fields[0].AsObjectPath()
		if !ok {
			return nil, fmt.Errorf("%w: element %d has no object path", ErrNotObjectList, i)
		}
		props, err := variant.MapFromValue(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrNotObjectList, i, err)
		}
		objects = append(objects, Object{Path: path, Props: props})
	}
	return objects, nil
}

// replyStrings decodes a reply whose single element is an as.
func replyStrings(reply []variant.Value) ([]string, error) {
	if len(reply) != 1 {
		return nil, fmt.Errorf("%w: %d values, want 1", ErrUnexpectedReply, len(reply))
	}
	out, ok := property.AsList[string](reply[0])
	if !ok {
		return nil, fmt.Errorf("%w: expected as, got %s", ErrUnexpectedReply, reply[0].Unwrap().Kind())
	}
	return out, nil
}
