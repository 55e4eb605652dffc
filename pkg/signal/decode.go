package signal

import (
	"errors"
	"fmt"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// ErrNoMatch is returned by Decode for a message whose interface or
// member is not a known ConnMan signal. It is not a failure.
var ErrNoMatch = errors.New("no matching signal")

// Argument shape errors wrapped by MalformedError.
var (
	ErrArity    = errors.New("wrong number of arguments")
	ErrArgument = errors.New("argument has unexpected type")
)

// MalformedError reports a known signal whose payload could not be
// decoded.
type MalformedError struct {
	Scope  Scope
	Member string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s.%s signal: %v", e.Scope, e.Member, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// OutcomeOf maps an error returned by Decode to its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeDecoded
	case errors.Is(err, ErrNoMatch):
		return OutcomeNotApplicable
	default:
		return OutcomeMalformed
	}
}

// Classify decodes msg and reports only the outcome.
func Classify(msg Message) Outcome {
	_, err := Decode(msg)
	return OutcomeOf(err)
}

// Decode classifies msg and decodes its arguments. It returns exactly one
// of a non-nil Event, ErrNoMatch, or a *MalformedError.
func Decode(msg Message) (Event, error) {
	scope := ScopeOf(msg.Interface)
	if scope == ScopeUnknown {
		return nil, fmt.Errorf("%w: interface %q", ErrNoMatch, msg.Interface)
	}
	kind := scope.Kind(msg.Member)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%w: %s member %q", ErrNoMatch, scope, msg.Member)
	}

	ev, err := decodeKind(kind, msg)
	if err != nil {
		return nil, &MalformedError{Scope: scope, Member: msg.Member, Err: err}
	}
	return ev, nil
}

func decodeKind(kind Kind, msg Message) (Event, error) {
	switch kind {
	case KindManagerPropertyChanged:
		name, v, err := propertyChangedArgs(msg.Args)
		if err != nil {
			return nil, err
		}
		prop, val, err := connman.DecodeManagerProperty(name, v)
		if err != nil {
			return nil, err
		}
		return ManagerPropertyChanged{Property: prop, Name: name, Value: val}, nil

	case KindTechnologyAdded:
		if err := arity(msg.Args, 2); err != nil {
			return nil, err
		}
		path, err := pathArg(msg.Args, 0)
		if err != nil {
			return nil, err
		}
		props, err := mapArg(msg.Args, 1)
		if err != nil {
			return nil, err
		}
		tp, err := connman.TechnologyPropertiesFrom(props)
		if err != nil {
			return nil, err
		}
		return TechnologyAdded{Path: path, Properties: tp}, nil

	case KindTechnologyRemoved:
		if err := arity(msg.Args, 1); err != nil {
			return nil, err
		}
		path, err := pathArg(msg.Args, 0)
		if err != nil {
			return nil, err
		}
		return TechnologyRemoved{Path: path}, nil

	case KindServicesChanged, KindPeersChanged:
		if err := arity(msg.Args, 2); err != nil {
			return nil, err
		}
		changed, err := connman.ObjectsFromValue(msg.Args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: argument 0: %w", ErrArgument, err)
		}
		removed, err := pathsArg(msg.Args, 1)
		if err != nil {
			return nil, err
		}
		if kind == KindPeersChanged {
			return PeersChanged{Changed: changed, Removed: removed}, nil
		}
		return ServicesChanged{Changed: changed, Removed: removed}, nil

	case KindTetheringClientsChanged:
		if err := arity(msg.Args, 2); err != nil {
			return nil, err
		}
		registered, err := stringsArg(msg.Args, 0)
		if err != nil {
			return nil, err
		}
		removed, err := stringsArg(msg.Args, 1)
		if err != nil {
			return nil, err
		}
		return TetheringClientsChanged{Registered: registered, Removed: removed}, nil

	case KindTechnologyPropertyChanged:
		name, v, err := propertyChangedArgs(msg.Args)
		if err != nil {
			return nil, err
		}
		prop, val, err := connman.DecodeTechnologyProperty(name, v)
		if err != nil {
			return nil, err
		}
		return TechnologyPropertyChanged{Path: msg.Path, Property: prop, Name: name, Value: val}, nil

	case KindServicePropertyChanged:
		name, v, err := propertyChangedArgs(msg.Args)
		if err != nil {
			return nil, err
		}
		prop, val, err := connman.DecodeServiceProperty(name, v)
		if err != nil {
			return nil, err
		}
		return ServicePropertyChanged{Path: msg.Path, Property: prop, Name: name, Value: val}, nil
	}
	return nil, fmt.Errorf("no decoder for %s", kind)
}

func arity(args []variant.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, len(args), n)
	}
	return nil
}

// propertyChangedArgs checks the (s, v) signature.
func propertyChangedArgs(args []variant.Value) (string, variant.Value, error) {
	if err := arity(args, 2); err != nil {
		return "", variant.Value{}, err
	}
	name, ok := args[0].AsString()
	if !ok {
		return "", variant.Value{}, argErr(0, "s", args[0])
	}
	return name, args[1], nil
}

func pathArg(args []variant.Value, i int) (variant.ObjectPath, error) {
	p, ok := args[i].AsObjectPath()
	if !ok {
		return "", argErr(i, "o", args[i])
	}
	return p, nil
}

func pathsArg(args []variant.Value, i int) ([]variant.ObjectPath, error) {
	out, ok := property.AsList[variant.ObjectPath](args[i])
	if !ok {
		return nil, argErr(i, "ao", args[i])
	}
	return out, nil
}

func stringsArg(args []variant.Value, i int) ([]string, error) {
	out, ok := property.AsList[string](args[i])
	if !ok {
		return nil, argErr(i, "as", args[i])
	}
	return out, nil
}

func mapArg(args []variant.Value, i int) (variant.Map, error) {
	m, err := variant.MapFromValue(args[i])
	if err != nil {
		return nil, fmt.Errorf("%w: argument %d: %v", ErrArgument, i, err)
	}
	return m, nil
}

func argErr(i int, want string, got variant.Value) error {
	return fmt.Errorf("%w: argument %d is %s, want %s", ErrArgument, i, got.Unwrap().Kind(), want)
}
