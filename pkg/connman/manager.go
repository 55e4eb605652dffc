package connman

import (
	"context"
	"fmt"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// ManagerState is the global connection state.
type ManagerState uint8

const (
	ManagerStateOffline ManagerState = iota
	ManagerStateIdle
	ManagerStateReady
	ManagerStateOnline
)

var managerStateNames = [...]string{"offline", "idle", "ready", "online"}

// String returns the wire spelling.
func (s ManagerState) String() string { return enumName(managerStateNames[:], s) }

// ParseManagerState parses the wire spelling of a manager state.
func ParseManagerState(s string) (ManagerState, error) {
	return parseEnum[ManagerState]("manager state", managerStateNames[:], s)
}

// ManagerProperty names a manager property.
type ManagerProperty uint8

const (
	ManagerPropertyState ManagerProperty = iota
	ManagerPropertyOfflineMode
	ManagerPropertySessionMode
)

var managerPropertyNames = [...]string{"State", "OfflineMode", "SessionMode"}

// String returns the exact wire name.
func (k ManagerProperty) String() string { return enumName(managerPropertyNames[:], k) }

// ParseManagerProperty maps a wire name to its ManagerProperty.
func ParseManagerProperty(s string) (ManagerProperty, error) {
	return parseEnum[ManagerProperty]("manager property", managerPropertyNames[:], s)
}

// ManagerProperties is the decoded manager snapshot.
type ManagerProperties struct {
	State       ManagerState `json:"state"`
	OfflineMode bool         `json:"offline_mode"`
	SessionMode *bool        `json:"session_mode,omitempty"`
}

var extractManagerState = property.Enum(ParseManagerState)

// ManagerPropertiesFrom assembles ManagerProperties from a snapshot.
// Fields are read in the order State, OfflineMode, SessionMode and the
// first failure is returned.
func ManagerPropertiesFrom(m variant.Map) (ManagerProperties, error) {
	var p ManagerProperties
	var err error

	if p.State, err = extractManagerState(m, ManagerPropertyState.String()); err != nil {
		return ManagerProperties{}, err
	}
	if p.OfflineMode, err = property.Bool(m, ManagerPropertyOfflineMode.String()); err != nil {
		return ManagerProperties{}, err
	}
	if p.SessionMode, err = property.Optional(property.Bool)(m, ManagerPropertySessionMode.String()); err != nil {
		return ManagerProperties{}, err
	}
	return p, nil
}

// ToMap encodes p as a snapshot that ManagerPropertiesFrom reads back.
func (p ManagerProperties) ToMap() variant.Map {
	m := variant.Map{
		ManagerPropertyState.String():       variant.Wrap(variant.String(p.State.String())),
		ManagerPropertyOfflineMode.String(): variant.Wrap(variant.Bool(p.OfflineMode)),
	}
	if p.SessionMode != nil {
		m[ManagerPropertySessionMode.String()] = variant.Wrap(variant.Bool(*p.SessionMode))
	}
	return m
}

// DecodeManagerProperty types the value of a single changed manager
// property. The result is a ManagerState for State and a bool otherwise.
func DecodeManagerProperty(name string, v variant.Value) (ManagerProperty, any, error) {
	kind, err := ParseManagerProperty(name)
	if err != nil {
		return 0, nil, err
	}
	var val any
	switch kind {
	case ManagerPropertyState:
		val, err = decodeOne(extractManagerState, name, v)
	default:
		val, err = decodeOne(property.Bool, name, v)
	}
	return kind, val, err
}

// decodeOne runs a strict extractor against a single value.
func decodeOne[T any](ex property.Extractor[T], name string, v variant.Value) (any, error) {
	out, err := ex(variant.Map{name: v}, name)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Manager wraps the singleton manager object.
type Manager struct {
	caller Caller
	stub   managerStub
}

// NewManager returns a Manager that issues calls through caller.
func NewManager(caller Caller) *Manager {
	return &Manager{
		caller: caller,
		stub:   managerStub{caller: caller, path: ManagerPath},
	}
}

// Properties fetches and assembles the manager snapshot.
func (m *Manager) Properties(ctx context.Context) (ManagerProperties, error) {
	props, err := m.stub.GetProperties(ctx)
	if err != nil {
		return ManagerProperties{}, err
	}
	return ManagerPropertiesFrom(props)
}

// State fetches the global connection state.
func (m *Manager) State(ctx context.Context) (ManagerState, error) {
	props, err := m.stub.GetProperties(ctx)
	if err != nil {
		return 0, err
	}
	return extractManagerState(props, ManagerPropertyState.String())
}

// OfflineMode reports whether offline mode is on.
func (m *Manager) OfflineMode(ctx context.Context) (bool, error) {
	props, err := m.stub.GetProperties(ctx)
	if err != nil {
		return false, err
	}
	return property.Bool(props, ManagerPropertyOfflineMode.String())
}

// SetOfflineMode turns offline mode on or off.
func (m *Manager) SetOfflineMode(ctx context.Context, on bool) error {
	return m.stub.SetProperty(ctx, ManagerPropertyOfflineMode.String(), variant.Bool(on))
}

// Technologies lists the technologies. An entry whose properties do not
// assemble fails the whole call.
func (m *Manager) Technologies(ctx context.Context) ([]*Technology, error) {
	objs, err := m.stub.GetTechnologies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Technology, 0, len(objs))
	for _, o := range objs {
		t, err := NewTechnology(m.caller, o.Path, o.Props)
		if err != nil {
			return nil, fmt.Errorf("technology %s: %w", o.Path, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Services lists the services in ConnMan's preference order.
func (m *Manager) Services(ctx context.Context) ([]*Service, error) {
	objs, err := m.stub.GetServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Service, 0, len(objs))
	for _, o := range objs {
		s, err := NewService(m.caller, o.Path, o.Props)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", o.Path, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Peers lists the P2P peers with their raw properties.
func (m *Manager) Peers(ctx context.Context) ([]Object, error) {
	return m.stub.GetPeers(ctx)
}

// TetheringClients lists the MAC addresses of tethered clients.
func (m *Manager) TetheringClients(ctx context.Context) ([]string, error) {
	return m.stub.GetTetheringClients(ctx)
}
