package connman

import (
	"context"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// TechnologyType is the kind of a technology. The set is open: values
// ConnMan adds later are kept verbatim.
type TechnologyType string

const (
	TechnologyTypeEthernet  TechnologyType = "ethernet"
	TechnologyTypeWifi      TechnologyType = "wifi"
	TechnologyTypeP2P       TechnologyType = "p2p"
	TechnologyTypeBluetooth TechnologyType = "bluetooth"
	TechnologyTypeCellular  TechnologyType = "cellular"
	TechnologyTypeGadget    TechnologyType = "gadget"
)

// ParseTechnologyType never fails.
func ParseTechnologyType(s string) (TechnologyType, error) {
	return TechnologyType(s), nil
}

// TechnologyProperty names a technology property.
type TechnologyProperty uint8

const (
	TechnologyPropertyPowered TechnologyProperty = iota
	TechnologyPropertyConnected
	TechnologyPropertyName
	TechnologyPropertyType
	TechnologyPropertyTethering
	TechnologyPropertyTetheringIdentifier
	TechnologyPropertyTetheringPassphrase
)

var technologyPropertyNames = [...]string{
	"Powered",
	"Connected",
	"Name",
	"Type",
	"Tethering",
	"TetheringIdentifier",
	"TetheringPassphrase",
}

// String returns the exact wire name.
func (k TechnologyProperty) String() string { return enumName(technologyPropertyNames[:], k) }

// ParseTechnologyProperty maps a wire name to its TechnologyProperty.
func ParseTechnologyProperty(s string) (TechnologyProperty, error) {
	return parseEnum[TechnologyProperty]("technology property", technologyPropertyNames[:], s)
}

// TechnologyProperties is the decoded technology snapshot.
type TechnologyProperties struct {
	Powered             bool           `json:"powered"`
	Connected           bool           `json:"connected"`
	Name                string         `json:"name"`
	Type                TechnologyType `json:"type"`
	Tethering           bool           `json:"tethering"`
	TetheringIdentifier *string        `json:"tethering_identifier,omitempty"`
	// TetheringPassphrase is never included in JSON output.
	TetheringPassphrase *string `json:"-"`
}

var (
	extractTechnologyType = property.Enum(ParseTechnologyType)
	extractTethering      = property.WithDefault(property.Bool, false)
	extractOptString      = property.Optional(property.String)
)

// TechnologyPropertiesFrom assembles TechnologyProperties from a
// snapshot. Powered, Connected, Name and Type are required and read in
// that order. Tethering defaults to false when absent.
func TechnologyPropertiesFrom(m variant.Map) (TechnologyProperties, error) {
	var p TechnologyProperties
	var err error

	if p.Powered, err = property.Bool(m, TechnologyPropertyPowered.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.Connected, err = property.Bool(m, TechnologyPropertyConnected.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.Name, err = property.String(m, TechnologyPropertyName.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.Type, err = extractTechnologyType(m, TechnologyPropertyType.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.Tethering, err = extractTethering(m, TechnologyPropertyTethering.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.TetheringIdentifier, err = extractOptString(m, TechnologyPropertyTetheringIdentifier.String()); err != nil {
		return TechnologyProperties{}, err
	}
	if p.TetheringPassphrase, err = extractOptString(m, TechnologyPropertyTetheringPassphrase.String()); err != nil {
		return TechnologyProperties{}, err
	}
	return p, nil
}

// ToMap encodes p as a snapshot that TechnologyPropertiesFrom reads back.
func (p TechnologyProperties) ToMap() variant.Map {
	m := variant.Map{
		TechnologyPropertyPowered.String():   variant.Wrap(variant.Bool(p.Powered)),
		TechnologyPropertyConnected.String(): variant.Wrap(variant.Bool(p.Connected)),
		TechnologyPropertyName.String():      variant.Wrap(variant.String(p.Name)),
		TechnologyPropertyType.String():      variant.Wrap(variant.String(string(p.Type))),
		TechnologyPropertyTethering.String(): variant.Wrap(variant.Bool(p.Tethering)),
	}
	putString(m, TechnologyPropertyTetheringIdentifier.String(), p.TetheringIdentifier)
	putString(m, TechnologyPropertyTetheringPassphrase.String(), p.TetheringPassphrase)
	return m
}

// DecodeTechnologyProperty types the value of a single changed
// technology property.
func DecodeTechnologyProperty(name string, v variant.Value) (TechnologyProperty, any, error) {
	kind, err := ParseTechnologyProperty(name)
	if err != nil {
		return 0, nil, err
	}
	var val any
	switch kind {
	case TechnologyPropertyPowered, TechnologyPropertyConnected, TechnologyPropertyTethering:
		val, err = decodeOne(property.Bool, name, v)
	case TechnologyPropertyType:
		val, err = decodeOne(extractTechnologyType, name, v)
	default:
		val, err = decodeOne(property.String, name, v)
	}
	return kind, val, err
}

func putString(m variant.Map, name string, s *string) {
	if s != nil {
		m[name] = variant.Wrap(variant.String(*s))
	}
}

// Technology wraps one technology object together with the snapshot it
// was created from.
type Technology struct {
	Path  variant.ObjectPath
	Props TechnologyProperties

	stub technologyStub
}

// NewTechnology assembles a Technology from its path and raw properties.
func NewTechnology(caller Caller, path variant.ObjectPath, props variant.Map) (*Technology, error) {
	p, err := TechnologyPropertiesFrom(props)
	if err != nil {
		return nil, err
	}
	return &Technology{
		Path:  path,
		Props: p,
		stub:  technologyStub{caller: caller, path: path},
	}, nil
}

// Scan triggers a scan. The call returns when the scan completes.
func (t *Technology) Scan(ctx context.Context) error {
	return t.stub.Scan(ctx)
}

// SetPowered powers the technology on or off.
func (t *Technology) SetPowered(ctx context.Context, on bool) error {
	return t.stub.SetProperty(ctx, TechnologyPropertyPowered.String(), variant.Bool(on))
}

// SetTethering enables or disables tethering.
func (t *Technology) SetTethering(ctx context.Context, on bool) error {
	return t.stub.SetProperty(ctx, TechnologyPropertyTethering.String(), variant.Bool(on))
}

// Powered fetches the current Powered value.
func (t *Technology) Powered(ctx context.Context) (bool, error) {
	return fetch(ctx, t.stub.GetProperties, property.Bool, TechnologyPropertyPowered.String())
}

// Connected fetches the current Connected value.
func (t *Technology) Connected(ctx context.Context) (bool, error) {
	return fetch(ctx, t.stub.GetProperties, property.Bool, TechnologyPropertyConnected.String())
}

// Name fetches the current Name value.
func (t *Technology) Name(ctx context.Context) (string, error) {
	return fetch(ctx, t.stub.GetProperties, property.String, TechnologyPropertyName.String())
}

// Type fetches the current Type value.
func (t *Technology) Type(ctx context.Context) (TechnologyType, error) {
	return fetch(ctx, t.stub.GetProperties, extractTechnologyType, TechnologyPropertyType.String())
}

// Refresh refetches the snapshot and replaces Props. Props is left
// unchanged on error.
func (t *Technology) Refresh(ctx context.Context) error {
	props, err := t.stub.GetProperties(ctx)
	if err != nil {
		return err
	}
	p, err := TechnologyPropertiesFrom(props)
	if err != nil {
		return err
	}
	t.Props = p
	return nil
}

func fetch[T any](ctx context.Context, get func(context.Context) (variant.Map, error), ex property.Extractor[T], name string) (T, error) {
	props, err := get(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return ex(props, name)
}
