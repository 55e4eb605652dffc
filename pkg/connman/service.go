package connman

import (
	"context"
	"encoding/hex"
	"errors"
	"path"
	"strings"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// ServiceState is the connection state of a service.
type ServiceState uint8

const (
	ServiceStateIdle ServiceState = iota
	ServiceStateFailure
	ServiceStateAssociation
	ServiceStateConfiguration
	ServiceStateReady
	ServiceStateDisconnect
	ServiceStateOnline
)

var serviceStateNames = [...]string{
	"idle", "failure", "association", "configuration", "ready", "disconnect", "online",
}

// String returns the wire spelling.
func (s ServiceState) String() string { return enumName(serviceStateNames[:], s) }

// Connected reports whether the state carries traffic.
func (s ServiceState) Connected() bool {
	return s == ServiceStateReady || s == ServiceStateOnline
}

// ParseServiceState parses the wire spelling of a service state.
func ParseServiceState(s string) (ServiceState, error) {
	return parseEnum[ServiceState]("service state", serviceStateNames[:], s)
}

// ServiceError is the failure reason of a service in the failure state.
type ServiceError uint8

const (
	ServiceErrorOutOfRange ServiceError = iota
	ServiceErrorPinMissing
	ServiceErrorDHCPFailed
	ServiceErrorConnectFailed
	ServiceErrorLoginFailed
	ServiceErrorAuthFailed
	ServiceErrorInvalidKey
	ServiceErrorBlocked
)

var serviceErrorNames = [...]string{
	"out-of-range", "pin-missing", "dhcp-failed", "connect-failed",
	"login-failed", "auth-failed", "invalid-key", "blocked",
}

// String returns the wire spelling.
func (e ServiceError) String() string { return enumName(serviceErrorNames[:], e) }

// ParseServiceError parses the wire spelling of a service error.
func ParseServiceError(s string) (ServiceError, error) {
	return parseEnum[ServiceError]("service error", serviceErrorNames[:], s)
}

// ServiceType is the technology a service belongs to. Like
// TechnologyType the set is open.
type ServiceType string

const (
	ServiceTypeEthernet ServiceType = "ethernet"
	ServiceTypeWifi     ServiceType = "wifi"
	ServiceTypeVPN      ServiceType = "vpn"
)

// ParseServiceType never fails.
func ParseServiceType(s string) (ServiceType, error) {
	return ServiceType(s), nil
}

// ServiceProperty names a service property.
type ServiceProperty uint8

const (
	ServicePropertyState ServiceProperty = iota
	ServicePropertyError
	ServicePropertyName
	ServicePropertyType
	ServicePropertySecurity
	ServicePropertyStrength
	ServicePropertyFavorite
	ServicePropertyImmutable
	ServicePropertyAutoConnect
	ServicePropertyRoaming
	ServicePropertyNameservers
	ServicePropertyNameserversConfiguration
	ServicePropertyTimeservers
	ServicePropertyTimeserversConfiguration
	ServicePropertyDomains
	ServicePropertyDomainsConfiguration
	ServicePropertyIPv4
	ServicePropertyIPv4Configuration
	ServicePropertyIPv6
	ServicePropertyIPv6Configuration
	ServicePropertyProxy
	ServicePropertyProxyConfiguration
	ServicePropertyProvider
	ServicePropertyEthernet
	ServicePropertyMDNS
	ServicePropertyMDNSConfiguration
)

var servicePropertyNames = [...]string{
	"State",
	"Error",
	"Name",
	"Type",
	"Security",
	"Strength",
	"Favorite",
	"Immutable",
	"AutoConnect",
	"Roaming",
	"Nameservers",
	"Nameservers.Configuration",
	"Timeservers",
	"Timeservers.Configuration",
	"Domains",
	"Domains.Configuration",
	"IPv4",
	"IPv4.Configuration",
	"IPv6",
	"IPv6.Configuration",
	"Proxy",
	"Proxy.Configuration",
	"Provider",
	"Ethernet",
	"mDNS",
	"mDNS.Configuration",
}

// String returns the exact wire name.
func (k ServiceProperty) String() string { return enumName(servicePropertyNames[:], k) }

// ParseServiceProperty maps a wire name to its ServiceProperty.
func ParseServiceProperty(s string) (ServiceProperty, error) {
	return parseEnum[ServiceProperty]("service property", servicePropertyNames[:], s)
}

// ServiceProperties is the decoded service snapshot. Nil pointers and
// nil optional lists mean the field was absent.
type ServiceProperties struct {
	State       ServiceState  `json:"state"`
	Error       *ServiceError `json:"error,omitempty"`
	Name        *string       `json:"name,omitempty"`
	Type        *ServiceType  `json:"type,omitempty"`
	Security    []string      `json:"security,omitempty"`
	Strength    *uint8        `json:"strength,omitempty"`
	Favorite    bool          `json:"favorite"`
	Immutable   bool          `json:"immutable"`
	AutoConnect bool          `json:"autoconnect"`
	Roaming     *bool         `json:"roaming,omitempty"`

	Nameservers              []string `json:"nameservers"`
	NameserversConfiguration []string `json:"nameservers_configuration"`
	Timeservers              []string `json:"timeservers"`
	TimeserversConfiguration []string `json:"timeservers_configuration"`
	Domains                  []string `json:"domains"`
	DomainsConfiguration     []string `json:"domains_configuration"`

	IPv4               IPv4     `json:"ipv4"`
	IPv4Configuration  IPv4     `json:"ipv4_configuration"`
	IPv6               IPv6     `json:"ipv6"`
	IPv6Configuration  IPv6     `json:"ipv6_configuration"`
	Proxy              Proxy    `json:"proxy"`
	ProxyConfiguration Proxy    `json:"proxy_configuration"`
	Provider           Provider `json:"provider"`
	Ethernet           Ethernet `json:"ethernet"`

	MDNS              *bool `json:"mdns,omitempty"`
	MDNSConfiguration *bool `json:"mdns_configuration,omitempty"`
}

var (
	extractServiceState = property.Enum(ParseServiceState)
	extractServiceError = property.Optional(property.Enum(ParseServiceError))
	extractServiceType  = property.Optional(property.Enum(ParseServiceType))
	extractOptStrings   = property.Optional(property.ListOf[string]())
	extractOptUint8     = property.Optional(property.Uint8)
	extractOptBool      = property.Optional(property.Bool)
	extractStrings      = property.ListOf[string]()
)

// ServicePropertiesFrom assembles ServiceProperties from a snapshot.
//
// Fields are read in declaration order and the first failure is
// returned. State, Favorite, Immutable, AutoConnect and the six
// nameserver, timeserver and domain lists are required. Composite
// blocks never fail the assembly; a missing block reads as all-nil.
func ServicePropertiesFrom(m variant.Map) (ServiceProperties, error) {
	var p ServiceProperties
	var err error
	name := func(k ServiceProperty) string { return k.String() }

	if p.State, err = extractServiceState(m, name(ServicePropertyState)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Error, err = extractServiceError(m, name(ServicePropertyError)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Name, err = extractOptString(m, name(ServicePropertyName)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Type, err = extractServiceType(m, name(ServicePropertyType)); err != nil {
		return ServiceProperties{}, err
	}
	security, err := extractOptStrings(m, name(ServicePropertySecurity))
	if err != nil {
		return ServiceProperties{}, err
	}
	if security != nil {
		p.Security = *security
	}
	if p.Strength, err = extractOptUint8(m, name(ServicePropertyStrength)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Favorite, err = property.Bool(m, name(ServicePropertyFavorite)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Immutable, err = property.Bool(m, name(ServicePropertyImmutable)); err != nil {
		return ServiceProperties{}, err
	}
	if p.AutoConnect, err = property.Bool(m, name(ServicePropertyAutoConnect)); err != nil {
		return ServiceProperties{}, err
	}
	if p.Roaming, err = extractOptBool(m, name(ServicePropertyRoaming)); err != nil {
		return ServiceProperties{}, err
	}

	lists := []struct {
		kind ServiceProperty
		dst  *[]string
	}{
		{ServicePropertyNameservers, &p.Nameservers},
		{ServicePropertyNameserversConfiguration, &p.NameserversConfiguration},
		{ServicePropertyTimeservers, &p.Timeservers},
		{ServicePropertyTimeserversConfiguration, &p.TimeserversConfiguration},
		{ServicePropertyDomains, &p.Domains},
		{ServicePropertyDomainsConfiguration, &p.DomainsConfiguration},
	}
	for _, l := range lists {
		if *l.dst, err = extractStrings(m, name(l.kind)); err != nil {
			return ServiceProperties{}, err
		}
	}

	p.IPv4 = compositeOrZero(m, name(ServicePropertyIPv4), DecodeIPv4)
	p.IPv4Configuration = compositeOrZero(m, name(ServicePropertyIPv4Configuration), DecodeIPv4)
	p.IPv6 = compositeOrZero(m, name(ServicePropertyIPv6), DecodeIPv6)
	p.IPv6Configuration = compositeOrZero(m, name(ServicePropertyIPv6Configuration), DecodeIPv6)
	p.Proxy = compositeOrZero(m, name(ServicePropertyProxy), DecodeProxy)
	p.ProxyConfiguration = compositeOrZero(m, name(ServicePropertyProxyConfiguration), DecodeProxy)
	p.Provider = compositeOrZero(m, name(ServicePropertyProvider), DecodeProvider)
	p.Ethernet = compositeOrZero(m, name(ServicePropertyEthernet), DecodeEthernet)

	if p.MDNS, err = extractOptBool(m, name(ServicePropertyMDNS)); err != nil {
		return ServiceProperties{}, err
	}
	if p.MDNSConfiguration, err = extractOptBool(m, name(ServicePropertyMDNSConfiguration)); err != nil {
		return ServiceProperties{}, err
	}
	return p, nil
}

// ToMap encodes p as a snapshot that ServicePropertiesFrom reads back.
func (p ServiceProperties) ToMap() variant.Map {
	m := variant.Map{}
	put := func(k ServiceProperty, v variant.Value) { m[k.String()] = variant.Wrap(v) }

	put(ServicePropertyState, variant.String(p.State.String()))
	if p.Error != nil {
		put(ServicePropertyError, variant.String(p.Error.String()))
	}
	putString(m, ServicePropertyName.String(), p.Name)
	if p.Type != nil {
		put(ServicePropertyType, variant.String(string(*p.Type)))
	}
	if p.Security != nil {
		put(ServicePropertySecurity, variant.Strings(p.Security...))
	}
	if p.Strength != nil {
		put(ServicePropertyStrength, variant.Uint8(*p.Strength))
	}
	put(ServicePropertyFavorite, variant.Bool(p.Favorite))
	put(ServicePropertyImmutable, variant.Bool(p.Immutable))
	put(ServicePropertyAutoConnect, variant.Bool(p.AutoConnect))
	if p.Roaming != nil {
		put(ServicePropertyRoaming, variant.Bool(*p.Roaming))
	}

	put(ServicePropertyNameservers, variant.Strings(p.Nameservers...))
	put(ServicePropertyNameserversConfiguration, variant.Strings(p.NameserversConfiguration...))
	put(ServicePropertyTimeservers, variant.Strings(p.Timeservers...))
	put(ServicePropertyTimeserversConfiguration, variant.Strings(p.TimeserversConfiguration...))
	put(ServicePropertyDomains, variant.Strings(p.Domains...))
	put(ServicePropertyDomainsConfiguration, variant.Strings(p.DomainsConfiguration...))

	put(ServicePropertyIPv4, p.IPv4.Value())
	put(ServicePropertyIPv4Configuration, p.IPv4Configuration.Value())
	put(ServicePropertyIPv6, p.IPv6.Value())
	put(ServicePropertyIPv6Configuration, p.IPv6Configuration.Value())
	put(ServicePropertyProxy, p.Proxy.Value())
	put(ServicePropertyProxyConfiguration, p.ProxyConfiguration.Value())
	put(ServicePropertyProvider, p.Provider.Value())
	put(ServicePropertyEthernet, p.Ethernet.Value())

	if p.MDNS != nil {
		put(ServicePropertyMDNS, variant.Bool(*p.MDNS))
	}
	if p.MDNSConfiguration != nil {
		put(ServicePropertyMDNSConfiguration, variant.Bool(*p.MDNSConfiguration))
	}
	return m
}

// DecodeServiceProperty types the value of a single changed service
// property. Composite properties decode to IPv4, IPv6, Proxy, Provider
// or Ethernet; a changed composite that is not a sequence is an error.
func DecodeServiceProperty(name string, v variant.Value) (ServiceProperty, any, error) {
	kind, err := ParseServiceProperty(name)
	if err != nil {
		return 0, nil, err
	}
	one := variant.Map{name: v}
	var val any
	switch kind {
	case ServicePropertyState:
		val, err = decodeOne(extractServiceState, name, v)
	case ServicePropertyError:
		val, err = decodeOne(property.Enum(ParseServiceError), name, v)
	case ServicePropertyName:
		val, err = decodeOne(property.String, name, v)
	case ServicePropertyType:
		val, err = decodeOne(property.Enum(ParseServiceType), name, v)
	case ServicePropertyStrength:
		val, err = decodeOne(property.Uint8, name, v)
	case ServicePropertyFavorite, ServicePropertyImmutable, ServicePropertyAutoConnect,
		ServicePropertyRoaming, ServicePropertyMDNS, ServicePropertyMDNSConfiguration:
		val, err = decodeOne(property.Bool, name, v)
	case ServicePropertySecurity,
		ServicePropertyNameservers, ServicePropertyNameserversConfiguration,
		ServicePropertyTimeservers, ServicePropertyTimeserversConfiguration,
		ServicePropertyDomains, ServicePropertyDomainsConfiguration:
		val, err = decodeOne(extractStrings, name, v)
	case ServicePropertyIPv4, ServicePropertyIPv4Configuration:
		val, err = anyOf(IPv4FromProperties(one, name))
	case ServicePropertyIPv6, ServicePropertyIPv6Configuration:
		val, err = anyOf(IPv6FromProperties(one, name))
	case ServicePropertyProxy, ServicePropertyProxyConfiguration:
		val, err = anyOf(ProxyFromProperties(one, name))
	case ServicePropertyProvider:
		val, err = anyOf(ProviderFromProperties(one, name))
	case ServicePropertyEthernet:
		val, err = anyOf(EthernetFromProperties(one, name))
	}
	return kind, val, err
}

func anyOf[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Service wraps one service object together with the snapshot it was
// created from.
type Service struct {
	Path  variant.ObjectPath
	Props ServiceProperties

	stub serviceStub
}

// NewService assembles a Service from its path and raw properties.
func NewService(caller Caller, path variant.ObjectPath, props variant.Map) (*Service, error) {
	p, err := ServicePropertiesFrom(props)
	if err != nil {
		return nil, err
	}
	return &Service{
		Path:  path,
		Props: p,
		stub:  serviceStub{caller: caller, path: path},
	}, nil
}

// Connect connects the service. ConnMan replies once the connection
// attempt has finished.
func (s *Service) Connect(ctx context.Context) error {
	return s.stub.Connect(ctx)
}

// Disconnect disconnects the service.
func (s *Service) Disconnect(ctx context.Context) error {
	return s.stub.Disconnect(ctx)
}

// Remove disconnects the service and forgets its configuration.
func (s *Service) Remove(ctx context.Context) error {
	return s.stub.Remove(ctx)
}

// ErrNoService is returned by MoveBefore and MoveAfter for a nil target.
var ErrNoService = errors.New("no target service")

// MoveBefore moves s ahead of other in the preference order.
func (s *Service) MoveBefore(ctx context.Context, other *Service) error {
	if other == nil {
		return ErrNoService
	}
	return s.stub.MoveBefore(ctx, other.Path)
}

// MoveAfter moves s behind other in the preference order.
func (s *Service) MoveAfter(ctx context.Context, other *Service) error {
	if other == nil {
		return ErrNoService
	}
	return s.stub.MoveAfter(ctx, other.Path)
}

// SetAutoConnect sets the AutoConnect flag.
func (s *Service) SetAutoConnect(ctx context.Context, on bool) error {
	return s.SetProperty(ctx, ServicePropertyAutoConnect, variant.Bool(on))
}

// SetProperty writes one property.
func (s *Service) SetProperty(ctx context.Context, kind ServiceProperty, v variant.Value) error {
	return s.stub.SetProperty(ctx, kind.String(), v)
}

// ClearProperty resets one property to its default.
func (s *Service) ClearProperty(ctx context.Context, kind ServiceProperty) error {
	return s.stub.ClearProperty(ctx, kind.String())
}

// ResetCounters resets the traffic counters.
func (s *Service) ResetCounters(ctx context.Context) error {
	return s.stub.ResetCounters(ctx)
}

// Refresh refetches the snapshot and replaces Props. Props is left
// unchanged on error.
func (s *Service) Refresh(ctx context.Context) error {
	props, err := s.stub.GetProperties(ctx)
	if err != nil {
		return err
	}
	p, err := ServicePropertiesFrom(props)
	if err != nil {
		return err
	}
	s.Props = p
	return nil
}

// SSID returns the network name encoded in a wifi service path such as
// /net/connman/service/wifi_001122334455_4d794e6574_managed_psk.
func (s *Service) SSID() (string, bool) {
	return SSIDFromPath(s.Path)
}

// SSIDFromPath extracts the hex SSID segment of a wifi service path.
func SSIDFromPath(p variant.ObjectPath) (string, bool) {
	parts := strings.Split(path.Base(string(p)), "_")
	if len(parts) < 3 || parts[0] != string(ServiceTypeWifi) {
		return "", false
	}
	raw, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", false
	}
	return string(raw), true
}
