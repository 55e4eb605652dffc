package connman

import (
	"fmt"
	"strconv"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

// IPv4Method is the IPv4 configuration method.
type IPv4Method uint8

const (
	IPv4MethodDHCP IPv4Method = iota
	IPv4MethodManual
	IPv4MethodAuto
	IPv4MethodOff
	IPv4MethodFixed
)

var ipv4MethodNames = [...]string{"dhcp", "manual", "auto", "off", "fixed"}

// String returns the wire spelling.
func (m IPv4Method) String() string { return enumName(ipv4MethodNames[:], m) }

// ParseIPv4Method parses the wire spelling of an IPv4 method.
func ParseIPv4Method(s string) (IPv4Method, error) {
	return parseEnum[IPv4Method]("IPv4 method", ipv4MethodNames[:], s)
}

// IPv6Method is the IPv6 configuration method.
type IPv6Method uint8

const (
	IPv6MethodAuto IPv6Method = iota
	IPv6MethodManual
	IPv6Method6to4
	IPv6MethodOff
)

var ipv6MethodNames = [...]string{"auto", "manual", "6to4", "off"}

// String returns the wire spelling.
func (m IPv6Method) String() string { return enumName(ipv6MethodNames[:], m) }

// ParseIPv6Method parses the wire spelling of an IPv6 method.
func ParseIPv6Method(s string) (IPv6Method, error) {
	return parseEnum[IPv6Method]("IPv6 method", ipv6MethodNames[:], s)
}

// IPv6Privacy is the IPv6 privacy extension setting.
type IPv6Privacy uint8

const (
	IPv6PrivacyDisabled IPv6Privacy = iota
	IPv6PrivacyEnabled
	// IPv6PrivacyPreferred is spelled "prefered" on the wire.
	IPv6PrivacyPreferred
)

var ipv6PrivacyNames = [...]string{"disabled", "enabled", "prefered"}

// String returns the wire spelling.
func (p IPv6Privacy) String() string { return enumName(ipv6PrivacyNames[:], p) }

// ParseIPv6Privacy parses the wire spelling of an IPv6 privacy setting.
func ParseIPv6Privacy(s string) (IPv6Privacy, error) {
	return parseEnum[IPv6Privacy]("IPv6 privacy", ipv6PrivacyNames[:], s)
}

// ProxyMethod is the proxy configuration method.
type ProxyMethod uint8

const (
	ProxyMethodDirect ProxyMethod = iota
	ProxyMethodAuto
	ProxyMethodManual
)

var proxyMethodNames = [...]string{"direct", "auto", "manual"}

// String returns the wire spelling.
func (m ProxyMethod) String() string { return enumName(proxyMethodNames[:], m) }

// ParseProxyMethod parses the wire spelling of a proxy method.
func ParseProxyMethod(s string) (ProxyMethod, error) {
	return parseEnum[ProxyMethod]("proxy method", proxyMethodNames[:], s)
}

// EthernetMethod is the Ethernet configuration method.
type EthernetMethod uint8

const (
	EthernetMethodAuto EthernetMethod = iota
	EthernetMethodManual
)

var ethernetMethodNames = [...]string{"auto", "manual"}

// String returns the wire spelling.
func (m EthernetMethod) String() string { return enumName(ethernetMethodNames[:], m) }

// ParseEthernetMethod parses the wire spelling of an Ethernet method.
func ParseEthernetMethod(s string) (EthernetMethod, error) {
	return parseEnum[EthernetMethod]("ethernet method", ethernetMethodNames[:], s)
}

// IPv4 is an IPv4 configuration block. Every field is optional.
type IPv4 struct {
	Method  *IPv4Method `json:"method,omitempty"`
	Address *string     `json:"address,omitempty"`
	Netmask *string     `json:"netmask,omitempty"`
	Gateway *string     `json:"gateway,omitempty"`
}

// IPv6 is an IPv6 configuration block. Every field is optional.
type IPv6 struct {
	Method       *IPv6Method  `json:"method,omitempty"`
	Address      *string      `json:"address,omitempty"`
	PrefixLength *uint8       `json:"prefix_length,omitempty"`
	Gateway      *string      `json:"gateway,omitempty"`
	Privacy      *IPv6Privacy `json:"privacy,omitempty"`
}

// Proxy is a proxy configuration block. Every field is optional.
type Proxy struct {
	Method   *ProxyMethod `json:"method,omitempty"`
	URL      *string      `json:"url,omitempty"`
	Servers  []string     `json:"servers,omitempty"`
	Excludes []string     `json:"excludes,omitempty"`
}

// Provider describes the VPN provider of a service. Every field is optional.
type Provider struct {
	Host   *string `json:"host,omitempty"`
	Domain *string `json:"domain,omitempty"`
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
}

// Ethernet describes the link of a service. Every field is optional.
type Ethernet struct {
	Method    *EthernetMethod `json:"method,omitempty"`
	Interface *string         `json:"interface,omitempty"`
	Address   *string         `json:"address,omitempty"`
	MTU       *uint16         `json:"mtu,omitempty"`
}

// DecodeIPv4 decodes an IPv4 block. It never fails: unknown keys are
// ignored and sub-fields that do not parse stay nil.
func DecodeIPv4(v variant.Value) IPv4 {
	var out IPv4
	eachPair(v, func(key string, val variant.Value) {
		switch key {
		case "Method":
			out.Method = lenientEnum(val, ParseIPv4Method)
		case "Address":
			out.Address = lenient[string](val)
		case "Netmask":
			out.Netmask = lenient[string](val)
		case "Gateway":
			out.Gateway = lenient[string](val)
		}
	})
	return out
}

// DecodeIPv6 decodes an IPv6 block. It never fails.
func DecodeIPv6(v variant.Value) IPv6 {
	var out IPv6
	eachPair(v, func(key string, val variant.Value) {
		switch key {
		case "Method":
			out.Method = lenientEnum(val, ParseIPv6Method)
		case "Address":
			out.Address = lenient[string](val)
		case "PrefixLength":
			out.PrefixLength = prefixLength(val)
		case "Gateway":
			out.Gateway = lenient[string](val)
		case "Privacy":
			out.Privacy = lenientEnum(val, ParseIPv6Privacy)
		}
	})
	return out
}

// DecodeProxy decodes a proxy block. It never fails.
func DecodeProxy(v variant.Value) Proxy {
	var out Proxy
	eachPair(v, func(key string, val variant.Value) {
		switch key {
		case "Method":
			out.Method = lenientEnum(val, ParseProxyMethod)
		case "URL", "Url":
			out.URL = lenient[string](val)
		case "Servers":
			out.Servers = lenientList(val)
		case "Excludes":
			out.Excludes = lenientList(val)
		}
	})
	return out
}

// DecodeProvider decodes a provider block. It never fails.
func DecodeProvider(v variant.Value) Provider {
	var out Provider
	eachPair(v, func(key string, val variant.Value) {
		switch key {
		case "Host":
			out.Host = lenient[string](val)
		case "Domain":
			out.Domain = lenient[string](val)
		case "Name":
			out.Name = lenient[string](val)
		case "Type":
			out.Type = lenient[string](val)
		}
	})
	return out
}

// DecodeEthernet decodes an Ethernet block. It never fails.
func DecodeEthernet(v variant.Value) Ethernet {
	var out Ethernet
	eachPair(v, func(key string, val variant.Value) {
		switch key {
		case "Method":
			out.Method = lenientEnum(val, ParseEthernetMethod)
		case "Interface":
			out.Interface = lenient[string](val)
		case "Address":
			out.Address = lenient[string](val)
		case "MTU":
			out.MTU = lenient[uint16](val)
		}
	})
	return out
}

// IPv4FromProperties decodes the named IPv4 block of a snapshot. It fails
// only when the field itself is absent or not a sequence.
func IPv4FromProperties(m variant.Map, name string) (IPv4, error) {
	return compositeFrom(m, name, DecodeIPv4)
}

// IPv6FromProperties decodes the named IPv6 block of a snapshot.
func IPv6FromProperties(m variant.Map, name string) (IPv6, error) {
	return compositeFrom(m, name, DecodeIPv6)
}

// ProxyFromProperties decodes the named proxy block of a snapshot.
func ProxyFromProperties(m variant.Map, name string) (Proxy, error) {
	return compositeFrom(m, name, DecodeProxy)
}

// ProviderFromProperties decodes the named provider block of a snapshot.
func ProviderFromProperties(m variant.Map, name string) (Provider, error) {
	return compositeFrom(m, name, DecodeProvider)
}

// EthernetFromProperties decodes the named Ethernet block of a snapshot.
func EthernetFromProperties(m variant.Map, name string) (Ethernet, error) {
	return compositeFrom(m, name, DecodeEthernet)
}

func compositeFrom[T any](m variant.Map, name string, decode func(variant.Value) T) (T, error) {
	var zero T
	if _, err := property.Sequence(m, name); err != nil {
		return zero, err
	}
	return decode(m[name]), nil
}

// compositeOrZero is the assembler's view of a composite: a missing or
// non-sequence field reads as the all-nil block.
func compositeOrZero[T any](m variant.Map, name string, decode func(variant.Value) T) T {
	out, _ := compositeFrom(m, name, decode)
	return out
}

// Value encodes the block as an a{sv} dict holding only the set fields.
func (c IPv4) Value() variant.Value {
	var d dictBuilder
	addEnum(&d, "Method", c.Method)
	d.str("Address", c.Address)
	d.str("Netmask", c.Netmask)
	d.str("Gateway", c.Gateway)
	return d.value()
}

// Value encodes the block as an a{sv} dict holding only the set fields.
func (c IPv6) Value() variant.Value {
	var d dictBuilder
	addEnum(&d, "Method", c.Method)
	d.str("Address", c.Address)
	if c.PrefixLength != nil {
		d.add("PrefixLength", variant.Uint8(*c.PrefixLength))
	}
	d.str("Gateway", c.Gateway)
	addEnum(&d, "Privacy", c.Privacy)
	return d.value()
}

// Value encodes the block as an a{sv} dict holding only the set fields.
func (c Proxy) Value() variant.Value {
	var d dictBuilder
	addEnum(&d, "Method", c.Method)
	d.str("URL", c.URL)
	if c.Servers != nil {
		d.add("Servers", variant.Strings(c.Servers...))
	}
	if c.Excludes != nil {
		d.add("Excludes", variant.Strings(c.Excludes...))
	}
	return d.value()
}

// Value encodes the block as an a{sv} dict holding only the set fields.
func (c Provider) Value() variant.Value {
	var d dictBuilder
	d.str("Host", c.Host)
	d.str("Domain", c.Domain)
	d.str("Name", c.Name)
	d.str("Type", c.Type)
	return d.value()
}

// Value encodes the block as an a{sv} dict holding only the set fields.
func (c Ethernet) Value() variant.Value {
	var d dictBuilder
	addEnum(&d, "Method", c.Method)
	d.str("Interface", c.Interface)
	d.str("Address", c.Address)
	if c.MTU != nil {
		d.add("MTU", variant.Uint16(*c.MTU))
	}
	return d.value()
}

// eachPair walks v as alternating key/value elements. Values that are
// neither arrays nor dicts yield nothing.
func eachPair(v variant.Value, fn func(key string, val variant.Value)) {
	it, ok := property.NewIter(v)
	if !ok {
		return
	}
	for {
		key, val, ok := it.NextPair()
		if !ok {
			return
		}
		fn(key, val)
	}
}

func lenient[T property.ScalarType](v variant.Value) *T {
	x, ok := property.As[T](v)
	if !ok {
		return nil
	}
	return &x
}

func lenientEnum[T any](v variant.Value, parse func(string) (T, error)) *T {
	s, ok := v.AsString()
	if !ok {
		return nil
	}
	x, err := parse(s)
	if err != nil {
		return nil
	}
	return &x
}

func lenientList(v variant.Value) []string {
	out, ok := property.AsList[string](v)
	if !ok {
		return nil
	}
	return out
}

// prefixLength accepts a byte or a decimal string.
func prefixLength(v variant.Value) *uint8 {
	if n, ok := v.AsUint8(); ok {
		return &n
	}
	if s, ok := v.AsString(); ok {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil
		}
		u := uint8(n)
		return &u
	}
	return nil
}

type dictBuilder struct {
	entries []variant.Entry
}

func (d *dictBuilder) add(key string, v variant.Value) {
	d.entries = append(d.entries, variant.Entry{Key: key, Value: variant.Wrap(v)})
}

func (d *dictBuilder) str(key string, s *string) {
	if s != nil {
		d.add(key, variant.String(*s))
	}
}

func addEnum[T fmt.Stringer](d *dictBuilder, key string, e *T) {
	if e != nil {
		d.add(key, variant.String((*e).String()))
	}
}

func (d *dictBuilder) value() variant.Value {
	return variant.Dict(d.entries...)
}
