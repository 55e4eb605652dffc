package connman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

func entry(key string, v variant.Value) variant.Entry {
	return variant.Entry{Key: key, Value: variant.Wrap(v)}
}

func ptr[T any](v T) *T { return &v }

func TestDecodeIPv4(t *testing.T) {
	tests := []struct {
		name string
		in   variant.Value
		want IPv4
	}{
		{
			name: "all fields",
			in: variant.Dict(
				entry("Method", variant.String("dhcp")),
				entry("Address", variant.String("192.168.1.20")),
				entry("Netmask", variant.String("255.255.255.0")),
				entry("Gateway", variant.String("192.168.1.1")),
			),
			want: IPv4{
				Method:  ptr(IPv4MethodDHCP),
				Address: ptr("192.168.1.20"),
				Netmask: ptr("255.255.255.0"),
				Gateway: ptr("192.168.1.1"),
			},
		},
		{
			name: "unknown method leaves only Method nil",
			in: variant.Dict(
				entry("Method", variant.String("carrier-pigeon")),
				entry("Address", variant.String("10.0.0.2")),
			),
			want: IPv4{Address: ptr("10.0.0.2")},
		},
		{
			name: "wrong kind leaves only that field nil",
			in: variant.Dict(
				entry("Method", variant.String("manual")),
				entry("Netmask", variant.Uint32(0xffffff00)),
			),
			want: IPv4{Method: ptr(IPv4MethodManual)},
		},
		{
			name: "unknown keys are ignored",
			in: variant.Dict(
				entry("Broadcast", variant.String("10.0.0.255")),
				entry("Gateway", variant.String("10.0.0.1")),
			),
			want: IPv4{Gateway: ptr("10.0.0.1")},
		},
		{
			name: "flat array",
			in: variant.Array(
				variant.String("Method"), variant.String("fixed"),
				variant.String("Address"), variant.String("10.1.1.1"),
			),
			want: IPv4{Method: ptr(IPv4MethodFixed), Address: ptr("10.1.1.1")},
		},
		{
			name: "not a sequence",
			in:   variant.String("dhcp"),
			want: IPv4{},
		},
		{
			name: "empty",
			in:   variant.Dict(),
			want: IPv4{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeIPv4(variant.Wrap(tt.in)))
		})
	}
}

func TestDecodeIPv6(t *testing.T) {
	t.Run("prefix length as byte", func(t *testing.T) {
		got := DecodeIPv6(variant.Dict(
			entry("Method", variant.String("6to4")),
			entry("PrefixLength", variant.Uint8(64)),
			entry("Privacy", variant.String("prefered")),
		))
		assert.Equal(t, IPv6{
			Method:       ptr(IPv6Method6to4),
			PrefixLength: ptr(uint8(64)),
			Privacy:      ptr(IPv6PrivacyPreferred),
		}, got)
	})

	t.Run("prefix length as decimal string", func(t *testing.T) {
		got := DecodeIPv6(variant.Dict(entry("PrefixLength", variant.String("56"))))
		require.NotNil(t, got.PrefixLength)
		assert.Equal(t, uint8(56), *got.PrefixLength)
	})

	t.Run("malformed prefix length", func(t *testing.T) {
		got := DecodeIPv6(variant.Dict(
			entry("PrefixLength", variant.String("300")),
			entry("Address", variant.String("fe80::1")),
		))
		assert.Nil(t, got.PrefixLength)
		assert.Equal(t, ptr("fe80::1"), got.Address)
	})

	t.Run("unknown privacy", func(t *testing.T) {
		got := DecodeIPv6(variant.Dict(
			entry("Method", variant.String("auto")),
			entry("Privacy", variant.String("preferred")),
		))
		assert.Nil(t, got.Privacy)
		assert.Equal(t, ptr(IPv6MethodAuto), got.Method)
	})
}

func TestDecodeProxy(t *testing.T) {
	t.Run("both url spellings", func(t *testing.T) {
		for _, key := range []string{"URL", "Url"} {
			got := DecodeProxy(variant.Dict(
				entry("Method", variant.String("auto")),
				entry(key, variant.String("http://wpad/wpad.dat")),
			))
			assert.Equal(t, ptr("http://wpad/wpad.dat"), got.URL, key)
		}
	})

	t.Run("lists", func(t *testing.T) {
		got := DecodeProxy(variant.Dict(
			entry("Method", variant.String("manual")),
			entry("Servers", variant.Strings("proxy:3128")),
			entry("Excludes", variant.Array(variant.String("localhost"), variant.Uint8(1))),
		))
		assert.Equal(t, ptr(ProxyMethodManual), got.Method)
		assert.Equal(t, []string{"proxy:3128"}, got.Servers)
		assert.Nil(t, got.Excludes, "mixed list must not decode")
	})
}

func TestDecodeProvider(t *testing.T) {
	got := DecodeProvider(variant.Dict(
		entry("Host", variant.String("vpn.example.com")),
		entry("Domain", variant.String("example.com")),
		entry("Name", variant.Bool(true)),
		entry("Type", variant.String("openvpn")),
	))
	assert.Equal(t, Provider{
		Host:   ptr("vpn.example.com"),
		Domain: ptr("example.com"),
		Type:   ptr("openvpn"),
	}, got)
}

func TestDecodeEthernet(t *testing.T) {
	t.Run("mtu must be uint16", func(t *testing.T) {
		got := DecodeEthernet(variant.Dict(
			entry("Method", variant.String("auto")),
			entry("Interface", variant.String("eth0")),
			entry("Address", variant.String("00:11:22:33:44:55")),
			entry("MTU", variant.Uint32(1500)),
		))
		assert.Nil(t, got.MTU)
		assert.Equal(t, ptr("eth0"), got.Interface)
	})

	t.Run("all fields", func(t *testing.T) {
		got := DecodeEthernet(variant.Dict(
			entry("Method", variant.String("manual")),
			entry("MTU", variant.Uint16(9000)),
		))
		assert.Equal(t, Ethernet{Method: ptr(EthernetMethodManual), MTU: ptr(uint16(9000))}, got)
	})
}

func TestCompositeFromProperties(t *testing.T) {
	m := variant.Map{
		"IPv4":     variant.Wrap(variant.Dict(entry("Method", variant.String("off")))),
		"Provider": variant.Wrap(variant.String("not a block")),
	}

	got, err := IPv4FromProperties(m, "IPv4")
	require.NoError(t, err)
	assert.Equal(t, ptr(IPv4MethodOff), got.Method)

	_, err = IPv6FromProperties(m, "IPv6")
	assert.True(t, property.IsNotPresent(err))

	_, err = ProviderFromProperties(m, "Provider")
	assert.True(t, property.IsCast(err))
}

func TestCompositeValueRoundTrip(t *testing.T) {
	ipv6 := IPv6{
		Method:       ptr(IPv6MethodManual),
		Address:      ptr("2001:db8::2"),
		PrefixLength: ptr(uint8(64)),
		Gateway:      ptr("2001:db8::1"),
		Privacy:      ptr(IPv6PrivacyEnabled),
	}
	assert.Equal(t, ipv6, DecodeIPv6(ipv6.Value()))

	proxy := Proxy{Method: ptr(ProxyMethodManual), Servers: []string{"a:1", "b:2"}, Excludes: []string{}}
	assert.Equal(t, proxy, DecodeProxy(proxy.Value()))

	eth := Ethernet{Method: ptr(EthernetMethodAuto), MTU: ptr(uint16(1500))}
	assert.Equal(t, eth, DecodeEthernet(eth.Value()))
}

func TestEnumParse(t *testing.T) {
	m, err := ParseIPv4Method("dhcp")
	require.NoError(t, err)
	assert.Equal(t, IPv4MethodDHCP, m)
	assert.Equal(t, "dhcp", m.String())

	_, err = ParseIPv4Method("DHCP")
	assert.ErrorIs(t, err, ErrUnknownValue)

	assert.Equal(t, "unknown(9)", IPv4Method(9).String())
}
