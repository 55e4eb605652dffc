package property

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connman-go/connman/pkg/variant"
)

func testMap() variant.Map {
	return variant.Map{
		"Powered":    variant.Wrap(variant.Bool(true)),
		"Name":       variant.Wrap(variant.String("WiFi")),
		"Strength":   variant.Wrap(variant.Uint8(70)),
		"MTU":        variant.Wrap(variant.Uint16(1500)),
		"Security":   variant.Wrap(variant.Strings("psk", "wps")),
		"Mixed":      variant.Wrap(variant.Array(variant.String("a"), variant.Uint8(1))),
		"Passphrase": variant.Wrap(variant.String("hunter2")),
		"IPv4": variant.Wrap(variant.Dict(
			variant.Entry{Key: "Method", Value: variant.Wrap(variant.String("dhcp"))},
		)),
	}
}

func TestScalar(t *testing.T) {
	m := testMap()

	t.Run("present and matching", func(t *testing.T) {
		b, err := Scalar[bool](m, "Powered")
		require.NoError(t, err)
		assert.True(t, b)

		s, err := Scalar[uint8](m, "Strength")
		require.NoError(t, err)
		assert.Equal(t, uint8(70), s)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := Scalar[bool](m, "Connected")
		require.Error(t, err)
		assert.True(t, IsNotPresent(err))
		assert.Equal(t, "Connected", FieldOf(err))
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := Scalar[bool](m, "Name")
		require.Error(t, err)
		assert.True(t, IsCast(err))
		assert.False(t, IsNotPresent(err))
	})

	t.Run("no widening", func(t *testing.T) {
		_, err := Scalar[uint16](m, "Strength")
		assert.True(t, IsCast(err))

		_, err = Scalar[uint64](m, "MTU")
		assert.True(t, IsCast(err))
	})
}

func TestParsedDoesNotLeakValue(t *testing.T) {
	m := testMap()

	_, err := Parsed(m, "Passphrase", func(s string) (int, error) {
		return strconv.Atoi(s)
	})
	require.Error(t, err)
	assert.True(t, IsCast(err))
	assert.Equal(t, "Passphrase", FieldOf(err))
	assert.False(t, strings.Contains(err.Error(), "hunter2"), "error leaks value: %v", err)
}

func TestParsedRequiresString(t *testing.T) {
	_, err := Parsed(testMap(), "Powered", func(s string) (string, error) { return s, nil })
	assert.True(t, IsCast(err))
}

func TestList(t *testing.T) {
	m := testMap()

	got, err := List[string](m, "Security")
	require.NoError(t, err)
	assert.Equal(t, []string{"psk", "wps"}, got)

	_, err = List[string](m, "Mixed")
	assert.True(t, IsCast(err), "mixed array must not cast")

	_, err = List[string](m, "Name")
	assert.True(t, IsCast(err), "scalar must not cast to list")

	empty, err := List[string](variant.Map{"E": variant.Wrap(variant.Array())}, "E")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestOptional(t *testing.T) {
	m := testMap()
	opt := Optional(String)

	t.Run("absent yields nil", func(t *testing.T) {
		v, err := opt(m, "Missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("present yields value", func(t *testing.T) {
		v, err := opt(m, "Name")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, "WiFi", *v)
	})

	t.Run("present but malformed is an error", func(t *testing.T) {
		v, err := opt(m, "Powered")
		require.Error(t, err)
		assert.Nil(t, v)
		assert.True(t, IsCast(err))
	})

	t.Run("list", func(t *testing.T) {
		v, err := Optional(ListOf[string]())(m, "Security")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, []string{"psk", "wps"}, *v)
	})
}

func TestWithDefault(t *testing.T) {
	m := testMap()
	ex := WithDefault(Bool, false)

	v, err := ex(m, "Tethering")
	require.NoError(t, err)
	assert.False(t, v)

	v, err = ex(m, "Powered")
	require.NoError(t, err)
	assert.True(t, v)

	_, err = ex(m, "Name")
	assert.True(t, IsCast(err))
}

func TestEnum(t *testing.T) {
	errUnknown := errors.New("unknown")
	parse := func(s string) (int, error) {
		if s == "WiFi" {
			return 1, nil
		}
		return 0, errUnknown
	}

	v, err := Enum(parse)(testMap(), "Name")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = Enum(parse)(variant.Map{"Name": variant.String("other")}, "Name")
	assert.True(t, IsCast(err))
	assert.False(t, errors.Is(err, errUnknown), "parse error must not be wrapped")
}

func TestSequence(t *testing.T) {
	m := testMap()

	t.Run("dict walks pairwise", func(t *testing.T) {
		it, err := Sequence(m, "IPv4")
		require.NoError(t, err)

		k, v, ok := it.NextPair()
		require.True(t, ok)
		assert.Equal(t, "Method", k)
		s, _ := v.AsString()
		assert.Equal(t, "dhcp", s)

		_, _, ok = it.NextPair()
		assert.False(t, ok)
	})

	t.Run("flat array walks pairwise", func(t *testing.T) {
		flat := variant.Map{"P": variant.Array(
			variant.String("Host"), variant.String("vpn.example.com"),
			variant.String("Name"), variant.String("office"),
		)}
		it, err := Sequence(flat, "P")
		require.NoError(t, err)
		assert.Equal(t, 4, it.Remaining())

		var keys []string
		for {
			k, _, ok := it.NextPair()
			if !ok {
				break
			}
			keys = append(keys, k)
		}
		assert.Equal(t, []string{"Host", "Name"}, keys)
	})

	t.Run("non string key stops iteration", func(t *testing.T) {
		bad := variant.Map{"P": variant.Array(
			variant.Uint8(1), variant.String("x"),
			variant.String("Host"), variant.String("h"),
		)}
		it, err := Sequence(bad, "P")
		require.NoError(t, err)
		_, _, ok := it.NextPair()
		assert.False(t, ok)
		assert.Equal(t, 0, it.Remaining())
	})

	t.Run("absent and wrong kind", func(t *testing.T) {
		_, err := Sequence(m, "IPv6")
		assert.True(t, IsNotPresent(err))

		_, err = Sequence(m, "Name")
		assert.True(t, IsCast(err))
	})
}
