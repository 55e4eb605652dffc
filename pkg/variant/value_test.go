package variant

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestAccessorsSeeThroughVariants(t *testing.T) {
	v := Wrap(Wrap(String("wifi")))

	s, ok := v.AsString()
	if !ok || s != "wifi" {
		t.Fatalf("AsString() = %q, %v; want \"wifi\", true", s, ok)
	}
	if v.Kind() != KindVariant {
		t.Errorf("Kind() = %s, want VARIANT", v.Kind())
	}
	if v.Unwrap().Kind() != KindString {
		t.Errorf("Unwrap().Kind() = %s, want STRING", v.Unwrap().Kind())
	}
}

func TestNoNumericWidening(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  Kind
	}{
		{"byte", Uint8(7), KindUint8},
		{"uint16", Uint16(7), KindUint16},
		{"uint32", Uint32(7), KindUint32},
		{"uint64", Uint64(7), KindUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok8 := tt.value.AsUint8()
			_, ok16 := tt.value.AsUint16()
			_, ok32 := tt.value.AsUint32()
			_, ok64 := tt.value.AsUint64()

			got := map[Kind]bool{
				KindUint8:  ok8,
				KindUint16: ok16,
				KindUint32: ok32,
				KindUint64: ok64,
			}
			for k, ok := range got {
				if ok != (k == tt.want) {
					t.Errorf("read as %s: ok = %v", k, ok)
				}
			}
		})
	}
}

func TestAsStringAcceptsObjectPath(t *testing.T) {
	v := Path("/net/connman/service/wifi_1")

	s, ok := v.AsString()
	if !ok || s != "/net/connman/service/wifi_1" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if _, ok := String("x").AsObjectPath(); ok {
		t.Error("plain string must not read as object path")
	}
}

func TestDictElementsAlternate(t *testing.T) {
	d := Dict(
		Entry{Key: "Method", Value: Wrap(String("dhcp"))},
		Entry{Key: "Address", Value: Wrap(String("10.0.0.2"))},
	)

	elems, ok := d.Elements()
	if !ok {
		t.Fatal("Elements() on dict returned false")
	}
	if len(elems) != 4 {
		t.Fatalf("len(Elements()) = %d, want 4", len(elems))
	}
	if k, _ := elems[0].AsString(); k != "Method" {
		t.Errorf("elems[0] = %q, want Method", k)
	}
	if v, _ := elems[3].AsString(); v != "10.0.0.2" {
		t.Errorf("elems[3] = %q, want 10.0.0.2", v)
	}
}

func TestConstructorsCopyInput(t *testing.T) {
	elems := []Value{String("a"), String("b")}
	arr := Array(elems...)
	elems[0] = String("mutated")

	got, _ := arr.Elements()
	if s, _ := got[0].AsString(); s != "a" {
		t.Errorf("array element changed to %q after caller mutation", s)
	}
}

func TestMapFromValue(t *testing.T) {
	d := Dict(
		Entry{Key: "Powered", Value: Wrap(Bool(true))},
		Entry{Key: "Name", Value: Wrap(String("WiFi"))},
	)

	m, err := MapFromValue(Wrap(d))
	if err != nil {
		t.Fatalf("MapFromValue: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if b, ok := m["Powered"].AsBool(); !ok || !b {
		t.Errorf("Powered = %v, %v", b, ok)
	}

	if _, err := MapFromValue(String("nope")); err == nil {
		t.Error("expected error for non-dict value")
	}

	back, err := MapFromValue(m.Value())
	if err != nil {
		t.Fatalf("MapFromValue(m.Value()): %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("map changed across Value(): %v vs %v", back, m)
	}
}

func TestCBORPreservesWireTypes(t *testing.T) {
	original := Dict(
		Entry{Key: "IPv4", Value: Wrap(Dict(
			Entry{Key: "Method", Value: Wrap(String("dhcp"))},
		))},
		Entry{Key: "Strength", Value: Wrap(Uint8(62))},
		Entry{Key: "MTU", Value: Wrap(Uint16(1500))},
		Entry{Key: "Path", Value: Path("/net/connman/service/ethernet_1")},
		Entry{Key: "Security", Value: Wrap(Strings("psk", "wps"))},
		Entry{Key: "Empty", Value: Array()},
	)

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Value
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("decoded = %#v\nwant      %#v", decoded, original)
	}
}

func TestCBORRejectsOverflow(t *testing.T) {
	data, err := Marshal(Uint64(300))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// Patch the kind byte from UINT64 to UINT8: [5, 300] -> [2, 300]
	patched := bytes.Replace(data, []byte{0x82, 0x05}, []byte{0x82, 0x02}, 1)

	var v Value
	if err := Unmarshal(patched, &v); err == nil {
		t.Errorf("expected overflow error, got %#v", v)
	}
}

// nestedVariants returns the encoding of leaf wrapped n times, built by
// hand so the encoder's own recursion is not involved.
func nestedVariants(t *testing.T, leaf Value, n int) []byte {
	t.Helper()
	data, err := Marshal(leaf)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// [10, inner] per level: array(2) header then kind 10.
	return append(bytes.Repeat([]byte{0x82, 0x0a}, n), data...)
}

func TestCBORNestingLimit(t *testing.T) {
	t.Run("at limit", func(t *testing.T) {
		want := String("x")
		for range maxDepth {
			want = Wrap(want)
		}

		var v Value
		if err := Unmarshal(nestedVariants(t, String("x"), maxDepth), &v); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !v.Equal(want) {
			t.Errorf("decoded = %#v", v)
		}
	})

	t.Run("one past limit", func(t *testing.T) {
		var v Value
		err := Unmarshal(nestedVariants(t, String("x"), maxDepth+1), &v)
		if !errors.Is(err, ErrTooDeep) {
			t.Errorf("err = %v, want ErrTooDeep", err)
		}
	})

	t.Run("far past limit", func(t *testing.T) {
		var v Value
		if err := Unmarshal(nestedVariants(t, String("x"), 100_000), &v); err == nil {
			t.Error("expected error for deeply nested value")
		}
	})
}

func TestCBORRejectsMalformedPayload(t *testing.T) {
	for name, data := range map[string][]byte{
		"not a pair":   {0x81, 0x06},
		"unknown kind": {0x82, 0x0b, 0x00},
		"bool as text": {0x82, 0x01, 0x61, 'x'},
	} {
		var v Value
		if err := Unmarshal(data, &v); err == nil {
			t.Errorf("%s: expected error, got %#v", name, v)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	v := Dict(
		Entry{Key: "Name", Value: Wrap(String("home"))},
		Entry{Key: "Strength", Value: Wrap(Uint8(80))},
		Entry{Key: "Security", Value: Wrap(Strings("psk"))},
	)

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	want := `{"Name":"home","Strength":80,"Security":["psk"]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestGoString(t *testing.T) {
	v := Array(Path("/a"), Wrap(Bool(true)))
	if got, want := v.GoString(), `[o"/a", v(btrue)]`; got != want {
		t.Errorf("GoString() = %s, want %s", got, want)
	}
}
