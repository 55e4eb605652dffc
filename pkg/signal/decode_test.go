package signal

import (
	"errors"
	"testing"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/property"
	"github.com/connman-go/connman/pkg/variant"
)

func techProps() variant.Value {
	return variant.Map{
		"Powered":   variant.Wrap(variant.Bool(true)),
		"Connected": variant.Wrap(variant.Bool(false)),
		"Name":      variant.Wrap(variant.String("WiFi")),
		"Type":      variant.Wrap(variant.String("wifi")),
	}.Value()
}

func managerMsg(member string, args ...variant.Value) Message {
	return Message{Path: "/", Interface: connman.ManagerInterface, Member: member, Args: args}
}

func TestDecodeTechnologyAdded(t *testing.T) {
	ev, err := Decode(managerMsg("TechnologyAdded",
		variant.Path("/net/connman/technology/wifi"), techProps()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	added, ok := ev.(TechnologyAdded)
	if !ok {
		t.Fatalf("event = %T, want TechnologyAdded", ev)
	}
	if added.Path != "/net/connman/technology/wifi" {
		t.Errorf("Path = %q", added.Path)
	}
	if added.Properties.Type != connman.TechnologyTypeWifi || !added.Properties.Powered {
		t.Errorf("Properties = %+v", added.Properties)
	}
	if ev.Kind() != KindTechnologyAdded {
		t.Errorf("Kind = %v", ev.Kind())
	}
}

func TestDecodeUnknownMemberIsNotApplicable(t *testing.T) {
	_, err := Decode(managerMsg("Unknown"))
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	var malformed *MalformedError
	if errors.As(err, &malformed) {
		t.Fatal("not-applicable must not be reported as malformed")
	}
	if got := Classify(managerMsg("Unknown")); got != OutcomeNotApplicable {
		t.Errorf("Classify = %v, want not_applicable", got)
	}
}

func TestDecodeUnknownInterface(t *testing.T) {
	msg := Message{Interface: "org.freedesktop.DBus", Member: "NameOwnerChanged"}
	if got := Classify(msg); got != OutcomeNotApplicable {
		t.Errorf("Classify = %v, want not_applicable", got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{
			name:    "technology added missing dict",
			msg:     managerMsg("TechnologyAdded", variant.Path("/net/connman/technology/wifi")),
			wantErr: ErrArity,
		},
		{
			name:    "technology added path as string",
			msg:     managerMsg("TechnologyAdded", variant.String("/net/connman/technology/wifi"), techProps()),
			wantErr: ErrArgument,
		},
		{
			name: "technology added missing required property",
			msg: managerMsg("TechnologyAdded", variant.Path("/t"), variant.Map{
				"Powered": variant.Wrap(variant.Bool(true)),
			}.Value()),
			wantErr: property.ErrNotPresent,
		},
		{
			name:    "property changed unknown name",
			msg:     managerMsg("PropertyChanged", variant.String("Bogus"), variant.Wrap(variant.Bool(true))),
			wantErr: connman.ErrUnknownValue,
		},
		{
			name:    "property changed wrong value kind",
			msg:     managerMsg("PropertyChanged", variant.String("OfflineMode"), variant.Wrap(variant.String("yes"))),
			wantErr: property.ErrCast,
		},
		{
			name:    "property changed name not a string",
			msg:     managerMsg("PropertyChanged", variant.Uint8(1), variant.Wrap(variant.Bool(true))),
			wantErr: ErrArgument,
		},
		{
			name:    "services changed removed not paths",
			msg:     managerMsg("ServicesChanged", variant.Array(), variant.Strings("/a")),
			wantErr: ErrArgument,
		},
		{
			name:    "services changed not an object list",
			msg:     managerMsg("ServicesChanged", variant.Strings("x"), variant.Array()),
			wantErr: connman.ErrNotObjectList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode(tt.msg)
			if ev != nil {
				t.Errorf("event = %v, want nil", ev)
			}
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v, want *MalformedError", err)
			}
			if malformed.Scope != ScopeManager || malformed.Member != tt.msg.Member {
				t.Errorf("MalformedError = %+v", malformed)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want wrapping %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNoMatch) {
				t.Error("malformed must not be reported as not-applicable")
			}
		})
	}
}

func TestDecodeObjectListIsArgumentError(t *testing.T) {
	for _, member := range []string{"ServicesChanged", "PeersChanged"} {
		_, err := Decode(managerMsg(member, variant.Array(variant.String("/s/a")), variant.Array()))
		if !errors.Is(err, ErrArgument) {
			t.Errorf("%s: err = %v, want wrapping ErrArgument", member, err)
		}
		if errors.Is(err, connman.ErrUnexpectedReply) {
			t.Errorf("%s: signal payload reported as unexpected reply: %v", member, err)
		}
	}
}

func TestDecodeManagerSignals(t *testing.T) {
	t.Run("property changed", func(t *testing.T) {
		ev, err := Decode(managerMsg("PropertyChanged", variant.String("State"), variant.Wrap(variant.String("online"))))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		pc := ev.(ManagerPropertyChanged)
		if pc.Property != connman.ManagerPropertyState || pc.Value != connman.ManagerStateOnline {
			t.Errorf("event = %+v", pc)
		}
	})

	t.Run("technology removed", func(t *testing.T) {
		ev, err := Decode(managerMsg("TechnologyRemoved", variant.Path("/net/connman/technology/p2p")))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if ev.(TechnologyRemoved).Path != "/net/connman/technology/p2p" {
			t.Errorf("event = %+v", ev)
		}
	})

	t.Run("services changed keeps partial maps", func(t *testing.T) {
		changed := variant.Array(
			variant.Array(variant.Path("/s/a"), variant.Map{"Strength": variant.Wrap(variant.Uint8(40))}.Value()),
			variant.Array(variant.Path("/s/b"), variant.Dict()),
		)
		removed := variant.Array(variant.Path("/s/c"))

		ev, err := Decode(managerMsg("ServicesChanged", changed, removed))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		sc := ev.(ServicesChanged)
		if len(sc.Changed) != 2 || sc.Changed[0].Path != "/s/a" || len(sc.Changed[1].Props) != 0 {
			t.Errorf("Changed = %+v", sc.Changed)
		}
		if len(sc.Removed) != 1 || sc.Removed[0] != "/s/c" {
			t.Errorf("Removed = %+v", sc.Removed)
		}
	})

	t.Run("peers changed is its own kind", func(t *testing.T) {
		ev, err := Decode(managerMsg("PeersChanged", variant.Array(), variant.Array()))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if ev.Kind() != KindPeersChanged {
			t.Errorf("Kind = %v", ev.Kind())
		}
	})

	t.Run("tethering clients", func(t *testing.T) {
		ev, err := Decode(managerMsg("TetheringClientsChanged", variant.Strings("aa:bb:cc:dd:ee:ff"), variant.Strings()))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		tc := ev.(TetheringClientsChanged)
		if len(tc.Registered) != 1 || len(tc.Removed) != 0 {
			t.Errorf("event = %+v", tc)
		}
	})
}

func TestDecodeServicePropertyChanged(t *testing.T) {
	msg := Message{
		Path:      "/net/connman/service/wifi_1",
		Interface: connman.ServiceInterface,
		Member:    "PropertyChanged",
		Args: []variant.Value{
			variant.String("IPv4"),
			variant.Wrap(variant.Dict(variant.Entry{Key: "Method", Value: variant.Wrap(variant.String("dhcp"))})),
		},
	}
	ev, err := Decode(msg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pc := ev.(ServicePropertyChanged)
	if pc.Path != msg.Path || pc.Property != connman.ServicePropertyIPv4 {
		t.Errorf("event = %+v", pc)
	}
	ipv4, ok := pc.Value.(connman.IPv4)
	if !ok || ipv4.Method == nil || *ipv4.Method != connman.IPv4MethodDHCP {
		t.Errorf("Value = %#v", pc.Value)
	}
}

func TestDecodeTechnologyPropertyChanged(t *testing.T) {
	msg := Message{
		Path:      "/net/connman/technology/wifi",
		Interface: connman.TechnologyInterface,
		Member:    "PropertyChanged",
		Args:      []variant.Value{variant.String("Powered"), variant.Wrap(variant.Bool(false))},
	}
	ev, err := Decode(msg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pc := ev.(TechnologyPropertyChanged)
	if pc.Property != connman.TechnologyPropertyPowered || pc.Value != false {
		t.Errorf("event = %+v", pc)
	}
}

func TestClassificationIsExclusive(t *testing.T) {
	ifaces := []string{
		connman.ManagerInterface, connman.TechnologyInterface, connman.ServiceInterface,
		"net.connman.Agent", "",
	}
	members := []string{
		"PropertyChanged", "TechnologyAdded", "TechnologyRemoved", "ServicesChanged",
		"PeersChanged", "TetheringClientsChanged", "Unknown", "",
	}
	argSets := [][]variant.Value{
		nil,
		{variant.String("Powered"), variant.Wrap(variant.Bool(true))},
		{variant.Path("/x"), techProps()},
		{variant.Array(), variant.Array()},
	}

	for _, iface := range ifaces {
		for _, member := range members {
			for _, args := range argSets {
				msg := Message{Interface: iface, Member: member, Args: args}
				ev, err := Decode(msg)

				var malformed *MalformedError
				isMalformed := errors.As(err, &malformed)
				noMatch := errors.Is(err, ErrNoMatch)

				n := 0
				for _, b := range []bool{ev != nil, noMatch, isMalformed} {
					if b {
						n++
					}
				}
				if n != 1 {
					t.Fatalf("%s.%s %v: decoded=%v noMatch=%v malformed=%v", iface, member, args, ev != nil, noMatch, isMalformed)
				}
				if ev != nil && err != nil {
					t.Fatalf("%s.%s: event and error both set", iface, member)
				}
				if want := ScopeOf(iface).Kind(member) == KindUnknown; want != noMatch {
					t.Fatalf("%s.%s: noMatch=%v, want %v", iface, member, noMatch, want)
				}
			}
		}
	}
}

func TestKindTables(t *testing.T) {
	for k := KindManagerPropertyChanged; k <= KindServicePropertyChanged; k++ {
		if got := k.Scope().Kind(k.Member()); got != k {
			t.Errorf("%v: Scope().Kind(Member()) = %v", k, got)
		}
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
	if got := KindServicesChanged.String(); got != "manager.ServicesChanged" {
		t.Errorf("String() = %q", got)
	}
}
