package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/connman/mocks"
	"github.com/connman-go/connman/pkg/signal"
	"github.com/connman-go/connman/pkg/variant"
)

// syncBuffer is a bytes.Buffer safe for the monitor goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const (
	wifiPath   variant.ObjectPath = "/net/connman/technology/wifi"
	officePath variant.ObjectPath = "/net/connman/service/wifi_0123_4f6666696365_managed_psk"
	cafePath   variant.ObjectPath = "/net/connman/service/wifi_0123_43616665_managed_none"
)

func objects(objs ...connman.Object) []variant.Value {
	elems := make([]variant.Value, 0, len(objs))
	for _, o := range objs {
		elems = append(elems, variant.Array(variant.Path(o.Path), o.Props.Value()))
	}
	return []variant.Value{variant.Array(elems...)}
}

func wifi() connman.Object {
	return connman.Object{Path: wifiPath, Props: variant.Map{
		"Powered":   variant.Wrap(variant.Bool(true)),
		"Connected": variant.Wrap(variant.Bool(true)),
		"Name":      variant.Wrap(variant.String("WiFi")),
		"Type":      variant.Wrap(variant.String("wifi")),
	}}
}

func service(p variant.ObjectPath, name, state string) connman.Object {
	return connman.Object{Path: p, Props: variant.Map{
		"Name":                      variant.Wrap(variant.String(name)),
		"State":                     variant.Wrap(variant.String(state)),
		"Favorite":                  variant.Wrap(variant.Bool(true)),
		"Immutable":                 variant.Wrap(variant.Bool(false)),
		"AutoConnect":               variant.Wrap(variant.Bool(true)),
		"Nameservers":               variant.Wrap(variant.Strings()),
		"Nameservers.Configuration": variant.Wrap(variant.Strings()),
		"Timeservers":               variant.Wrap(variant.Strings()),
		"Timeservers.Configuration": variant.Wrap(variant.Strings()),
		"Domains":                   variant.Wrap(variant.Strings()),
		"Domains.Configuration":     variant.Wrap(variant.Strings()),
	}}
}

func newShell(t *testing.T) (*Shell, *mocks.MockCaller, *syncBuffer) {
	caller := mocks.NewMockCaller(t)
	out := &syncBuffer{}
	return New(Config{Caller: caller}, out), caller, out
}

func expectServices(caller *mocks.MockCaller) {
	caller.EXPECT().
		Call(mock.Anything, connman.ManagerPath, connman.ManagerInterface, "GetServices", mock.Anything).
		Return(objects(service(officePath, "Office", "online"), service(cafePath, "Cafe", "idle")), nil)
}

func TestShellState(t *testing.T) {
	sh, caller, out := newShell(t)
	caller.EXPECT().
		Call(mock.Anything, connman.ManagerPath, connman.ManagerInterface, "GetProperties", mock.Anything).
		Return([]variant.Value{variant.Map{
			"State":       variant.Wrap(variant.String("online")),
			"OfflineMode": variant.Wrap(variant.Bool(false)),
		}.Value()}, nil)

	assert.False(t, sh.Exec(context.Background(), "state"))
	assert.Contains(t, out.String(), "State = online")
}

func TestShellOffline(t *testing.T) {
	sh, caller, out := newShell(t)
	caller.EXPECT().
		Call(mock.Anything, connman.ManagerPath, connman.ManagerInterface, "SetProperty",
			[]variant.Value{variant.String("OfflineMode"), variant.Wrap(variant.Bool(true))}).
		Return(nil, nil).Once()

	sh.Exec(context.Background(), "offline on")
	sh.Exec(context.Background(), "offline maybe")
	sh.Exec(context.Background(), "offline")

	got := out.String()
	assert.Contains(t, got, "Offline mode on")
	assert.Contains(t, got, `usage: expected on or off, got "maybe"`)
	assert.Contains(t, got, "usage: offline on|off")
}

func TestShellServices(t *testing.T) {
	sh, caller, out := newShell(t)
	expectServices(caller)

	sh.Exec(context.Background(), "services")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*AO Office"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "*A  Cafe"), lines[1])
}

func TestShellEnableTechnology(t *testing.T) {
	sh, caller, out := newShell(t)
	caller.EXPECT().
		Call(mock.Anything, connman.ManagerPath, connman.ManagerInterface, "GetTechnologies", mock.Anything).
		Return(objects(wifi()), nil)
	caller.EXPECT().
		Call(mock.Anything, wifiPath, connman.TechnologyInterface, "SetProperty",
			[]variant.Value{variant.String("Powered"), variant.Wrap(variant.Bool(false))}).
		Return(nil, nil).Once()
	caller.EXPECT().
		Call(mock.Anything, wifiPath, connman.TechnologyInterface, "Scan", mock.Anything).
		Return(nil, nil).Once()

	sh.Exec(context.Background(), "disable wifi")
	sh.Exec(context.Background(), "scan wifi")
	sh.Exec(context.Background(), "scan bluetooth")

	got := out.String()
	assert.Contains(t, got, "Disabled WiFi")
	assert.Contains(t, got, "Scan completed for WiFi")
	assert.Contains(t, got, `Error: no technology "bluetooth"`)
}

func TestShellServiceCommands(t *testing.T) {
	sh, caller, out := newShell(t)
	expectServices(caller)
	caller.EXPECT().Call(mock.Anything, cafePath, connman.ServiceInterface, "Connect", mock.Anything).
		Return(nil, nil).Once()
	caller.EXPECT().Call(mock.Anything, officePath, connman.ServiceInterface, "SetProperty",
		[]variant.Value{variant.String("AutoConnect"), variant.Wrap(variant.Bool(false))}).
		Return(nil, nil).Once()
	caller.EXPECT().Call(mock.Anything, cafePath, connman.ServiceInterface, "MoveBefore",
		[]variant.Value{variant.Path(officePath)}).
		Return(nil, nil).Once()

	ctx := context.Background()
	sh.Exec(ctx, "connect Cafe")
	sh.Exec(ctx, "autoconnect wifi_0123_4f6666696365_managed_psk off")
	sh.Exec(ctx, "move Cafe before Office")
	sh.Exec(ctx, "connect Library")

	got := out.String()
	assert.Contains(t, got, "connect *A  Cafe")
	assert.Contains(t, got, "Autoconnect off for wifi_0123_4f6666696365_managed_psk")
	assert.Contains(t, got, `Error: no service "Library"`)
}

func TestShellMonitor(t *testing.T) {
	src := make(chan signal.Message, 1)
	out := &syncBuffer{}
	sh := New(Config{
		Caller: mocks.NewMockCaller(t),
		Signals: func(ctx context.Context) (<-chan signal.Message, error) {
			return src, nil
		},
	}, out)

	ctx := context.Background()
	sh.Exec(ctx, "monitor on")
	src <- signal.Message{
		Path:      wifiPath,
		Interface: connman.TechnologyInterface,
		Member:    "PropertyChanged",
		Args:      []variant.Value{variant.String("Powered"), variant.Wrap(variant.Bool(false))},
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "technology.PropertyChanged wifi")
	}, time.Second, 10*time.Millisecond)

	sh.Exec(ctx, "monitor off")
	assert.Contains(t, out.String(), "Monitor off")
}

func TestShellQuitAndUnknown(t *testing.T) {
	sh, _, out := newShell(t)
	assert.False(t, sh.Exec(context.Background(), "frobnicate"))
	assert.False(t, sh.Exec(context.Background(), "   "))
	assert.True(t, sh.Exec(context.Background(), "quit"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}
