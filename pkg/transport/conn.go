package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/signal"
	"github.com/connman-go/connman/pkg/variant"
)

// DefaultCallTimeout bounds a method call whose context has no deadline.
const DefaultCallTimeout = 5 * time.Second

// signalBuffer is the capacity of the channel godbus delivers signals on.
const signalBuffer = 64

// Bus selects the message bus to connect to.
type Bus string

const (
	BusSystem  Bus = "system"
	BusSession Bus = "session"
)

// ErrUnknownBus is returned by Dial for a Bus other than system or session.
var ErrUnknownBus = errors.New("unknown bus")

// Config configures a Conn.
type Config struct {
	// Bus defaults to BusSystem.
	Bus Bus

	// Destination defaults to connman.Destination.
	Destination string

	// CallTimeout defaults to DefaultCallTimeout.
	CallTimeout time.Duration

	// Logger is the operational logger. Nil discards.
	Logger *slog.Logger

	// Protocol receives calls, replies and signals. Optional.
	Protocol log.Logger

	// SessionID tags capture events. Defaults to a random UUID.
	SessionID string
}

func (c *Config) applyDefaults() {
	if c.Bus == "" {
		c.Bus = BusSystem
	}
	if c.Destination == "" {
		c.Destination = connman.Destination
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	if c.Protocol == nil {
		c.Protocol = log.NoopLogger{}
	}
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
}

// Conn is a ConnMan connection over D-Bus.
type Conn struct {
	conn   *dbus.Conn
	config Config
	callID atomic.Uint32
}

// Compile-time interface satisfaction check.
var _ connman.Caller = (*Conn)(nil)

// Dial connects to the configured bus.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	cfg.applyDefaults()

	var (
		conn *dbus.Conn
		err  error
	)
	switch cfg.Bus {
	case BusSystem:
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	case BusSession:
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, cfg.Bus)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s bus: %w", cfg.Bus, err)
	}
	c := New(conn, cfg)
	c.debugLog("connected", "bus", cfg.Bus, "session", c.config.SessionID)
	return c, nil
}

// New wraps an already connected godbus connection.
func New(conn *dbus.Conn, cfg Config) *Conn {
	cfg.applyDefaults()
	return &Conn{conn: conn, config: cfg}
}

// SessionID returns the ID used to tag capture events.
func (c *Conn) SessionID() string { return c.config.SessionID }

// Call invokes iface.member on path. Errors from the bus are returned
// unchanged.
func (c *Conn) Call(ctx context.Context, path variant.ObjectPath, iface, member string, args ...variant.Value) ([]variant.Value, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
	}

	dargs := make([]any, len(args))
	for i, a := range args {
		dargs[i] = ToDBus(a)
	}

	id := c.callID.Add(1)
	start := time.Now()
	c.config.Protocol.Log(log.Event{
		Timestamp: start,
		SessionID: c.config.SessionID,
		Direction: log.DirectionOut,
		Category:  log.CategoryCall,
		Call: &log.CallEvent{
			CallID:    id,
			Path:      path,
			Interface: iface,
			Member:    member,
			Args:      args,
		},
	})

	call := c.conn.Object(c.config.Destination, dbus.ObjectPath(path)).
		CallWithContext(ctx, iface+"."+member, 0, dargs...)
	elapsed := time.Since(start)

	if call.Err != nil {
		c.logReply(id, nil, call.Err, elapsed)
		c.debugLog("call failed", "path", path, "method", iface+"."+member, "error", call.Err)
		return nil, call.Err
	}

	body, err := FromDBusBody(call.Body)
	if err != nil {
		err = fmt.Errorf("%s.%s reply: %w", iface, member, err)
		c.logReply(id, nil, err, elapsed)
		return nil, err
	}
	c.logReply(id, body, nil, elapsed)
	return body, nil
}

func (c *Conn) logReply(id uint32, body []variant.Value, err error, elapsed time.Duration) {
	reply := &log.ReplyEvent{CallID: id, Body: body, Duration: &elapsed}
	if err != nil {
		reply.Error = errorName(err)
	}
	c.config.Protocol.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.config.SessionID,
		Direction: log.DirectionIn,
		Category:  log.CategoryReply,
		Reply:     reply,
	})
}

// errorName returns the D-Bus error name for bus errors and the error
// text otherwise.
func errorName(err error) string {
	var byValue dbus.Error
	if errors.As(err, &byValue) {
		return byValue.Name
	}
	var byPtr *dbus.Error
	if errors.As(err, &byPtr) {
		return byPtr.Name
	}
	return err.Error()
}

// Signals subscribes to the signals of the ConnMan manager, technology
// and service interfaces. The returned channel yields them in arrival
// order and is closed when ctx is done or the connection closes.
// Signals that cannot be converted are logged and skipped.
func (c *Conn) Signals(ctx context.Context) (<-chan signal.Message, error) {
	for _, iface := range []string{connman.ManagerInterface, connman.TechnologyInterface, connman.ServiceInterface} {
		err := c.conn.AddMatchSignalContext(ctx,
			dbus.WithMatchSender(c.config.Destination),
			dbus.WithMatchInterface(iface),
		)
		if err != nil {
			return nil, fmt.Errorf("add match for %s: %w", iface, err)
		}
	}

	raw := make(chan *dbus.Signal, signalBuffer)
	c.conn.Signal(raw)

	out := make(chan signal.Message)
	go func() {
		defer close(out)
		defer c.conn.RemoveSignal(raw)

		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-raw:
				if !ok {
					return
				}
				msg, err := MessageFromSignal(s)
				if err != nil {
					c.logError("convert signal", err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *Conn) logError(where string, err error) {
	if c.config.Logger != nil {
		c.config.Logger.Warn(where, "error", err)
	}
	c.config.Protocol.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.config.SessionID,
		Direction: log.DirectionIn,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: err.Error(), Context: where},
	})
}

// Close closes the bus connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) debugLog(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}
