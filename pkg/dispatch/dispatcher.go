package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/signal"
)

// Config configures a Dispatcher.
type Config struct {
	// Logger is the operational logger. Nil discards.
	Logger *slog.Logger

	// Protocol receives one capture event per handled message. Optional.
	Protocol log.Logger

	// SessionID tags capture events.
	SessionID string

	// Metrics is optional.
	Metrics *Metrics

	// BufferSize is the subscriber channel capacity. Zero means
	// DefaultBufferSize.
	BufferSize int
}

// Dispatcher decodes signals and publishes them to its hub.
type Dispatcher struct {
	hub       *Hub
	logger    *slog.Logger
	protocol  log.Logger
	sessionID string
	metrics   *Metrics
	now       func() time.Time
}

// New creates a Dispatcher with an empty hub.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		logger:    cfg.Logger,
		protocol:  cfg.Protocol,
		sessionID: cfg.SessionID,
		metrics:   cfg.Metrics,
		now:       time.Now,
	}
	if d.protocol == nil {
		d.protocol = log.NoopLogger{}
	}
	d.hub = NewHub(HubConfig{Logger: cfg.Logger, Metrics: cfg.Metrics, BufferSize: cfg.BufferSize})
	return d
}

// Hub returns the dispatcher's hub.
func (d *Dispatcher) Hub() *Hub { return d.hub }

// Subscribe registers a subscriber on the hub.
func (d *Dispatcher) Subscribe() *Subscription { return d.hub.Subscribe() }

// Run handles messages from src in arrival order until ctx is done or src
// is closed. It returns ctx.Err() on cancellation and nil when src closes.
// Malformed messages are logged and skipped.
func (d *Dispatcher) Run(ctx context.Context, src <-chan signal.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-src:
			if !ok {
				d.debugLog("signal source closed")
				return nil
			}
			d.Handle(msg)
		}
	}
}

// Handle decodes one message and publishes it when it decodes.
func (d *Dispatcher) Handle(msg signal.Message) signal.Outcome {
	received := d.now()
	ev, err := signal.Decode(msg)
	outcome := signal.OutcomeOf(err)
	scope := signal.ScopeOf(msg.Interface)

	d.metrics.signal(scope, outcome)
	d.capture(msg, received, outcome, err)

	switch outcome {
	case signal.OutcomeNotApplicable:
		d.debugLog("signal not applicable",
			"interface", msg.Interface, "member", msg.Member, "path", msg.Path)
	case signal.OutcomeMalformed:
		if d.logger != nil {
			d.logger.Warn("malformed signal",
				"interface", msg.Interface, "member", msg.Member, "path", msg.Path, "error", err)
		}
	case signal.OutcomeDecoded:
		n := NewNotification(msg, ev, received)
		delivered := d.hub.Publish(n)
		d.debugLog("signal dispatched",
			"kind", n.Kind.String(), "path", msg.Path, "delivered", delivered)
	}
	return outcome
}

func (d *Dispatcher) capture(msg signal.Message, ts time.Time, outcome signal.Outcome, err error) {
	se := &log.SignalEvent{
		Path:      msg.Path,
		Interface: msg.Interface,
		Member:    msg.Member,
		Args:      msg.Args,
		Outcome:   outcome.String(),
	}
	if outcome == signal.OutcomeMalformed {
		se.Detail = err.Error()
	}
	d.protocol.Log(log.Event{
		Timestamp: ts,
		SessionID: d.sessionID,
		Direction: log.DirectionIn,
		Category:  log.CategorySignal,
		Sender:    msg.Sender,
		Signal:    se,
	})
}

func (d *Dispatcher) debugLog(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
