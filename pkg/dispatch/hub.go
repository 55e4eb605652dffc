package dispatch

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultBufferSize is the number of notifications a subscriber may have
// pending before deliveries to it are dropped.
const DefaultBufferSize = 20

// Subscription is one subscriber's bounded delivery channel.
type Subscription struct {
	id     uuid.UUID
	ch     chan Notification
	closed atomic.Bool
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() uuid.UUID { return s.id }

// C returns the receive channel. It is closed by the hub after Close.
func (s *Subscription) C() <-chan Notification { return s.ch }

// Close marks the subscription gone. The hub removes it and closes its
// channel on the next publish. Close is safe to call more than once.
func (s *Subscription) Close() { s.closed.Store(true) }

// HubConfig configures a Hub.
type HubConfig struct {
	// Logger receives delivery failures. Nil discards them.
	Logger *slog.Logger

	// Metrics records deliveries and the subscriber count. Optional.
	Metrics *Metrics

	// BufferSize is the capacity of new subscriptions. Zero means
	// DefaultBufferSize.
	BufferSize int
}

// Hub fans notifications out to an ordered list of subscribers. All
// methods are safe for concurrent use.
type Hub struct {
	mu   sync.Mutex
	subs []*Subscription

	logger     *slog.Logger
	metrics    *Metrics
	bufferSize int
}

// NewHub creates an empty hub.
func NewHub(cfg HubConfig) *Hub {
	h := &Hub{
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		bufferSize: cfg.BufferSize,
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	if h.bufferSize <= 0 {
		h.bufferSize = DefaultBufferSize
	}
	return h
}

// Subscribe appends a subscriber with the configured capacity.
func (h *Hub) Subscribe() *Subscription {
	return h.SubscribeBuffered(h.bufferSize)
}

// SubscribeBuffered appends a subscriber whose channel holds n pending
// notifications. n == 0 gives an unbuffered channel that only receives
// while its reader is already waiting.
func (h *Hub) SubscribeBuffered(n int) *Subscription {
	if n < 0 {
		n = 0
	}
	s := &Subscription{id: uuid.New(), ch: make(chan Notification, n)}

	h.mu.Lock()
	h.subs = append(h.subs, s)
	count := len(h.subs)
	h.mu.Unlock()

	h.metrics.setSubscribers(count)
	return s
}

// Publish offers n to every subscriber in subscription order and returns
// how many accepted it. It never blocks. A full subscriber misses n and
// stays subscribed; a closed one is removed.
func (h *Hub) Publish(n Notification) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	kept := h.subs[:0]
	for _, s := range h.subs {
		if s.closed.Load() {
			h.logger.Warn("subscriber gone", "subscriber", s.id, "notification", n.ID)
			h.metrics.delivery(resultGone)
			close(s.ch)
			continue
		}
		kept = append(kept, s)

		select {
		case s.ch <- n:
			delivered++
			h.metrics.delivery(resultDelivered)
		default:
			h.logger.Warn("subscriber full, dropping notification",
				"subscriber", s.id, "notification", n.ID, "kind", n.Kind.String())
			h.metrics.delivery(resultDropped)
		}
	}
	clear(h.subs[len(kept):])
	h.subs = kept
	h.metrics.setSubscribers(len(h.subs))

	return delivered
}

// Len returns the number of subscribers, including closed ones not yet
// observed by Publish.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
