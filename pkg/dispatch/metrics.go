package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/connman-go/connman/pkg/signal"
)

// Delivery results recorded in connman_deliveries_total.
const (
	resultDelivered = "delivered"
	resultDropped   = "dropped"
	resultGone      = "gone"
)

// Metrics holds the dispatch counters. A nil *Metrics records nothing.
type Metrics struct {
	signals     *prometheus.CounterVec
	deliveries  *prometheus.CounterVec
	subscribers prometheus.Gauge
}

// NewMetrics creates the dispatch metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connman",
			Name:      "signals_total",
			Help:      "Signals received, by scope and classification outcome.",
		}, []string{"scope", "outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connman",
			Name:      "deliveries_total",
			Help:      "Per-subscriber delivery attempts, by result.",
		}, []string{"result"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "connman",
			Name:      "subscribers",
			Help:      "Current number of subscribers.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.signals, m.deliveries, m.subscribers} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) signal(scope signal.Scope, outcome signal.Outcome) {
	if m == nil {
		return
	}
	m.signals.WithLabelValues(scope.String(), outcome.String()).Inc()
}

func (m *Metrics) delivery(result string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(result).Inc()
}

func (m *Metrics) setSubscribers(n int) {
	if m == nil {
		return
	}
	m.subscribers.Set(float64(n))
}
