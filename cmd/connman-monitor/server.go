package main

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/connman-go/connman/pkg/dispatch"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// server exposes the dispatcher over HTTP.
type server struct {
	dispatcher *dispatch.Dispatcher
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	upgrader   websocket.Upgrader

	// ready is set while the signal source is running.
	ready atomic.Bool
}

func newServer(d *dispatch.Dispatcher, g prometheus.Gatherer, logger *slog.Logger) *server {
	return &server{
		dispatcher: d,
		gatherer:   g,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		http.Error(w, "signal source not running", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleEvents streams notifications as JSON text messages, one hub
// subscription per client.
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sub := s.dispatcher.Subscribe()
	defer sub.Close()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	s.logger.Info("client connected", "remote", r.RemoteAddr, "subscriber", sub.ID())

	// Clients only send control frames; reading drives the pong handler
	// and notices the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			s.logger.Info("client disconnected", "remote", r.RemoteAddr, "subscriber", sub.ID())
			return
		case <-r.Context().Done():
			return
		case n, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(n); err != nil {
				s.logger.Warn("websocket write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
