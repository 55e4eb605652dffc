// Command connman-monitor streams decoded ConnMan signals to websocket
// clients and exports dispatch metrics.
//
// Usage:
//
//	connman-monitor [flags]
//
// Flags:
//
//	--config string             YAML configuration file
//	--bus string                Message bus: system or session (default "system")
//	--listen string             HTTP listen address (default "127.0.0.1:9129")
//	--subscriber-buffer int     Pending notifications per client (default 20)
//	--capture string            Write a CBOR capture of received signals to this file
//	--replay string             Replay signals from a capture file instead of the bus
//	--log-level string          Log level: debug, info, warn, error (default "info")
//
// Endpoints:
//
//	/events   websocket, one JSON notification per text message
//	/metrics  Prometheus metrics
//	/healthz  200 while the signal source is running
//
// Examples:
//
//	# Monitor the system bus
//	connman-monitor --listen :9129
//
//	# Replay a capture at full speed
//	connman-monitor --replay /var/log/connman/monitor.clog --log-level debug
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	flag "github.com/spf13/pflag"

	"github.com/connman-go/connman/internal/config"
	"github.com/connman-go/connman/pkg/dispatch"
	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/signal"
	"github.com/connman-go/connman/pkg/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "connman-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("connman-monitor", flag.ContinueOnError)
	config.AddFlags(fs)
	replay := fs.String("replay", "", "Replay signals from a capture file instead of the bus")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.FromFlags(fs)
	if err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := dispatch.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	sessionID := uuid.NewString()
	var protocol log.Logger
	if cfg.CaptureFile != "" {
		fl, err := log.NewSessionLogger(cfg.CaptureFile, sessionID)
		if err != nil {
			return fmt.Errorf("open capture: %w", err)
		}
		defer fl.Close()
		protocol = fl
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d := dispatch.New(dispatch.Config{
		Logger:     logger,
		Protocol:   protocol,
		SessionID:  sessionID,
		Metrics:    metrics,
		BufferSize: cfg.SubscriberBuffer,
	})

	var src <-chan signal.Message
	if *replay != "" {
		src, err = replaySource(ctx, *replay, logger)
	} else {
		src, err = busSource(ctx, cfg, sessionID, logger)
	}
	if err != nil {
		return err
	}

	srv := newServer(d, reg, logger)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = httpServer.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "session", sessionID)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}()

	srv.ready.Store(true)
	err = d.Run(ctx, src)
	srv.ready.Store(false)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err == nil && *replay != "" {
		logger.Info("replay finished, serving until interrupted")
		<-ctx.Done()
	}
	return err
}

func busSource(ctx context.Context, cfg config.Config, sessionID string, logger *slog.Logger) (<-chan signal.Message, error) {
	tcfg := cfg.Transport()
	tcfg.Logger = logger
	tcfg.SessionID = sessionID
	conn, err := transport.Dial(ctx, tcfg)
	if err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	return conn.Signals(ctx)
}

func replaySource(ctx context.Context, path string, logger *slog.Logger) (<-chan signal.Message, error) {
	r, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	out := make(chan signal.Message)
	go func() {
		defer close(out)
		defer r.Close()
		if err := dispatch.Replay(ctx, r, out); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("replay stopped", "path", path, "error", err)
		}
	}()
	return out, nil
}
