// Command connmanctl is an interactive shell for ConnMan.
//
// Usage:
//
//	connmanctl [flags]
//
// Flags:
//
//	--config string          YAML configuration file
//	--bus string             Message bus: system or session (default "system")
//	--call-timeout duration  Timeout for method calls (default 5s)
//	--capture string         Write a CBOR capture of bus traffic to this file
//	--log-level string       Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to the system ConnMan
//	connmanctl
//
//	# Talk to a test daemon on the session bus and record the traffic
//	connmanctl --bus session --capture /tmp/connmanctl.clog
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/connman-go/connman/cmd/connmanctl/interactive"
	"github.com/connman-go/connman/internal/config"
	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "connmanctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("connmanctl", flag.ContinueOnError)
	config.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.FromFlags(fs)
	if err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

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

	tcfg := cfg.Transport()
	tcfg.Logger = logger
	tcfg.Protocol = protocol
	tcfg.SessionID = sessionID
	conn, err := transport.Dial(ctx, tcfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	sh := interactive.New(interactive.Config{
		Caller:     conn,
		Signals:    conn.Signals,
		Logger:     logger,
		Protocol:   protocol,
		BufferSize: cfg.SubscriberBuffer,
	}, os.Stdout)
	return sh.Run(ctx)
}
