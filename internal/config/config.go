// Package config loads the settings shared by the connman binaries from
// an optional YAML file and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/dispatch"
	"github.com/connman-go/connman/pkg/transport"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings.
type Config struct {
	// Bus is "system" or "session".
	Bus         string        `yaml:"bus"`
	Destination string        `yaml:"destination"`
	CallTimeout time.Duration `yaml:"call_timeout"`

	// SubscriberBuffer is the channel capacity of each subscriber.
	SubscriberBuffer int `yaml:"subscriber_buffer"`

	// CaptureFile, when set, receives a CBOR capture of the bus traffic.
	CaptureFile string `yaml:"capture_file"`

	// Listen is the HTTP address of connman-monitor.
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bus:              string(transport.BusSystem),
		Destination:      connman.Destination,
		CallTimeout:      transport.DefaultCallTimeout,
		SubscriberBuffer: dispatch.DefaultBufferSize,
		Listen:           "127.0.0.1:9129",
		LogLevel:         "info",
	}
}

// Load reads path, fills unset fields from Default and validates the
// result. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch transport.Bus(c.Bus) {
	case transport.BusSystem, transport.BusSession:
	default:
		return fmt.Errorf("%w: bus %q (want system or session)", ErrInvalid, c.Bus)
	}
	if c.Destination == "" {
		return fmt.Errorf("%w: destination is empty", ErrInvalid)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("%w: call_timeout must be positive", ErrInvalid)
	}
	if c.SubscriberBuffer < 0 {
		return fmt.Errorf("%w: subscriber_buffer must not be negative", ErrInvalid)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}

// Transport returns the transport settings.
func (c Config) Transport() transport.Config {
	return transport.Config{
		Bus:         transport.Bus(c.Bus),
		Destination: c.Destination,
		CallTimeout: c.CallTimeout,
	}
}

// AddFlags registers flags for every setting on fs, plus -config.
func AddFlags(fs *flag.FlagSet) {
	d := Default()
	fs.String("config", "", "YAML configuration file")
	fs.String("bus", d.Bus, "Message bus: system or session")
	fs.String("destination", d.Destination, "ConnMan bus name")
	fs.Duration("call-timeout", d.CallTimeout, "Timeout for method calls")
	fs.Int("subscriber-buffer", d.SubscriberBuffer, "Pending notifications per subscriber")
	fs.String("capture", "", "Write a CBOR capture of bus traffic to this file")
	fs.String("listen", d.Listen, "HTTP listen address")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
}

// FromFlags loads the file named by -config and overrides it with the
// flags the user set explicitly.
func FromFlags(fs *flag.FlagSet) (Config, error) {
	path, err := fs.GetString("config")
	if err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}

	var errs []error
	set := func(name string, apply func() error) {
		if fs.Changed(name) {
			errs = append(errs, apply())
		}
	}
	set("bus", func() (err error) { cfg.Bus, err = fs.GetString("bus"); return })
	set("destination", func() (err error) { cfg.Destination, err = fs.GetString("destination"); return })
	set("call-timeout", func() (err error) { cfg.CallTimeout, err = fs.GetDuration("call-timeout"); return })
	set("subscriber-buffer", func() (err error) { cfg.SubscriberBuffer, err = fs.GetInt("subscriber-buffer"); return })
	set("capture", func() (err error) { cfg.CaptureFile, err = fs.GetString("capture"); return })
	set("listen", func() (err error) { cfg.Listen, err = fs.GetString("listen"); return })
	set("log-level", func() (err error) { cfg.LogLevel, err = fs.GetString("log-level"); return })
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
