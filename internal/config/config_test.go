package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connman-go/connman/pkg/transport"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.SubscriberBuffer)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
bus: session
call_timeout: 2s
capture_file: /tmp/monitor.clog
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "session", cfg.Bus)
	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
	assert.Equal(t, "/tmp/monitor.clog", cfg.CaptureFile)
	assert.Equal(t, "net.connman", cfg.Destination)
	assert.Equal(t, 20, cfg.SubscriberBuffer)

	tc := cfg.Transport()
	assert.Equal(t, transport.BusSession, tc.Bus)
	assert.Equal(t, 2*time.Second, tc.CallTimeout)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown bus", "bus: starter\n"},
		{"unknown key", "buss: system\n"},
		{"zero timeout", "call_timeout: 0s\n"},
		{"negative buffer", "subscriber_buffer: -1\n"},
		{"bad level", "log_level: loud\n"},
		{"bad yaml", "bus: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := Config{LogLevel: in}.SlogLevel()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFromFlagsOverridesFile(t *testing.T) {
	path := writeConfig(t, "bus: session\nlisten: 0.0.0.0:8080\nlog_level: warn\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--log-level", "debug", "--subscriber-buffer", "5"}))

	cfg, err := FromFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, "session", cfg.Bus, "file value kept")
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen, "file value kept")
	assert.Equal(t, "debug", cfg.LogLevel, "flag overrides file")
	assert.Equal(t, 5, cfg.SubscriberBuffer)
}

func TestFromFlagsValidates(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--bus", "user"}))

	_, err := FromFlags(fs)
	assert.ErrorIs(t, err, ErrInvalid)
}
