// Package log captures the D-Bus traffic between this process and
// ConnMan.
//
// It is separate from operational logging (slog). A capture is a complete,
// machine-readable trace of every signal received, every method call
// made and every reply, suitable for later replay through the dispatcher.
//
// # Basic Usage
//
//	// Console, for development
//	cfg.Protocol = log.NewSlogAdapter(slog.Default())
//
//	// Capture file
//	fl, _ := log.NewFileLogger("/var/log/connman/monitor.clog")
//	cfg.Protocol = fl
//
//	// Both
//	cfg.Protocol = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Capture files are a concatenation of CBOR-encoded Events with integer
// map keys, conventionally named *.clog. Files written by NewSessionLogger
// start with a tagged Header carrying the session ID. Reader streams them back,
// optionally through a Filter.
package log
