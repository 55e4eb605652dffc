// Package transport connects the ConnMan bindings to a real D-Bus.
//
// Conn wraps a godbus connection. Its Call method implements
// connman.Caller, applying a default call timeout, and Signals turns the
// connection's ConnMan signals into signal.Message values in arrival
// order. FromDBus and ToDBus convert between godbus's Go representation
// and variant.Value.
//
// Every call, reply and received signal can be mirrored to a protocol
// capture log (package log).
package transport
