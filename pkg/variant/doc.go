// Package variant defines the dynamically typed value model used on the
// ConnMan D-Bus API.
//
// ConnMan exchanges property snapshots as a{sv} dictionaries and signals
// as argument lists whose element types are only known at runtime. This
// package represents every such value as an immutable tagged union,
// Value, so that the decoders in higher layers can switch exhaustively on
// a closed set of kinds instead of inspecting arbitrary Go types.
//
// # Kinds
//
//   - Bool, Uint8, Uint16, Uint32, Uint64, String, ObjectPath: scalars
//   - Array: an ordered sequence (D-Bus arrays and structs)
//   - Dict: an ordered string-keyed dictionary (a{sv})
//   - Variant: a wrapper around exactly one inner value
//
// Accessors see through Variant wrappers, so a property value delivered
// as v(s) can be read with AsString directly. There is no implicit
// numeric widening: a Uint8 is not readable as a Uint16.
//
// # Property maps
//
// Map is a snapshot of one entity's properties at one instant. Maps are
// treated as immutable once built; a new snapshot requires a new fetch.
//
// # Capture encoding
//
// Values encode to CBOR as a two element array [kind, payload] so raw
// snapshots and signals can be written to capture files and replayed
// without losing the wire types.
package variant
