// Package signal classifies and decodes ConnMan D-Bus signals.
//
// Classification is two-level. The message's interface selects a Scope
// (manager, technology or service) and the member name selects a Kind
// within that scope. Both mappings are total with an explicit unknown
// arm. Decode then checks the argument list and produces a typed Event.
//
// Every message has exactly one Outcome:
//
//   - Decoded: a typed Event was produced.
//   - NotApplicable: the interface or member is not one this package
//     knows. Decode returns ErrNoMatch.
//   - Malformed: the signal is known but its arguments do not have the
//     documented shape, or a PropertyChanged names an unknown property.
//     Decode returns a *MalformedError.
//
// Decoding is pure; Decode may be called concurrently.
package signal
