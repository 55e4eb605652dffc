// Package property extracts typed fields from ConnMan property snapshots.
//
// Every field of a snapshot is located by its exact wire name and then
// type-checked at the value level. Two failures are distinguished:
//
//   - NotPresent: the name is absent from the map
//   - Cast: the name is present but its value has the wrong kind, or a
//     string value failed to parse into the target type
//
// Errors carry the field name only. String values are never echoed, since
// some fields (passphrases, proxy URLs) are sensitive.
//
// # Strict extraction
//
// Extractor is the strict mode used for top-level entity fields. The
// Optional combinator turns "absent" into a nil result while still
// reporting Cast for a present but malformed value:
//
//	name, err := property.Optional(property.String)(m, "Name")
//
// # Sequences
//
// Sequence returns an Iter over an array or a flattened dict. The lenient
// composite decoders in package connman walk it pairwise with NextPair.
package property
