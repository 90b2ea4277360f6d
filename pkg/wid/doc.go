// Package wid provides sortable, human-readable, collision-resistant
// string identifiers for distributed deployments.
//
// # Format
//
//	WID     ::= YYYYMMDD "T" HHMMSS[mmm] "." seq(W digits) "Z" [ "-" pad(Z hex) ]
//	HLC-WID ::= YYYYMMDD "T" HHMMSS[mmm] "." lc(W digits) "Z" "-" node [ "-" pad(Z hex) ]
//
// The timestamp is UTC; the millisecond block is present only in Ms mode.
// Because every field is fixed-width and zero-padded, byte-wise string
// comparison preserves chronological order.
//
// # Monotonicity
//
// Generator guarantees strictly increasing identifiers per instance:
//   - If the system clock regresses, it pins to the last seen tick and
//     advances the sequence instead of going backwards.
//   - If the sequence would overflow its W-digit field within one tick,
//     the tick is bumped by one unit and the sequence resets.
//
// HLCGenerator additionally merges remote (pt, lc) observations so that
// identifiers from independent nodes sort in an order consistent with
// causality (hybrid logical clock).
//
// Generators are single-owner state machines; wrap calls in a mutex if
// one instance must be shared across goroutines.
//
// Usage:
//
//	g, _ := wid.New(4, 6)
//	id := g.Next() // e.g. "20260212T091530.0000Z-a3f91c"
package wid
