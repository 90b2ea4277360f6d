// Package statestore persists generator clock state in a Pebble database
// so identifier ordering survives process restarts.
//
// Generators themselves carry no persistence; callers that want a durable
// or shared sequence space load state, generate, and swap the new state
// back in. Swap is compare-and-swap shaped: it fails with ErrConflict when
// the stored state changed since it was read, and the Next/NextHLC helpers
// wrap the full load-generate-swap cycle in a bounded retry loop.
package statestore
