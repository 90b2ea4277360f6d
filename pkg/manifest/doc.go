// Package manifest implements the SYNAPSE manifest container: a small
// self-describing binary format that attaches versioned, hash-checked
// metadata to an opaque payload.
//
// Embedded layout:
//
//	magic "SYNM" (4B) | version (2B BE) | manifestLen (4B BE) | manifest JSON | payload
//
// The payload length is never stored; it is whatever follows the manifest
// bytes. Decode rejects undersized buffers, bad magic, oversized declared
// manifest lengths, and truncated manifest bodies before any byte reaches
// the JSON parser.
//
// A File can alternatively be saved in sidecar mode: the raw payload at
// the given path and the manifest JSON next to it with a .manifest.json
// suffix. Load transparently detects either mode and falls back to
// synthesizing a manifest for bare pre-existing files.
package manifest
