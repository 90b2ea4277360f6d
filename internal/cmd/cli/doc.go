// Package cli assembles the wid command tree: identifier generation,
// validation and inspection, streaming, and manifest packing. Defaults for
// generator parameters come from the loaded configuration; every command
// can override them with flags.
package cli
