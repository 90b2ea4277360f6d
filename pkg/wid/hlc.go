package wid

import (
	"fmt"
	"iter"
	"strings"
)

// HLCState is the persistable clock state of an HLCGenerator.
type HLCState struct {
	PT int64
	LC int64
}

// HLCGenerator produces strictly increasing HLC-WIDs per node using a
// hybrid logical clock: physical time plus a logical counter, merged with
// remote observations so that causally related identifiers from different
// nodes sort consistently even under clock skew.
//
// Like Generator, an instance is single-owner; independent instances (one
// per node or process) need no coordination beyond periodic Observe calls.
type HLCGenerator struct {
	w     int
	z     int
	unit  TimeUnit
	node  string
	maxLC int64
	pt    int64
	lc    int64

	cachedTick int64
	cachedTS   string
}

// NewHLC creates an HLC-WID generator in sec mode.
func NewHLC(node string, w, z int) (*HLCGenerator, error) {
	return NewHLCWithTimeUnit(node, w, z, Sec)
}

// NewHLCWithTimeUnit creates an HLC-WID generator with a chosen time unit.
// The node name must be non-empty and contain only [A-Za-z0-9_].
func NewHLCWithTimeUnit(node string, w, z int, unit TimeUnit) (*HLCGenerator, error) {
	if w <= 0 {
		return nil, ErrInvalidW
	}
	if z < 0 {
		return nil, ErrInvalidZ
	}
	if !isValidNode(node) {
		return nil, ErrInvalidNode
	}
	return &HLCGenerator{
		w:          w,
		z:          z,
		unit:       unit,
		node:       node,
		maxLC:      pow10(w) - 1,
		cachedTick: -1,
	}, nil
}

// Next generates the next HLC-WID, advancing the clock: if physical time
// moved forward the logical counter resets, otherwise it increments.
func (g *HLCGenerator) Next() string {
	now := Now(g.unit)
	if now > g.pt {
		g.pt = now
		g.lc = 0
	} else {
		g.lc++
	}
	g.rollover()

	var b strings.Builder
	b.WriteString(g.tsForTick(g.pt))
	b.WriteByte('.')
	fmt.Fprintf(&b, "%0*d", g.w, g.lc)
	b.WriteByte('Z')
	b.WriteByte('-')
	b.WriteString(g.node)
	if g.z > 0 {
		b.WriteByte('-')
		b.WriteString(randPad(g.z))
	}
	return b.String()
}

// Observe merges a remote (pt, lc) snapshot into the local clock. After a
// successful call the local clock is causally ahead of both its own prior
// state and the observed remote state.
func (g *HLCGenerator) Observe(remotePT, remoteLC int64) error {
	if remotePT < 0 || remoteLC < 0 {
		return ErrInvalidRemoteClock
	}

	now := Now(g.unit)
	newPT := max(now, g.pt, remotePT)

	switch {
	case newPT == g.pt && newPT == remotePT:
		// Both sides tied at the winning time; exceed both counters.
		g.lc = max(g.lc, remoteLC) + 1
	case newPT == g.pt:
		g.lc++
	case newPT == remotePT:
		g.lc = remoteLC + 1
	default:
		// Fresh wall-clock read won outright.
		g.lc = 0
	}

	g.pt = newPT
	g.rollover()
	return nil
}

// NextN generates n HLC-WIDs.
func (g *HLCGenerator) NextN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// All returns an infinite lazy sequence of HLC-WIDs.
func (g *HLCGenerator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for yield(g.Next()) {
		}
	}
}

// State returns the current (pt, lc) pair for persistence or for exchange
// with other nodes via Observe.
func (g *HLCGenerator) State() HLCState {
	return HLCState{PT: g.pt, LC: g.lc}
}

// RestoreState resumes a previously persisted clock. Negative values are
// rejected the same way Observe rejects them.
func (g *HLCGenerator) RestoreState(pt, lc int64) error {
	if pt < 0 || lc < 0 {
		return ErrInvalidRemoteClock
	}
	g.pt = pt
	g.lc = lc
	return nil
}

// Node returns the node name.
func (g *HLCGenerator) Node() string { return g.node }

// TimeUnit returns the active time unit.
func (g *HLCGenerator) TimeUnit() TimeUnit { return g.unit }

// rollover bumps the physical tick when the counter would overflow its
// W-digit field.
func (g *HLCGenerator) rollover() {
	if g.lc > g.maxLC {
		g.pt++
		g.lc = 0
	}
}

func (g *HLCGenerator) tsForTick(tick int64) string {
	if tick != g.cachedTick {
		g.cachedTick = tick
		g.cachedTS = formatTick(g.unit, tick)
	}
	return g.cachedTS
}
