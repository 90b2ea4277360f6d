package wid

import (
	"fmt"
	"iter"
	"strings"
)

// Generator produces strictly increasing plain WIDs from a single-process
// clock source. It is a single-owner state machine: callers sharing one
// instance across goroutines must serialize access externally.
type Generator struct {
	w        int
	z        int
	unit     TimeUnit
	maxSeq   int64
	lastTick int64
	lastSeq  int64

	// Timestamp rendering is the expensive step and consecutive calls in
	// the same tick are the common case, so the rendered block is cached
	// per tick.
	cachedTick int64
	cachedTS   string
}

// New creates a plain WID generator in sec mode.
func New(w, z int) (*Generator, error) {
	return NewWithTimeUnit(w, z, Sec)
}

// NewWithTimeUnit creates a plain WID generator with a chosen time unit.
func NewWithTimeUnit(w, z int, unit TimeUnit) (*Generator, error) {
	if w <= 0 {
		return nil, ErrInvalidW
	}
	if z < 0 {
		return nil, ErrInvalidZ
	}
	return &Generator{
		w:          w,
		z:          z,
		unit:       unit,
		maxSeq:     pow10(w) - 1,
		lastSeq:    -1,
		cachedTick: -1,
	}, nil
}

// Default returns a generator with the default parameters (W=4, Z=6, sec).
func Default() *Generator {
	g, err := New(4, 6)
	if err != nil {
		panic(err) // unreachable: default parameters are valid
	}
	return g
}

// Next generates the next WID. Successive results from one instance are
// strictly increasing under lexicographic string order, even when the wall
// clock stalls or regresses between calls.
func (g *Generator) Next() string {
	now := Now(g.unit)
	tick := now
	if g.lastTick > tick {
		// Clock regressed (NTP step-back); pin to the last seen tick.
		tick = g.lastTick
	}

	var seq int64
	if tick == g.lastTick {
		seq = g.lastSeq + 1
	}
	if seq > g.maxSeq {
		// Sequence exhausted within this tick; trade timestamp fidelity
		// for strict ordering.
		tick++
		seq = 0
	}

	g.lastTick = tick
	g.lastSeq = seq

	var b strings.Builder
	b.WriteString(g.tsForTick(tick))
	b.WriteByte('.')
	fmt.Fprintf(&b, "%0*d", g.w, seq)
	b.WriteByte('Z')
	if g.z > 0 {
		b.WriteByte('-')
		b.WriteString(randPad(g.z))
	}
	return b.String()
}

// NextN generates n WIDs.
func (g *Generator) NextN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// All returns an infinite lazy sequence of WIDs. Iteration stops only when
// the caller breaks out of the range loop.
func (g *Generator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for yield(g.Next()) {
		}
	}
}

// State returns the generator's (lastTick, lastSeq) pair for persistence.
// lastSeq is -1 before the first generation.
func (g *Generator) State() (lastTick, lastSeq int64) {
	return g.lastTick, g.lastSeq
}

// RestoreState resumes a previously persisted generator so ordering
// survives process restarts.
func (g *Generator) RestoreState(lastTick, lastSeq int64) {
	g.lastTick = lastTick
	g.lastSeq = lastSeq
}

// TimeUnit returns the active time unit.
func (g *Generator) TimeUnit() TimeUnit { return g.unit }

func (g *Generator) tsForTick(tick int64) string {
	if tick != g.cachedTick {
		g.cachedTick = tick
		g.cachedTS = formatTick(g.unit, tick)
	}
	return g.cachedTS
}
