package wid

import (
	"errors"
	"strings"
	"testing"
)

func TestNewHLCRejectsInvalidParams(t *testing.T) {
	if _, err := NewHLC("bad-node", 4, 0); !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("want ErrInvalidNode, got %v", err)
	}
	if _, err := NewHLC("", 4, 0); !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("want ErrInvalidNode for empty node, got %v", err)
	}
	if _, err := NewHLC("node01", 0, 0); !errors.Is(err, ErrInvalidW) {
		t.Fatalf("want ErrInvalidW, got %v", err)
	}
}

func TestHLCMonotonic(t *testing.T) {
	g, err := NewHLC("node01", 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	prev := g.Next()
	for i := 0; i < 100; i++ {
		next := g.Next()
		if next <= prev {
			t.Fatalf("not strictly increasing: %q then %q", prev, next)
		}
		prev = next
	}
}

func TestHLCRoundTrip(t *testing.T) {
	g, _ := NewHLCWithTimeUnit("agent_7", 4, 6, Ms)
	s := g.Next()
	if !ValidateHLCWID(s, 4, 6, Ms) {
		t.Fatalf("generated HLC-WID fails validation: %q", s)
	}
	p, err := ParseHLCWID(s, 4, 6, Ms)
	if err != nil {
		t.Fatal(err)
	}
	if p.Node != "agent_7" {
		t.Fatalf("node = %q", p.Node)
	}
	if int64(p.LogicalCounter) != g.State().LC {
		t.Fatalf("counter %d, state %d", p.LogicalCounter, g.State().LC)
	}
	if !strings.Contains(s, "-agent_7") {
		t.Fatalf("node missing from %q", s)
	}
}

func TestObserveMergePrecedence(t *testing.T) {
	// Keep the wall clock below every value involved so the merge outcome
	// is decided by the local and remote pairs alone.
	pinClock(t, 5)

	newAt := func(pt, lc int64) *HLCGenerator {
		g, err := NewHLC("node01", 4, 0)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.RestoreState(pt, lc); err != nil {
			t.Fatal(err)
		}
		return g
	}

	// Tie: both sides at the winning time, counter must exceed both.
	g := newAt(10, 5)
	if err := g.Observe(10, 5); err != nil {
		t.Fatal(err)
	}
	if s := g.State(); s.PT != 10 || s.LC != 6 {
		t.Fatalf("tie case: %+v, want pt=10 lc=6", s)
	}

	// Equal physical times with a lower remote counter still land on
	// max(local, remote)+1.
	g = newAt(10, 5)
	if err := g.Observe(10, 2); err != nil {
		t.Fatal(err)
	}
	if s := g.State(); s.PT != 10 || s.LC != 6 {
		t.Fatalf("local-wins case: %+v, want pt=10 lc=6", s)
	}

	// Remote time wins: adopt it and advance past its counter.
	g = newAt(10, 5)
	if err := g.Observe(20, 3); err != nil {
		t.Fatal(err)
	}
	if s := g.State(); s.PT != 20 || s.LC != 4 {
		t.Fatalf("remote-wins case: %+v, want pt=20 lc=4", s)
	}

	// Wall clock wins outright: counter resets.
	Now = func(TimeUnit) int64 { return 50 }
	g = newAt(10, 5)
	if err := g.Observe(20, 3); err != nil {
		t.Fatal(err)
	}
	if s := g.State(); s.PT != 50 || s.LC != 0 {
		t.Fatalf("clock-wins case: %+v, want pt=50 lc=0", s)
	}
}

func TestObserveRejectsNegative(t *testing.T) {
	g, _ := NewHLC("node01", 4, 0)
	if err := g.Observe(-1, 0); !errors.Is(err, ErrInvalidRemoteClock) {
		t.Fatalf("want ErrInvalidRemoteClock, got %v", err)
	}
	if err := g.Observe(0, -1); !errors.Is(err, ErrInvalidRemoteClock) {
		t.Fatalf("want ErrInvalidRemoteClock, got %v", err)
	}
}

func TestHLCRestoreState(t *testing.T) {
	g, _ := NewHLC("node01", 4, 0)
	if err := g.RestoreState(-1, 0); !errors.Is(err, ErrInvalidRemoteClock) {
		t.Fatalf("want ErrInvalidRemoteClock, got %v", err)
	}
	if err := g.RestoreState(0, -1); !errors.Is(err, ErrInvalidRemoteClock) {
		t.Fatalf("want ErrInvalidRemoteClock, got %v", err)
	}
	if err := g.RestoreState(42, 7); err != nil {
		t.Fatal(err)
	}
	if s := g.State(); s.PT != 42 || s.LC != 7 {
		t.Fatalf("state = %+v", s)
	}
}

func TestHLCRollover(t *testing.T) {
	g, _ := NewHLC("n1", 1, 0) // maxLC = 9
	pinClock(t, 3000)

	prev := ""
	for i := 0; i < 25; i++ {
		s := g.Next()
		if s <= prev {
			t.Fatalf("not strictly increasing at %d: %q then %q", i, prev, s)
		}
		prev = s
		p, err := ParseHLCWID(s, 1, 0, Sec)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if p.LogicalCounter > 9 {
			t.Fatalf("counter %d exceeds 10^W-1", p.LogicalCounter)
		}
	}
	if s := g.State(); s.PT <= 3000 {
		t.Fatalf("pt = %d, expected synthetic bumps past 3000", s.PT)
	}
}

func TestHLCNextNAndAll(t *testing.T) {
	g, _ := NewHLC("node01", 4, 6)
	ids := g.NextN(3)
	if len(ids) != 3 || ids[0] >= ids[1] || ids[1] >= ids[2] {
		t.Fatalf("bad batch: %v", ids)
	}
	n := 0
	for range g.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("All yielded %d", n)
	}
}
