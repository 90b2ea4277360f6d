package statestore

import (
	"errors"
	"testing"

	"github.com/waldiez/wid/pkg/wid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load("absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := State{Tick: 1700000000, Seq: 42}
	if err := s.Store("gen1", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("gen1")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// Negative sentinel seq survives the codec.
	want = State{Tick: 0, Seq: -1}
	if err := s.Store("gen1", want); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Load("gen1"); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSwapConflict(t *testing.T) {
	s := openTestStore(t)
	if err := s.Store("g", State{Tick: 10, Seq: 1}); err != nil {
		t.Fatal(err)
	}

	stale := State{Tick: 10, Seq: 0}
	if err := s.Swap("g", &stale, State{Tick: 10, Seq: 2}); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}

	cur := State{Tick: 10, Seq: 1}
	if err := s.Swap("g", &cur, State{Tick: 10, Seq: 2}); err != nil {
		t.Fatalf("swap with current state: %v", err)
	}
	if got, _ := s.Load("g"); got != (State{Tick: 10, Seq: 2}) {
		t.Fatalf("state after swap: %+v", got)
	}

	// Expect-absent fails once state exists.
	if err := s.Swap("g", nil, State{}); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict for expect-absent, got %v", err)
	}
}

func TestSwapExpectAbsent(t *testing.T) {
	s := openTestStore(t)
	if err := s.Swap("fresh", nil, State{Tick: 5, Seq: 0}); err != nil {
		t.Fatalf("expect-absent swap: %v", err)
	}
	if got, _ := s.Load("fresh"); got != (State{Tick: 5, Seq: 0}) {
		t.Fatalf("state: %+v", got)
	}
}

func TestNextPersistsOrdering(t *testing.T) {
	s := openTestStore(t)

	g1, _ := wid.New(4, 0)
	a, err := s.Next(g1, "seq")
	if err != nil {
		t.Fatal(err)
	}

	// A separate generator instance resumes from the stored state, as a
	// restarted process would.
	g2, _ := wid.New(4, 0)
	b, err := s.Next(g2, "seq")
	if err != nil {
		t.Fatal(err)
	}
	if b <= a {
		t.Fatalf("ordering lost across instances: %q then %q", a, b)
	}

	st, err := s.Load("seq")
	if err != nil {
		t.Fatal(err)
	}
	tick, seq := g2.State()
	if st.Tick != tick || st.Seq != seq {
		t.Fatalf("stored %+v, generator (%d, %d)", st, tick, seq)
	}
}

func TestNextHLCPersistsClock(t *testing.T) {
	s := openTestStore(t)

	g1, _ := wid.NewHLC("node01", 4, 0)
	a, err := s.NextHLC(g1, "hlc")
	if err != nil {
		t.Fatal(err)
	}
	g2, _ := wid.NewHLC("node01", 4, 0)
	b, err := s.NextHLC(g2, "hlc")
	if err != nil {
		t.Fatal(err)
	}
	if b <= a {
		t.Fatalf("ordering lost across instances: %q then %q", a, b)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	if err := s.Store("gone", State{Tick: 1, Seq: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("never-existed"); err != nil {
		t.Fatal(err)
	}
}
