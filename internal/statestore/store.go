package statestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/waldiez/wid/pkg/log"
	"github.com/waldiez/wid/pkg/wid"
)

var (
	// ErrNotFound is returned when no state exists under a name.
	ErrNotFound = errors.New("statestore: no state for name")
	// ErrConflict is returned by Swap when the stored state changed
	// since the caller read it.
	ErrConflict = errors.New("statestore: state changed concurrently")
	// ErrRetriesExhausted is returned when the swap retry budget runs out.
	ErrRetriesExhausted = errors.New("statestore: swap retries exhausted")
)

// maxSwapRetries bounds the load-generate-swap loop in Next/NextHLC.
const maxSwapRetries = 8

// State is one persisted clock pair: (lastTick, lastSeq) for plain
// generators, (pt, lc) for HLC generators.
type State struct {
	Tick int64
	Seq  int64
}

// Options configures the store.
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// Sync requests a WAL fsync on each write.
	Sync bool
	// Logger is optional.
	Logger log.Logger
}

// Store is a Pebble-backed map from generator name to State.
type Store struct {
	mu     sync.Mutex
	db     *pebble.DB
	writes *pebble.WriteOptions
	logger log.Logger
}

// Open creates or opens the store at opts.DataDir.
func Open(opts Options) (*Store, error) {
	if opts.DataDir == "" {
		return nil, errors.New("statestore: Options.DataDir is required")
	}
	db, err := pebble.Open(opts.DataDir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("statestore: open %s: %w", opts.DataDir, err)
	}
	writes := pebble.NoSync
	if opts.Sync {
		writes = pebble.Sync
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger(log.WithLevel(log.FatalLevel))
	}
	logger.Debug("state store opened", log.String("data_dir", opts.DataDir))
	return &Store{db: db, writes: writes, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the state stored under name, or ErrNotFound.
func (s *Store) Load(name string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(name)
}

func (s *Store) load(name string) (State, error) {
	v, closer, err := s.db.Get(stateKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return State{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return State{}, err
	}
	st, ok := decodeState(v)
	_ = closer.Close()
	if !ok {
		return State{}, fmt.Errorf("statestore: corrupt state record for %q", name)
	}
	return st, nil
}

// Store unconditionally writes the state under name.
func (s *Store) Store(name string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Set(stateKey(name), encodeState(st), s.writes)
}

// Delete removes the state under name. Deleting a missing name is not an
// error.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(stateKey(name), s.writes)
}

// Swap writes next under name only if the stored state still equals prev.
// A nil prev asserts that no state exists yet. On mismatch it returns
// ErrConflict and leaves the stored state untouched.
func (s *Store) Swap(name string, prev *State, next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(name)
	switch {
	case errors.Is(err, ErrNotFound):
		if prev != nil {
			return fmt.Errorf("%w: %q was deleted", ErrConflict, name)
		}
	case err != nil:
		return err
	default:
		if prev == nil || cur != *prev {
			return fmt.Errorf("%w: %q", ErrConflict, name)
		}
	}
	return s.db.Set(stateKey(name), encodeState(next), s.writes)
}

// Next restores g from the state stored under name, generates one WID,
// and swaps the advanced state back in. Conflicts are retried a bounded
// number of times before ErrRetriesExhausted.
func (s *Store) Next(g *wid.Generator, name string) (string, error) {
	for i := 0; i < maxSwapRetries; i++ {
		var prev *State
		cur, err := s.Load(name)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return "", err
		default:
			g.RestoreState(cur.Tick, cur.Seq)
			prev = &cur
		}

		id := g.Next()
		tick, seq := g.State()
		err = s.Swap(name, prev, State{Tick: tick, Seq: seq})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrConflict) {
			return "", err
		}
		s.logger.Debug("swap conflict, retrying", log.String("name", name), log.Int("attempt", i+1))
	}
	return "", fmt.Errorf("%w: %q", ErrRetriesExhausted, name)
}

// NextHLC is Next for HLC generators, persisting the (pt, lc) pair.
func (s *Store) NextHLC(g *wid.HLCGenerator, name string) (string, error) {
	for i := 0; i < maxSwapRetries; i++ {
		var prev *State
		cur, err := s.Load(name)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return "", err
		default:
			if err := g.RestoreState(cur.Tick, cur.Seq); err != nil {
				return "", err
			}
			prev = &cur
		}

		id := g.Next()
		st := g.State()
		err = s.Swap(name, prev, State{Tick: st.PT, Seq: st.LC})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrConflict) {
			return "", err
		}
		s.logger.Debug("swap conflict, retrying", log.String("name", name), log.Int("attempt", i+1))
	}
	return "", fmt.Errorf("%w: %q", ErrRetriesExhausted, name)
}

func stateKey(name string) []byte {
	return append([]byte("state/"), name...)
}

// State records are two big-endian int64s: tick then seq.
func encodeState(st State) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], uint64(st.Tick))
	binary.BigEndian.PutUint64(b[8:16], uint64(st.Seq))
	return b
}

func decodeState(b []byte) (State, bool) {
	if len(b) != 16 {
		return State{}, false
	}
	return State{
		Tick: int64(binary.BigEndian.Uint64(b[0:8])),
		Seq:  int64(binary.BigEndian.Uint64(b[8:16])),
	}, true
}
