// Package lifecycle tracks per-view request generations so that a load which has been
// superseded by a newer load for the same key is detected and its result discarded.
package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded reports that a newer request for the same key started before this one finished.
var ErrSuperseded = errors.New("lifecycle: request superseded")

// Store issues monotonically increasing generations per key.
type Store interface {
	Advance(ctx context.Context, key string) (uint64, error)
	Current(ctx context.Context, key string) (uint64, error)
}

// Releaser is implemented by stores that drop per-key state once every ticket
// issued for the key has finished.
type Releaser interface {
	Release(ctx context.Context, key string)
}

// Tracker hands out tickets and cancels in-process work that has been superseded.
type Tracker struct {
	store Store

	mu      sync.Mutex
	cancels map[string]inflight
}

type inflight struct {
	generation uint64
	cancel     context.CancelFunc
}

// NewTracker builds a tracker over store. A nil store falls back to an in-memory one.
func NewTracker(store Store) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Tracker{store: store, cancels: make(map[string]inflight)}
}

// Ticket is the start token of one request.
type Ticket struct {
	tracker    *Tracker
	key        string
	generation uint64
	cancel     context.CancelFunc
}

// Begin starts a new generation for key. The returned context is cancelled when a newer
// generation for the same key begins in this process or when the ticket finishes.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, *Ticket, error) {
	generation, err := t.store.Advance(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	runCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if previous, ok := t.cancels[key]; ok && previous.generation < generation {
		previous.cancel()
	}
	t.cancels[key] = inflight{generation: generation, cancel: cancel}
	t.mu.Unlock()

	return runCtx, &Ticket{tracker: t, key: key, generation: generation, cancel: cancel}, nil
}

// Generation returns the ticket's generation number.
func (tk *Ticket) Generation() uint64 {
	return tk.generation
}

// Finish releases the ticket and returns ErrSuperseded when the key has moved on.
func (tk *Ticket) Finish(ctx context.Context) error {
	defer tk.release(ctx)

	current, err := tk.tracker.store.Current(ctx, tk.key)
	if err != nil {
		return err
	}
	if current != tk.generation {
		return ErrSuperseded
	}
	return nil
}

func (tk *Ticket) release(ctx context.Context) {
	tk.cancel()
	t := tk.tracker
	t.mu.Lock()
	if entry, ok := t.cancels[tk.key]; ok && entry.generation == tk.generation {
		delete(t.cancels, tk.key)
	}
	t.mu.Unlock()
	if r, ok := t.store.(Releaser); ok {
		r.Release(ctx, tk.key)
	}
}

// MemoryStore keeps generations in process memory. A key is dropped once no
// ticket issued for it is still in flight.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string]*memoryEntry
}

type memoryEntry struct {
	generation uint64
	active     int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]*memoryEntry)}
}

// Advance increments and returns the generation for key.
func (s *MemoryStore) Advance(_ context.Context, key string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.keys[key]
	if !ok {
		entry = &memoryEntry{}
		s.keys[key] = entry
	}
	entry.generation++
	entry.active++
	return entry.generation, nil
}

// Current returns the latest generation for key.
func (s *MemoryStore) Current(_ context.Context, key string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.keys[key]; ok {
		return entry.generation, nil
	}
	return 0, nil
}

// Release marks one ticket for key as finished.
func (s *MemoryStore) Release(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.keys[key]
	if !ok {
		return
	}
	entry.active--
	if entry.active <= 0 {
		delete(s.keys, key)
	}
}

// Len reports how many keys are currently tracked.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
