package state

import (
	"log/slog"
	"slices"
	"sync"
)

// Listener observes every applied transition together with the state it
// produced. Listeners are called in transition order, outside the store
// lock; they may read the store but must not call Dispatch.
type Listener func(a Action, s State)

// Store is the single owner of client state. Transitions are applied one
// at a time, in the order Dispatch is called.
type Store struct {
	mu        sync.Mutex
	state     State
	bridge    *Bridge
	logger    *slog.Logger
	listeners map[int]Listener
	nextID    int
	applied   uint64

	// notified counts transitions whose listeners have returned. A
	// transition's listeners start only once every earlier one is done.
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	notified   uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBridge persists selected slices through b and seeds the initial
// state from it.
func WithBridge(b *Bridge) StoreOption {
	return func(s *Store) {
		s.bridge = b
	}
}

// WithStoreLogger sets the logger. Each dispatched transition is logged at
// debug level.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store holding Initial(), hydrated from the bridge if
// one is configured.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}
	s.state = Initial()
	if s.bridge != nil {
		s.state = s.bridge.Hydrate(s.state)
	}
	return s
}

// Dispatch applies a and notifies listeners.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	if s.bridge != nil {
		s.bridge.mirror(a, next)
	}
	s.logger.Debug("dispatch", "type", a.Type)
	seq, listeners := s.ticket()
	s.mu.Unlock()

	s.notify(seq, listeners, a, next)
}

// GetState returns the current state.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current session token, or "" when signed out.
func (s *Store) Token() string {
	return Token(s.GetState())
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// ResetGroup dispatches the reset transition of every slice in g, in
// table order.
func (s *Store) ResetGroup(g InvalidationGroup) {
	for _, a := range g.Actions() {
		s.Dispatch(a)
	}
}

// Teardown returns every slice to its default and removes every persisted
// key. It is idempotent. Listeners receive a single TeardownType action.
func (s *Store) Teardown() {
	s.mu.Lock()
	s.state = Initial()
	next := s.state
	if s.bridge != nil {
		s.bridge.Clear()
	}
	s.logger.Debug("teardown")
	seq, listeners := s.ticket()
	s.mu.Unlock()

	s.notify(seq, listeners, Action{Type: TeardownType}, next)
}

// ticket must be called with mu held. It numbers the transition just
// applied and snapshots the listeners in subscription order.
func (s *Store) ticket() (uint64, []Listener) {
	seq := s.applied
	s.applied++

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = s.listeners[id]
	}
	return seq, out
}

func (s *Store) notify(seq uint64, listeners []Listener, a Action, next State) {
	s.notifyMu.Lock()
	for s.notified != seq {
		s.notifyCond.Wait()
	}
	s.notifyMu.Unlock()

	defer func() {
		s.notifyMu.Lock()
		s.notified++
		s.notifyCond.Broadcast()
		s.notifyMu.Unlock()
	}()

	for _, l := range listeners {
		l(a, next)
	}
}
