package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscriber is notified with a deep snapshot of the state after every
// dispatch. Subscribers run synchronously on the dispatching goroutine and
// must not dispatch re-entrantly.
type Subscriber func(AppState)

// Store owns the single AppState instance. All mutation goes through
// Dispatch, which applies the reducer atomically and then notifies
// subscribers (persistence, reminder rescheduling, views) with immutable
// snapshots.
type Store struct {
	mu          sync.Mutex
	state       AppState
	subscribers []Subscriber
	now         func() time.Time // injectable clock for deterministic tests
}

// NewStore creates a store holding the empty initial state.
func NewStore() *Store {
	return &Store{state: NewAppState(), now: time.Now}
}

// SetNowFunc overrides the clock used to anchor availability derivation.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// Subscribe registers a subscriber for future state changes.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies an action and returns a snapshot of the new state. The
// transition is atomic: one action is fully applied and observed before the
// next is processed.
func (s *Store) Dispatch(action Action) AppState {
	s.mu.Lock()
	s.state = Reduce(s.state, action, startOfDay(s.now()))
	snapshot := s.state.Clone()
	subscribers := append([]Subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	// Each subscriber gets its own clone; one mutating what it was handed
	// cannot alias into another's snapshot or the caller's.
	for _, fn := range subscribers {
		fn(snapshot.Clone())
	}
	return snapshot
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// NewGoalID generates an opaque unique goal identifier.
func NewGoalID() string {
	return uuid.NewString()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
