package store

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Reducer is a pure, total function folding an action into a state.
//
// Reducers never perform I/O, never block, and never fail. An action a
// reducer does not recognize is a no-op: return the input state unchanged.
// When several reducers are registered, each receives the state produced by
// the previous one, and all see the same action.
type Reducer[S, A any] func(S, A) S

// Middleware inspects an action before reduction and may substitute it.
//
// Returning (_, false) passes the action through unchanged. Returning
// (a2, true) replaces the action with a2 for the remainder of the pipeline:
// later middlewares and the reducer chain both see a2, and History records
// a2, not the original.
//
// The store handle is provided so a middleware can schedule follow-up work
// that dispatches later (via DispatchAsync or its own goroutine). The
// middleware itself runs while the store's write lock is held — calling
// Dispatch, State, or History synchronously from inside a middleware
// self-deadlocks.
type Middleware[S, A any] func(action A, st *Store[S, A]) (A, bool)

// Subscriber is notified with the committed state after every dispatch.
//
// A panic inside a subscriber is contained: it is logged, the already
// committed state is unaffected, and later subscribers still run.
// Subscribers run inside the locked region; the same no-synchronous-Dispatch
// rule as for middlewares applies.
type Subscriber[S any] func(S)

// Store owns a state value, an append-only action history, and the ordered
// reducer/middleware/subscriber chains. Dispatch is its sole mutation entry
// point.
//
// Thread-safety model:
//   - Dispatch / DispatchAsync: safe from any goroutine
//   - State / History: safe from any goroutine (read lock)
//   - AddReducer / AddMiddleware / AddSubscriber: setup only, before any
//     concurrent Dispatch begins
type Store[S, A any] struct {
	mu          sync.RWMutex
	state       S
	history     []A
	reducers    []Reducer[S, A]
	middlewares []Middleware[S, A]
	subscribers []Subscriber[S]
	logger      *slog.Logger
}

// Option configures a Store at construction.
type Option[S, A any] func(*Store[S, A])

// WithLogger sets the logger used for dispatch debug records and contained
// subscriber failures. Defaults to slog.Default().
func WithLogger[S, A any](l *slog.Logger) Option[S, A] {
	return func(s *Store[S, A]) {
		s.logger = l
	}
}

// New creates a Store holding the given initial state.
func New[S, A any](initial S, opts ...Option[S, A]) *Store[S, A] {
	s := &Store[S, A]{
		state:  initial,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddReducer appends a reducer to the fold chain. Chain order is
// registration order and never changes afterwards.
func (s *Store[S, A]) AddReducer(r Reducer[S, A]) *Store[S, A] {
	s.reducers = append(s.reducers, r)
	return s
}

// AddMiddleware appends a middleware to the chain. Chain order is
// registration order and never changes afterwards.
func (s *Store[S, A]) AddMiddleware(mw Middleware[S, A]) *Store[S, A] {
	s.middlewares = append(s.middlewares, mw)
	return s
}

// AddSubscriber appends a subscriber to the notification list. Notification
// order is registration order.
func (s *Store[S, A]) AddSubscriber(sub Subscriber[S]) *Store[S, A] {
	s.subscribers = append(s.subscribers, sub)
	return s
}

// Dispatch runs the full pipeline for one action and returns once the
// reducers, the history append, and every subscriber notification have
// completed. Asynchronous work scheduled by a middleware runs independently
// and reports back via its own later Dispatch call.
//
// The entire pipeline executes under one write-lock acquisition, so no
// concurrent caller ever observes a partially-applied reducer chain.
func (s *Store[S, A]) Dispatch(action A) {
	token := uuid.Must(uuid.NewV7()).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, mw := range s.middlewares {
		if next, ok := mw(action, s); ok {
			action = next
		}
	}

	for _, r := range s.reducers {
		s.state = r(s.state, action)
	}

	s.history = append(s.history, action)
	committed := s.state

	s.logger.Debug("dispatch committed",
		"token", token,
		"history_len", len(s.history))

	for i, sub := range s.subscribers {
		s.notify(i, sub, committed)
	}
}

// DispatchAsync dispatches the action from a detached goroutine and returns
// immediately. Semantically identical to Dispatch; it exists to make
// fire-and-forget call sites self-documenting, and it is the only safe way
// to dispatch from inside a middleware or subscriber.
func (s *Store[S, A]) DispatchAsync(action A) {
	go s.Dispatch(action)
}

// State returns a snapshot of the current committed state.
func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// History returns a read-only snapshot of the append-only action log, in
// commit order. The n-th entry is the action actually folded into state at
// the n-th dispatch, post middleware substitution.
func (s *Store[S, A]) History() []A {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]A, len(s.history))
	copy(out, s.history)
	return out
}

// notify runs one subscriber with panic containment. A panicking subscriber
// must not take down the dispatch or starve later subscribers.
func (s *Store[S, A]) notify(i int, sub Subscriber[S], state S) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("subscriber panicked", "index", i, "panic", r)
		}
	}()
	sub(state)
}
