package rudder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// ErrReentrantDispatch is returned when Dispatch is called while another
// dispatch on the same store is still in progress. This covers both a
// subscriber dispatching from its own notification and a second goroutine
// dispatching concurrently; neither is ever interleaved.
var ErrReentrantDispatch = errors.New("dispatch called during dispatch")

// Store holds the current state together with the root reducer and is the
// only way state changes: Dispatch runs an action through the middleware
// pipeline, the terminal applies the reducer, the result replaces the
// current state, and subscribers are notified synchronously in
// registration order with the post-dispatch snapshot.
//
// Example:
//
//	store := rudder.New(reducer).Seed(initial)
//	unsub := store.Subscribe(func(s Panel) { render(s) })
//	defer unsub()
//
//	if err := store.Dispatch(ctx, ChangeData{Data: "hello"}); err != nil {
//	    return err
//	}
type Store[S any] struct {
	reducer  Reducer[S]
	pipeline pipz.Chainable[*Request[S]]
	metrics  MetricsProvider

	current     atomic.Pointer[S]
	dispatching atomic.Bool

	mu        sync.Mutex
	listeners []listener[S]
	nextID    uint64
}

type listener[S any] struct {
	id uint64
	fn func(S)
}

// New creates a Store for the given root reducer.
//
// The initial state is the reducer's result for the zero value of S under
// the construction probe, which for a well-formed reducer is the zero
// value itself. Use Seed to supply a different starting state, or build
// the store from a Combined to start from per-field defaults.
//
// Pipeline options (With*) configure dispatch middleware. Instance
// configuration uses chainable methods before first use:
//
//	store := rudder.New(reducer,
//	    rudder.WithMiddleware(rudder.UseEffect[Panel]("log", logFn)),
//	).Seed(initial).Metrics(m)
func New[S any](reducer Reducer[S], opts ...Option[S]) *Store[S] {
	var terminal Terminal[S] = pipz.Apply(reduceName, func(_ context.Context, req *Request[S]) (*Request[S], error) {
		req.Current = reducer(req.Previous, req.Action)
		return req, nil
	})

	s := &Store[S]{
		reducer:  reducer,
		pipeline: buildPipeline(terminal, opts),
		metrics:  NoOpMetricsProvider{},
	}

	var zero S
	initial := reducer(zero, initAction{})
	s.current.Store(&initial)
	return s
}

// reduceName identifies the reducing terminal in pipeline errors.
const reduceName = "reduce"

// Seed replaces the store's state with initial. The seed is run through
// the root reducer under the construction probe, so a reducer that
// returns a fixed value on its default branch will clobber it; that is a
// reducer bug, not a Seed feature.
//
// Must be called before the first Dispatch or Subscribe.
func (s *Store[S]) Seed(initial S) *Store[S] {
	seeded := s.reducer(initial, initAction{})
	s.current.Store(&seeded)
	return s
}

// Metrics sets the metrics provider for this store.
// Must be called before the first Dispatch.
func (s *Store[S]) Metrics(m MetricsProvider) *Store[S] {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Current returns the current state snapshot.
// During subscriber notification this is always the post-dispatch state.
func (s *Store[S]) Current() S {
	return *s.current.Load()
}

// Dispatch submits an action for reduction.
//
// The action flows through the middleware pipeline; the terminal applies
// the root reducer. On success the result replaces the current state and
// every subscriber is notified, in registration order, on the caller's
// goroutine before Dispatch returns. On pipeline error the state is
// unchanged and the error is returned.
//
// Dispatch is deliberately not reentrant: a subscriber or middleware that
// dispatches while a dispatch is in progress gets ErrReentrantDispatch.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) error {
	if action == nil {
		return errors.New("nil action")
	}

	if !s.dispatching.CompareAndSwap(false, true) {
		capitan.Emit(ctx, StoreReentrantRejected,
			KeyAction.Field(action.Kind()),
		)
		return ErrReentrantDispatch
	}
	defer s.dispatching.Store(false)

	start := time.Now()
	prev := *s.current.Load()
	req := &Request[S]{Previous: prev, Current: prev, Action: action}

	req, err := s.pipeline.Process(ctx, req)
	if err != nil {
		s.metrics.OnDispatchFailure(action.Kind(), time.Since(start))
		capitan.Emit(ctx, StoreDispatchFailed,
			KeyAction.Field(action.Kind()),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("dispatch %s: %w", action.Kind(), err)
	}

	next := req.Current
	s.current.Store(&next)
	s.metrics.OnDispatch(req.Action.Kind(), time.Since(start))
	capitan.Emit(ctx, StoreDispatched,
		KeyAction.Field(req.Action.Kind()),
	)

	s.notify(next)
	return nil
}

// notify calls every subscriber with the post-dispatch snapshot.
// The listener slice is snapshotted so subscribers may subscribe or
// unsubscribe from within their callback.
func (s *Store[S]) notify(state S) {
	s.mu.Lock()
	fns := make([]func(S), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
	s.metrics.OnNotify(len(fns))
}

// Subscribe registers a listener invoked after every successful dispatch
// with the post-dispatch state. Listeners run in registration order.
// The returned function removes the listener and is safe to call more
// than once.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener[S]{id: id, fn: fn})
	count := len(s.listeners)
	s.mu.Unlock()

	capitan.Emit(context.Background(), StoreSubscribed,
		KeySubscribers.Field(count),
	)

	return func() {
		s.mu.Lock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
		count := len(s.listeners)
		s.mu.Unlock()

		capitan.Emit(context.Background(), StoreUnsubscribed,
			KeySubscribers.Field(count),
		)
	}
}

// Subscribers returns the number of registered listeners.
func (s *Store[S]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
