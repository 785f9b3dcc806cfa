// Package rudder provides a unidirectional state container: a single store
// holds the current state, pure reducers compute the next state from
// dispatched actions, and subscribers are notified synchronously after
// every change.
//
// # Store
//
// A Store is constructed from a root reducer and dispatches actions
// through it:
//
//	UI event → Dispatch(action) → reducer → state replaced → subscribers
//
// Dispatch is synchronous and deliberately not reentrant: dispatching
// from a subscriber or from middleware returns ErrReentrantDispatch
// instead of interleaving updates.
//
// # Reducers
//
// A Reducer is a pure function over (state, action). Reducers must return
// their input unchanged for any action they do not recognize; that
// identity contract is what makes them composable, and it is also how
// seed state survives the store's construction probe.
//
// Per-field reducers compose with Combine:
//
//	type Panel struct {
//	    Data    string
//	    Success bool
//	    Renders int
//	}
//
//	root := rudder.Combine(
//	    rudder.Field("", getData, setData, dataReducer),
//	    rudder.Field(false, getSuccess, setSuccess, successReducer),
//	    rudder.Field(0, getRenders, setRenders, renderReducer),
//	)
//	store := root.New()
//
// Each field reducer sees every action against its own field and supplies
// its own default; the combinator only reassembles.
//
// # Middleware
//
// Dispatches flow through a pipz pipeline whose terminal applies the
// reducer. Options wrap the pipeline:
//
//	store := rudder.New(reducer,
//	    rudder.WithMiddleware(
//	        rudder.UseEffect[Panel]("audit", auditFn),
//	        rudder.UseFilter[Panel]("gate", allowFn, processor),
//	    ),
//	)
//
// A middleware error aborts the dispatch with state unchanged.
//
// # Pumps and feeds
//
// External sources drive dispatches through a Pump:
//
//	Feed → Decode → Validate → Wrap → Dispatch
//
// The Feed interface abstracts byte sources. The core package provides
// ChannelFeed for testing and FileFeed built on fsnotify. Remote feeds
// live in pkg/:
//
//   - pkg/redis: Redis keyspace notifications
//   - pkg/nats: NATS JetStream KV
//
// Feed bursts are debounced so only the latest payload dispatches; a
// payload that fails to decode or validate leaves the store untouched
// and marks the pump degraded while it keeps watching.
//
// # Connected views
//
// pkg/tui bridges a store to a bubbletea program: state maps to props,
// key events map to actions, and the pure view re-renders only when the
// derived props change.
//
// # Observability
//
// Store and pump lifecycle events are emitted as capitan signals; hook
// them to bridge into the host's logger or metrics:
//
//	capitan.Hook(rudder.StoreDispatched, func(_ context.Context, e *capitan.Event) {
//	    kind, _ := rudder.KeyAction.From(e)
//	    log.Printf("dispatched %s", kind)
//	})
package rudder
