package rudder

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for feed processing.
const DefaultDebounce = 100 * time.Millisecond

// checkTags is the shared struct-tag validator for pump payloads.
var checkTags = validator.New()

// Pump connects a Feed to a Store. Each emission is decoded into a payload
// of type P, validated, wrapped into an action, and dispatched:
//
//	Feed → Decode → Validate → Wrap → Dispatch
//
// If any step fails the store keeps its previous state and the Pump enters
// a degraded state while continuing to watch for valid payloads. Rapid
// bursts from the feed are coalesced by a debounce window so only the
// latest payload is dispatched.
type Pump[S, P any] struct {
	store    *Store[S]
	feed     Feed
	wrap     func(P) Action
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec
	metrics  MetricsProvider
	validate bool

	state     atomic.Int32
	lastError atomic.Pointer[error]
	history   *errorRing

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive feed emissions
	changes <-chan []byte
}

// NewPump creates a Pump that dispatches feed payloads into a store.
//
// The feed emits raw bytes; bytes are decoded to P using the configured
// codec (JSON by default). Struct payloads are validated against their
// validator tags. wrap turns the payload into the action to dispatch and
// may return nil to drop a payload.
//
// Instance configuration uses chainable methods before calling Start:
//
//	pump := rudder.NewPump(store, rudder.NewFileFeed("data.txt"),
//	    func(text string) rudder.Action {
//	        return ChangeData{Data: text}
//	    },
//	).Codec(rudder.TextCodec{}).Debounce(200 * time.Millisecond)
func NewPump[S, P any](store *Store[S], feed Feed, wrap func(P) Action) *Pump[S, P] {
	var probe P
	p := &Pump[S, P]{
		store:    store,
		feed:     feed,
		wrap:     wrap,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    JSONCodec{},
		metrics:  NoOpMetricsProvider{},
		validate: reflect.ValueOf(&probe).Elem().Kind() == reflect.Struct,
	}
	p.state.Store(int32(StateIdle))
	return p
}

// Debounce sets the debounce duration for feed processing.
// Emissions arriving within this window are coalesced and only the
// latest is dispatched. Default: 100ms. Must be called before Start.
func (p *Pump[S, P]) Debounce(d time.Duration) *Pump[S, P] {
	p.debounce = d
	return p
}

// SyncMode enables synchronous processing for testing.
// In sync mode, emissions are processed only via Start and Process,
// without debouncing or goroutines, making tests deterministic.
// Must be called before Start.
func (p *Pump[S, P]) SyncMode() *Pump[S, P] {
	p.syncMode = true
	return p
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start.
func (p *Pump[S, P]) Clock(clock clockz.Clock) *Pump[S, P] {
	p.clock = clock
	return p
}

// Codec sets the codec for decoding feed bytes.
// Default: JSONCodec. Must be called before Start.
func (p *Pump[S, P]) Codec(codec Codec) *Pump[S, P] {
	p.codec = codec
	return p
}

// Metrics sets the metrics provider for this pump.
// Must be called before Start.
func (p *Pump[S, P]) Metrics(m MetricsProvider) *Pump[S, P] {
	if m != nil {
		p.metrics = m
	}
	return p
}

// History enables a bounded ring of recent failures, retrievable via
// Failures. Default: disabled. Must be called before Start.
func (p *Pump[S, P]) History(size int) *Pump[S, P] {
	p.history = newErrorRing(size)
	return p
}

// State returns the current lifecycle state of the Pump.
func (p *Pump[S, P]) State() PumpState {
	return PumpState(p.state.Load())
}

// LastError returns the last error encountered, or nil if the last
// payload was dispatched successfully.
func (p *Pump[S, P]) LastError() error {
	ptr := p.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Failures returns recent failures, oldest first.
// Empty unless History was configured.
func (p *Pump[S, P]) Failures() []PumpError {
	return p.history.all()
}

// Start begins watching the feed. It blocks until the first payload is
// processed (success or failure), then continues watching asynchronously.
//
// If the first payload fails, Start returns the error but keeps watching
// in the background for valid payloads.
//
// In sync mode, Start only processes the initial emission. Use Process to
// manually trigger processing of subsequent emissions.
//
// Start can only be called once. Subsequent calls return an error.
func (p *Pump[S, P]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return fmt.Errorf("pump already started")
	}
	p.started = true
	p.mu.Unlock()

	capitan.Emit(ctx, PumpStarted,
		KeyDebounce.Field(p.debounce),
	)

	changes, err := p.feed.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start feed: %w", err)
	}

	// Wait for first emission and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("feed closed before emitting initial value")
		}
		p.received(ctx)
		initialErr = p.process(ctx, raw)
	}

	if p.syncMode {
		// In sync mode, store channel for manual processing
		p.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go p.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next emission from the feed.
// This is only available in sync mode and is used for deterministic
// testing. Returns false if no emission is available or the feed closed.
func (p *Pump[S, P]) Process(ctx context.Context) bool {
	if !p.syncMode {
		return false
	}

	select {
	case raw, ok := <-p.changes:
		if !ok {
			return false
		}
		p.received(ctx)
		_ = p.process(ctx, raw) //nolint:errcheck // Errors stored via fail
		return true
	default:
		return false
	}
}

// received records a feed emission for signals and metrics.
func (p *Pump[S, P]) received(ctx context.Context) {
	capitan.Emit(ctx, PumpFeedReceived)
	p.metrics.OnFeedReceived()
}

// process decodes, validates, wraps, and dispatches a single emission.
func (p *Pump[S, P]) process(ctx context.Context, raw []byte) error {
	var payload P
	if err := p.codec.Unmarshal(raw, &payload); err != nil {
		p.fail(ctx, "decode", err)
		capitan.Emit(ctx, PumpDecodeFailed,
			KeyStage.Field("decode"),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if p.validate {
		if err := checkTags.Struct(payload); err != nil {
			p.fail(ctx, "validate", err)
			capitan.Emit(ctx, PumpValidationFailed,
				KeyStage.Field("validate"),
				KeyError.Field(err.Error()),
			)
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	action := p.wrap(payload)
	if action == nil {
		// Wrap dropped the payload; not a failure, not a dispatch.
		return nil
	}

	if err := p.store.Dispatch(ctx, action); err != nil {
		p.fail(ctx, "dispatch", err)
		capitan.Emit(ctx, PumpDispatchFailed,
			KeyStage.Field("dispatch"),
			KeyAction.Field(action.Kind()),
			KeyError.Field(err.Error()),
		)
		return err
	}

	p.lastError.Store(nil)
	p.transition(ctx, StateRunning)
	capitan.Emit(ctx, PumpDispatched,
		KeyAction.Field(action.Kind()),
	)
	return nil
}

// fail records a stage failure and moves the pump to degraded.
func (p *Pump[S, P]) fail(ctx context.Context, stage string, err error) {
	e := err
	p.lastError.Store(&e)
	p.history.push(PumpError{Stage: stage, Err: err, At: p.clock.Now()})
	p.transition(ctx, StateDegraded)
}

// transition updates the state and emits a state change event if changed.
func (p *Pump[S, P]) transition(ctx context.Context, next PumpState) {
	prev := PumpState(p.state.Swap(int32(next)))
	if prev == next {
		return
	}
	p.metrics.OnPumpStateChange(prev, next)
	capitan.Emit(ctx, PumpStateChanged,
		KeyOldState.Field(prev.String()),
		KeyNewState.Field(next.String()),
	)
}

// watch processes feed emissions with debouncing.
func (p *Pump[S, P]) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		p.transition(ctx, StateStopped)
		capitan.Emit(ctx, PumpStopped,
			KeyState.Field(p.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Feed closed, process any pending emission
				if hasPending {
					_ = p.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				}
				return
			}

			p.received(ctx)
			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = p.clock.NewTimer(p.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(p.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = p.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				hasPending = false
			}
		}
	}
}
