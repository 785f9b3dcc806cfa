// Package testing provides test utilities and fixtures for rudder stores
// and pumps.
package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/rudder"
)

// TestPayload is a standard pump payload type for tests. The text field
// is required so validation failures are easy to provoke.
type TestPayload struct {
	Text  string `json:"text" yaml:"text" validate:"required"`
	Count int    `json:"count" yaml:"count"`
}

// TestState is a standard store state for tests.
type TestState struct {
	Text    string
	Applied int
}

// SetText is the action TestReducer recognizes.
type SetText struct {
	Text string
}

// Kind implements rudder.Action.
func (SetText) Kind() string { return "test.set-text" }

// TestReducer applies SetText actions and leaves every other action's
// state untouched.
func TestReducer(prev TestState, a rudder.Action) TestState {
	if set, ok := a.(SetText); ok {
		return TestState{Text: set.Text, Applied: prev.Applied + 1}
	}
	return prev
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the pump reaches the expected state or timeout
// occurs.
func WaitForState[S, P any](t *testing.T, p *rudder.Pump[S, P], expected rudder.PumpState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return p.State() == expected
	})
}

// RequirePumpState fails the test immediately if the pump is not in the
// expected state.
func RequirePumpState[S, P any](t *testing.T, p *rudder.Pump[S, P], expected rudder.PumpState) {
	t.Helper()
	if got := p.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireState fails the test if the store's current state fails the check.
func RequireState[S any](t *testing.T, s *rudder.Store[S], check func(S) bool) {
	t.Helper()
	state := s.Current()
	if !check(state) {
		t.Fatalf("state check failed: %+v", state)
	}
}

// NewTestStore creates a store over TestState seeded with defaults.
func NewTestStore(opts ...rudder.Option[TestState]) *rudder.Store[TestState] {
	return rudder.New(TestReducer, opts...)
}

// NewTestPump creates a sync-mode pump over a buffered channel feed.
// Returns the pump, its store, and the channel for sending raw payloads.
// Call Start once, then Process after each send.
func NewTestPump(t *testing.T) (*rudder.Pump[TestState, TestPayload], *rudder.Store[TestState], chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	store := NewTestStore()
	pump := rudder.NewPump(store, rudder.NewSyncChannelFeed(ch),
		func(p TestPayload) rudder.Action {
			return SetText{Text: p.Text}
		},
	).SyncMode()
	return pump, store, ch
}
