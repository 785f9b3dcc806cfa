package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/rudder"
)

func TestTestReducer(t *testing.T) {
	tests := []struct {
		name   string
		prev   TestState
		action rudder.Action
		want   TestState
	}{
		{
			name:   "set text",
			prev:   TestState{},
			action: SetText{Text: "hello"},
			want:   TestState{Text: "hello", Applied: 1},
		},
		{
			name:   "set text increments applied",
			prev:   TestState{Text: "old", Applied: 2},
			action: SetText{Text: "new"},
			want:   TestState{Text: "new", Applied: 3},
		},
		{
			name:   "unknown action is identity",
			prev:   TestState{Text: "keep", Applied: 1},
			action: otherAction{},
			want:   TestState{Text: "keep", Applied: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TestReducer(tt.prev, tt.action)
			if got != tt.want {
				t.Errorf("TestReducer() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

type otherAction struct{}

func (otherAction) Kind() string { return "test.other" }

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false")
		}
	})

	t.Run("condition met during polling", func(t *testing.T) {
		start := time.Now()
		result := WaitFor(t, time.Second, func() bool {
			return time.Since(start) > 30*time.Millisecond
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})
}

func TestRequireState(t *testing.T) {
	store := NewTestStore()
	if err := store.Dispatch(context.Background(), SetText{Text: "hello"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	RequireState(t, store, func(s TestState) bool {
		return s.Text == "hello" && s.Applied == 1
	})
}

func TestNewTestPump(t *testing.T) {
	pump, store, ch := NewTestPump(t)
	ctx := context.Background()

	ch <- []byte(`{"text": "first"}`)
	if err := pump.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	RequirePumpState(t, pump, rudder.StateRunning)
	RequireState(t, store, func(s TestState) bool {
		return s.Text == "first"
	})

	ch <- []byte(`{"text": "second"}`)
	if !pump.Process(ctx) {
		t.Fatal("expected Process to consume an emission")
	}
	RequireState(t, store, func(s TestState) bool {
		return s.Text == "second" && s.Applied == 2
	})
}

func TestNewTestPumpValidationFailure(t *testing.T) {
	pump, store, ch := NewTestPump(t)
	ctx := context.Background()

	ch <- []byte(`{"text": "ok"}`)
	if err := pump.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Missing required text field degrades the pump; state stays put.
	ch <- []byte(`{"count": 3}`)
	if !pump.Process(ctx) {
		t.Fatal("expected Process to consume an emission")
	}
	if !WaitForState(t, pump, rudder.StateDegraded, time.Second) {
		t.Fatalf("expected degraded state, got %s", pump.State())
	}
	RequireState(t, store, func(s TestState) bool {
		return s.Text == "ok"
	})
}
