package rudder

import "testing"

func TestStoreDispatched(t *testing.T) {
	if StoreDispatched.Name() != "rudder.store.dispatched" {
		t.Errorf("expected name 'rudder.store.dispatched', got %q", StoreDispatched.Name())
	}
}

func TestStoreDispatchFailed(t *testing.T) {
	if StoreDispatchFailed.Name() != "rudder.store.dispatch.failed" {
		t.Errorf("expected name 'rudder.store.dispatch.failed', got %q", StoreDispatchFailed.Name())
	}
}

func TestStoreReentrantRejected(t *testing.T) {
	if StoreReentrantRejected.Name() != "rudder.store.reentrant.rejected" {
		t.Errorf("expected name 'rudder.store.reentrant.rejected', got %q", StoreReentrantRejected.Name())
	}
}

func TestStoreSubscribed(t *testing.T) {
	if StoreSubscribed.Name() != "rudder.store.subscribed" {
		t.Errorf("expected name 'rudder.store.subscribed', got %q", StoreSubscribed.Name())
	}
}

func TestStoreUnsubscribed(t *testing.T) {
	if StoreUnsubscribed.Name() != "rudder.store.unsubscribed" {
		t.Errorf("expected name 'rudder.store.unsubscribed', got %q", StoreUnsubscribed.Name())
	}
}

func TestPumpStarted(t *testing.T) {
	if PumpStarted.Name() != "rudder.pump.started" {
		t.Errorf("expected name 'rudder.pump.started', got %q", PumpStarted.Name())
	}
}

func TestPumpStopped(t *testing.T) {
	if PumpStopped.Name() != "rudder.pump.stopped" {
		t.Errorf("expected name 'rudder.pump.stopped', got %q", PumpStopped.Name())
	}
}

func TestPumpStateChanged(t *testing.T) {
	if PumpStateChanged.Name() != "rudder.pump.state.changed" {
		t.Errorf("expected name 'rudder.pump.state.changed', got %q", PumpStateChanged.Name())
	}
}

func TestPumpFeedReceived(t *testing.T) {
	if PumpFeedReceived.Name() != "rudder.pump.feed.received" {
		t.Errorf("expected name 'rudder.pump.feed.received', got %q", PumpFeedReceived.Name())
	}
}

func TestPumpDecodeFailed(t *testing.T) {
	if PumpDecodeFailed.Name() != "rudder.pump.decode.failed" {
		t.Errorf("expected name 'rudder.pump.decode.failed', got %q", PumpDecodeFailed.Name())
	}
}

func TestPumpValidationFailed(t *testing.T) {
	if PumpValidationFailed.Name() != "rudder.pump.validation.failed" {
		t.Errorf("expected name 'rudder.pump.validation.failed', got %q", PumpValidationFailed.Name())
	}
}

func TestPumpDispatchFailed(t *testing.T) {
	if PumpDispatchFailed.Name() != "rudder.pump.dispatch.failed" {
		t.Errorf("expected name 'rudder.pump.dispatch.failed', got %q", PumpDispatchFailed.Name())
	}
}

func TestPumpDispatched(t *testing.T) {
	if PumpDispatched.Name() != "rudder.pump.dispatched" {
		t.Errorf("expected name 'rudder.pump.dispatched', got %q", PumpDispatched.Name())
	}
}
