package rudder

import "github.com/zoobzio/capitan"

// Store signals.
var (
	// StoreDispatched is emitted after an action is reduced and the new
	// state is installed, before subscribers run.
	StoreDispatched = capitan.NewSignal(
		"rudder.store.dispatched",
		"Action reduced and state installed",
	)

	// StoreDispatchFailed is emitted when the dispatch pipeline rejects
	// an action. State is unchanged.
	StoreDispatchFailed = capitan.NewSignal(
		"rudder.store.dispatch.failed",
		"Dispatch pipeline rejected an action",
	)

	// StoreReentrantRejected is emitted when a dispatch is attempted while
	// another dispatch is in progress.
	StoreReentrantRejected = capitan.NewSignal(
		"rudder.store.reentrant.rejected",
		"Dispatch during dispatch rejected",
	)

	// StoreSubscribed is emitted when a listener is registered.
	StoreSubscribed = capitan.NewSignal(
		"rudder.store.subscribed",
		"Listener registered",
	)

	// StoreUnsubscribed is emitted when a listener is removed.
	StoreUnsubscribed = capitan.NewSignal(
		"rudder.store.unsubscribed",
		"Listener removed",
	)
)

// Pump signals.
var (
	// PumpStarted is emitted when a Pump begins watching its feed.
	PumpStarted = capitan.NewSignal(
		"rudder.pump.started",
		"Pump watching started",
	)

	// PumpStopped is emitted when a Pump stops watching.
	PumpStopped = capitan.NewSignal(
		"rudder.pump.stopped",
		"Pump watching stopped",
	)

	// PumpStateChanged is emitted when a Pump transitions between states.
	PumpStateChanged = capitan.NewSignal(
		"rudder.pump.state.changed",
		"Pump state transition",
	)

	// PumpFeedReceived is emitted when raw bytes are received from the feed.
	PumpFeedReceived = capitan.NewSignal(
		"rudder.pump.feed.received",
		"Raw bytes received from feed",
	)

	// PumpDecodeFailed is emitted when feed bytes fail to decode.
	PumpDecodeFailed = capitan.NewSignal(
		"rudder.pump.decode.failed",
		"Payload decode failed",
	)

	// PumpValidationFailed is emitted when a decoded payload fails validation.
	PumpValidationFailed = capitan.NewSignal(
		"rudder.pump.validation.failed",
		"Payload validation failed",
	)

	// PumpDispatchFailed is emitted when the store rejects a pump dispatch.
	PumpDispatchFailed = capitan.NewSignal(
		"rudder.pump.dispatch.failed",
		"Pump dispatch failed",
	)

	// PumpDispatched is emitted when a payload is dispatched successfully.
	PumpDispatched = capitan.NewSignal(
		"rudder.pump.dispatched",
		"Payload dispatched to store",
	)
)
