package rudder

import "github.com/zoobzio/capitan"

// Field keys for store and pump events.
var (
	// KeyAction is the kind of the dispatched action.
	KeyAction = capitan.NewStringKey("action")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyStage is the pump stage that rejected a payload.
	KeyStage = capitan.NewStringKey("stage")

	// KeySubscribers is the listener count after a subscribe or unsubscribe.
	KeySubscribers = capitan.NewIntKey("subscribers")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyState is the current pump state.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous pump state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new pump state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")
)
