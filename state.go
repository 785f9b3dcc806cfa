package rudder

// PumpState represents the lifecycle state of a Pump.
type PumpState int32

const (
	// StateIdle indicates the Pump has been created but not started.
	StateIdle PumpState = iota

	// StateRunning indicates the Pump is watching its feed and the last
	// payload was dispatched successfully.
	StateRunning

	// StateDegraded indicates the last payload failed to decode, validate,
	// or dispatch. The store keeps its previous state and the Pump
	// continues watching for valid payloads.
	StateDegraded

	// StateStopped indicates the feed closed or the context was canceled.
	StateStopped
)

// String returns the string representation of the state.
func (s PumpState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDegraded:
		return "degraded"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
