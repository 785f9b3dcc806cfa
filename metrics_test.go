package rudder

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	// These should not panic
	m.OnDispatch("panel.data.change", 100*time.Millisecond)
	m.OnDispatchFailure("panel.data.change", 50*time.Millisecond)
	m.OnNotify(2)
	m.OnPumpStateChange(StateIdle, StateRunning)
	m.OnFeedReceived()
}
