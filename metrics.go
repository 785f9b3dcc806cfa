package rudder

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key store and pump events.
type MetricsProvider interface {
	// OnDispatch is called when an action is reduced and installed.
	// Kind is the action discriminator; duration covers the pipeline and
	// the reducer, not subscriber notification.
	OnDispatch(kind string, duration time.Duration)

	// OnDispatchFailure is called when the dispatch pipeline rejects an
	// action. State is unchanged when this fires.
	OnDispatchFailure(kind string, duration time.Duration)

	// OnNotify is called after subscribers have been notified.
	OnNotify(listeners int)

	// OnPumpStateChange is called when a pump transitions between states.
	OnPumpStateChange(from, to PumpState)

	// OnFeedReceived is called when a pump receives raw bytes from its feed.
	OnFeedReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnDispatch(_ string, _ time.Duration)        {}
func (NoOpMetricsProvider) OnDispatchFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnNotify(_ int)                              {}
func (NoOpMetricsProvider) OnPumpStateChange(_, _ PumpState)            {}
func (NoOpMetricsProvider) OnFeedReceived()                             {}
