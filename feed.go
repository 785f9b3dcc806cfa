package rudder

import "context"

// Feed observes an external source and emits raw bytes on a channel.
// A Pump decodes the bytes into a payload, validates it, wraps it in an
// action, and dispatches it to a store.
//
// Implementations must emit the current value immediately upon Watch()
// being called so the first dispatch happens during Pump.Start.
type Feed interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when changes occur. The channel is closed when the context
	// is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}
