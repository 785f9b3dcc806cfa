package rudder

import (
	"sync"
	"time"
)

// PumpError records one failed payload with the stage that rejected it.
type PumpError struct {
	// Stage is where the failure occurred: "decode", "validate", or
	// "dispatch".
	Stage string

	// Err is the underlying error.
	Err error

	// At is when the failure was recorded, on the Pump's clock.
	At time.Time
}

// errorRing is a thread-safe ring buffer of recent pump failures.
type errorRing struct {
	mu      sync.RWMutex
	entries []PumpError
	size    int
	head    int
	count   int
}

// newErrorRing creates an error ring with the given capacity.
// If size is 0, the ring is disabled.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{
		entries: make([]PumpError, size),
		size:    size,
	}
}

// push records a failure, evicting the oldest entry when full.
func (r *errorRing) push(e PumpError) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = e
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the recorded failures, oldest first.
func (r *errorRing) all() []PumpError {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]PumpError, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(start+i)%r.size]
	}
	return result
}
