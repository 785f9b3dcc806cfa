// Package nats provides a rudder feed backed by a NATS JetStream KV key.
package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// Feed emits the value of a KV key: the current revision on Watch, then
// every subsequent put. Deletes and purges are skipped, since an absent
// value cannot become an action.
type Feed struct {
	kv             jetstream.KeyValue
	key            string
	includeDeletes bool
}

// Option configures a Feed.
type Option func(*Feed)

// WithDeletes forwards delete and purge operations as empty payloads
// instead of skipping them. Useful when a missing key should reset the
// store through a dedicated action.
func WithDeletes() Option {
	return func(f *Feed) {
		f.includeDeletes = true
	}
}

// New creates a Feed for the given KV key.
func New(kv jetstream.KeyValue, key string, opts ...Option) *Feed {
	f := &Feed{
		kv:  kv,
		key: key,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Watch starts a KV watcher on the key and returns a channel of raw
// payloads. The watcher's initial replay delivers the current value
// immediately.
func (f *Feed) Watch(ctx context.Context) (<-chan []byte, error) {
	watcher, err := f.kv.Watch(ctx, f.key)
	if err != nil {
		return nil, fmt.Errorf("watch key: %w", err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-watcher.Updates():
				if !ok {
					return
				}
				// nil entry marks the end of the initial replay.
				if entry == nil {
					continue
				}
				op := entry.Operation()
				if (op == jetstream.KeyValueDelete || op == jetstream.KeyValuePurge) && !f.includeDeletes {
					continue
				}

				select {
				case out <- entry.Value():
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
