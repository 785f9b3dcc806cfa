// Package redis provides a rudder feed backed by a Redis key.
//
// The feed relies on keyspace notifications, which must be enabled on the
// server:
//
//	CONFIG SET notify-keyspace-events KEA
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// writeEvents are the keyspace event payloads that change a key's value.
var writeEvents = map[string]bool{
	"set":    true,
	"mset":   true,
	"setex":  true,
	"psetex": true,
	"setnx":  true,
	"hset":   true,
}

// Feed emits the value of a Redis key: once on Watch, then again each
// time the key is written. Deletes and expirations are ignored; the feed
// only carries values that can become actions.
type Feed struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Feed.
type Option func(*Feed)

// WithDB overrides the database index used in the keyspace channel name.
// Defaults to the client's configured DB.
func WithDB(db int) Option {
	return func(f *Feed) {
		f.db = db
	}
}

// New creates a Feed for the given Redis key.
func New(client *redis.Client, key string, opts ...Option) *Feed {
	f := &Feed{
		client: client,
		key:    key,
		db:     client.Options().DB,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Watch subscribes to keyspace notifications for the key and returns a
// channel of raw payloads. The key's current value, if any, is emitted
// immediately so a freshly started pump sees it without waiting for a
// write.
func (f *Feed) Watch(ctx context.Context) (<-chan []byte, error) {
	channel := fmt.Sprintf("__keyspace@%d__:%s", f.db, f.key)
	pubsub := f.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe to keyspace notifications: %w", err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		val, err := f.client.Get(ctx, f.key).Bytes()
		if err != nil && err != redis.Nil {
			return
		}
		if err != redis.Nil {
			select {
			case out <- val:
			case <-ctx.Done():
				return
			}
		}

		events := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-events:
				if !ok {
					return
				}
				if !writeEvents[msg.Payload] {
					continue
				}
				val, err := f.client.Get(ctx, f.key).Bytes()
				if err != nil {
					continue
				}
				select {
				case out <- val:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
