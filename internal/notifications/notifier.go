package notifications

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// broadcastChannel carries every live feed event. The feed is the same for
// all readers, so one channel suffices.
const broadcastChannel = "events:broadcast"

// Notifier publishes feed events into Redis so every API process can relay
// them to its own websocket readers.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishBroadcast sends an event payload to all connected readers.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// StartSubscriber subscribes to the broadcast channel and calls onMessage for
// each incoming message until ctx is cancelled.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in feed subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
