package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"launchsite-backend/internal/redis"
)

const channelName = "launchsite:events"

// RedisBus fans events out through a redis pub/sub channel so every
// server instance sees inserts made by its peers.
type RedisBus struct {
	client *redis.Client

	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{
		client:   client,
		handlers: make(map[string][]Handler),
	}
}

func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelName, data)
}

func (b *RedisBus) Subscribe(table string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[table] = append(b.handlers[table], handler)
}

// Run receives from the redis channel and dispatches until the context
// is cancelled. Call it from its own goroutine.
func (b *RedisBus) Run(ctx context.Context) {
	pubsub := b.client.Subscribe(ctx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logrus.WithError(err).Warn("events: dropping malformed message")
				continue
			}

			b.mu.RLock()
			handlers := b.handlers[event.Table]
			b.mu.RUnlock()

			for _, h := range handlers {
				h(event)
			}
		}
	}
}
