// Package events is the publish/subscribe seam between the store
// mutations and everything that reacts to them (notification feed,
// websocket hub, dashboard refreshes). Consumers depend on the Bus
// interface so tests can swap in the synchronous in-memory bus.
package events

import (
	"context"
	"encoding/json"
	"sync"
)

const (
	ActionInsert = "INSERT"

	TableContactForms = "contact_forms"
	TablePageVisits   = "page_visits"
)

type Event struct {
	Table   string          `json:"table"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type Handler func(Event)

type Bus interface {
	// Publish delivers the event to every subscriber of its table.
	Publish(ctx context.Context, event Event) error
	// Subscribe registers a handler for insert events on a table.
	Subscribe(table string, handler Handler)
}

// NewInsertEvent marshals the inserted row into an event payload.
func NewInsertEvent(table string, row interface{}) (Event, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return Event{}, err
	}
	return Event{Table: table, Action: ActionInsert, Payload: payload}, nil
}

// MemoryBus delivers events synchronously in-process. It backs tests
// and single-node deployments without redis.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]Handler)}
}

func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Table]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (b *MemoryBus) Subscribe(table string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[table] = append(b.handlers[table], handler)
}
