package realtime

import (
	"log/slog"
	"sync"

	"dispatch/internal/pkg/errs"
)

// Recorder receives delivery telemetry from the bus. The metrics package
// provides the production implementation; tests pass nil and the bus skips
// recording.
type Recorder interface {
	EventPublished(eventType string)
	DeliveryDropped(eventType string)
}

// Handler observes events as they are published, before fan-out. Handlers
// run synchronously on the publisher's goroutine and must not block.
type Handler func(Event)

// Disposer unregisters a handler registered with Subscribe.
type Disposer func()

// Bus fans events out to live sessions. Delivery is fire-and-forget: each
// session gets the event on its buffered channel or not at all, and a full
// buffer never blocks the publisher. Per-session order matches publish
// order because fan-out for one Publish call completes before the next.
type Bus struct {
	registry *Registry
	recorder Recorder
	logger   *slog.Logger

	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	nextSubID   int
}

// subscription pairs a handler with the id its disposer removes it by.
// Subscriptions stay in registration order so handlers fire in the order
// they were added.
type subscription struct {
	id      int
	handler Handler
}

func NewBus(registry *Registry, recorder Recorder, logger *slog.Logger) (*Bus, error) {
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Bus{
		registry:    registry,
		recorder:    recorder,
		logger:      logger.With("component", "realtime.Bus"),
		subscribers: make(map[EventType][]subscription),
	}, nil
}

// Publish delivers the event to every session in the room that the
// visibility policy admits, then notifies in-process subscribers. Callers
// publish only after their transaction has committed.
func (b *Bus) Publish(room string, e Event) {
	if b.recorder != nil {
		b.recorder.EventPublished(string(e.Type))
	}

	delivered, dropped := 0, 0
	for _, session := range b.registry.Snapshot(room) {
		if !CanReceive(e, session) {
			continue
		}
		if session.send(e) {
			delivered++
			continue
		}
		dropped++
		if b.recorder != nil {
			b.recorder.DeliveryDropped(string(e.Type))
		}
	}

	if dropped > 0 {
		b.logger.Warn("dropped event deliveries",
			"event", string(e.Type),
			"delivered", delivered,
			"dropped", dropped)
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subscribers[e.Type]))
	for _, sub := range b.subscribers[e.Type] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// Broadcast publishes to the global room.
func (b *Bus) Broadcast(e Event) {
	b.Publish(GlobalRoom, e)
}

// Subscribe registers an in-process handler for one event type and returns
// its disposer. Handlers for the same type fire in registration order.
// Disposing twice is safe.
func (b *Bus) Subscribe(eventType EventType, handler Handler) Disposer {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	id := b.nextSubID
	b.nextSubID++
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{
		id:      id,
		handler: handler,
	})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		subs := b.subscribers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
	}
}
