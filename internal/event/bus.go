package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/pkg/logger"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	ID            string
	Type          string
	Timestamp     time.Time
	CorrelationID string
	Data          any
}

// Handler receives events synchronously on the publisher's goroutine.
type Handler func(ctx context.Context, evt Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is an in-process publish/subscribe channel. Publish delivers to every
// subscriber of the event type in subscription order before returning.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription
	nextID uint64
	logger *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]subscription),
		logger: logger,
	}
}

// Subscribe registers h for eventType. The returned function removes the
// subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(eventType string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(eventType, id) })
	}
}

func (b *Bus) remove(eventType string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[eventType]) == 0 {
		delete(b.subs, eventType)
	}
}

// Publish wraps data in an Event and hands it to the current subscribers.
// Handlers run outside the bus lock, so they may subscribe or unsubscribe.
func (b *Bus) Publish(ctx context.Context, eventType string, data any) Event {
	evt := Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		CorrelationID: logger.CorrelationIDFromContext(ctx),
		Data:          data,
	}

	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[eventType]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(ctx, evt)
	}

	b.logger.DebugContext(ctx, "event published",
		slog.String("event_type", eventType),
		slog.String("event_id", evt.ID),
		slog.Int("subscribers", len(subs)),
	)
	return evt
}

// SubscriberCount returns the number of live subscriptions for eventType.
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[eventType])
}
