// Package events is the in-process pub/sub layer that lets the intake
// pipeline hand work to subscribers (notification mail, follow-ups) without
// importing them. It carries no business logic.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	// EventName identifies the event type; subscriptions key on it.
	EventName() string
	// OccurredAt is the publication timestamp.
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp field events embed.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt is the publication timestamp.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events of one subscribed type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events and registers their subscribers.
type Bus interface {
	// Publish dispatches the event to every subscriber of its type.
	// Handlers run asynchronously; the publisher never observes their errors.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches the event and waits for every handler,
	// returning their joined errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the named event type. The name must
	// match what the event's EventName returns.
	Subscribe(eventName string, handler Handler)
}
