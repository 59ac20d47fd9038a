// Package events defines the domain events exchanged between modules,
// re-exporting the platform bus types so domain code imports one package.
package events

import (
	platformevents "agency_backend/platform/events"
	"agency_backend/platform/logger"
)

// Re-exported platform types.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// NewInMemoryBus creates a new in-process event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// EventQuoteSubmitted is the name of the QuoteSubmitted event.
const EventQuoteSubmitted = "quote.submitted"

// QuoteSubmitted is published after an inquiry row has been persisted.
// The notification module consumes it best-effort; a handler failure never
// affects the already-committed submission.
type QuoteSubmitted struct {
	BaseEvent
	QuoteNumber   string
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ContactMethod string
	EstimateMin   int64
	EstimateMax   int64
	Formatted     string
}

// EventName returns the unique event identifier.
func (QuoteSubmitted) EventName() string { return EventQuoteSubmitted }
