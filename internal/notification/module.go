// Package notification sends the follow-up mail for submitted inquiries in
// response to domain events. Domain modules publish events and never touch
// email providers or templates directly.
package notification

import (
	"context"

	"agency_backend/internal/email"
	"agency_backend/internal/events"
	"agency_backend/internal/scheduler"
	"agency_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender      email.Sender
	enqueuer    scheduler.NotifyEnqueuer
	adminEmail  string
	companyName string
	log         *logger.Logger
}

// New creates the notification module. enqueuer may be nil; mail is then
// delivered inline on the event handler goroutine.
func New(sender email.Sender, enqueuer scheduler.NotifyEnqueuer, adminEmail, companyName string, log *logger.Logger) *Module {
	return &Module{
		sender:      sender,
		enqueuer:    enqueuer,
		adminEmail:  adminEmail,
		companyName: companyName,
		log:         log,
	}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.QuoteSubmitted{}.EventName(), m)
}

// Handle dispatches a domain event. Notification is best effort: every
// failure is logged and swallowed so it can never surface as a submission
// failure.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteSubmitted:
		m.handleQuoteSubmitted(ctx, e)
	}
	return nil
}

func (m *Module) handleQuoteSubmitted(ctx context.Context, e events.QuoteSubmitted) {
	if m.enqueuer != nil {
		err := m.enqueuer.EnqueueQuoteNotify(ctx, scheduler.QuoteNotifyPayload{
			QuoteNumber:       e.QuoteNumber,
			ClientName:        e.ClientName,
			ClientEmail:       e.ClientEmail,
			ClientPhone:       e.ClientPhone,
			ContactMethod:     e.ContactMethod,
			EstimateFormatted: e.Formatted,
		})
		if err == nil {
			return
		}
		// Queue unavailable; fall through to inline delivery.
		if m.log != nil {
			m.log.NotifyError("queue", e.QuoteNumber, err)
		}
	}

	m.sendInline(ctx, e)
}

func (m *Module) sendInline(ctx context.Context, e events.QuoteSubmitted) {
	if m.adminEmail != "" {
		err := m.sender.SendQuoteReceivedEmail(ctx, m.adminEmail, email.QuoteReceivedData{
			QuoteNumber:       e.QuoteNumber,
			ClientName:        e.ClientName,
			ClientEmail:       e.ClientEmail,
			ClientPhone:       e.ClientPhone,
			ContactMethod:     e.ContactMethod,
			EstimateFormatted: e.Formatted,
		})
		if err != nil && m.log != nil {
			m.log.NotifyError("admin_email", e.QuoteNumber, err)
		}
	}

	if e.ContactMethod == "email" && e.ClientEmail != "" {
		err := m.sender.SendQuoteConfirmationEmail(ctx, e.ClientEmail, email.QuoteConfirmationData{
			ClientName:        e.ClientName,
			QuoteNumber:       e.QuoteNumber,
			EstimateFormatted: e.Formatted,
			CompanyName:       m.companyName,
		})
		if err != nil && m.log != nil {
			m.log.NotifyError("client_email", e.QuoteNumber, err)
		}
	}
}
