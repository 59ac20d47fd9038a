package notification

import (
	"context"
	"errors"
	"testing"

	"agency_backend/internal/email"
	"agency_backend/internal/events"
	"agency_backend/internal/scheduler"
)

type testSender struct {
	receivedCalls     int
	receivedTo        string
	confirmationCalls int
	confirmationTo    string
	confirmationData  email.QuoteConfirmationData
	err               error
}

func (s *testSender) SendQuoteReceivedEmail(_ context.Context, to string, _ email.QuoteReceivedData) error {
	s.receivedCalls++
	s.receivedTo = to
	return s.err
}

func (s *testSender) SendQuoteConfirmationEmail(_ context.Context, to string, data email.QuoteConfirmationData) error {
	s.confirmationCalls++
	s.confirmationTo = to
	s.confirmationData = data
	return s.err
}

type testEnqueuer struct {
	calls    int
	payloads []scheduler.QuoteNotifyPayload
	err      error
}

func (e *testEnqueuer) EnqueueQuoteNotify(_ context.Context, p scheduler.QuoteNotifyPayload) error {
	e.calls++
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, p)
	return nil
}

func submittedEvent() events.QuoteSubmitted {
	return events.QuoteSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		QuoteNumber:   "WD-TEST-0001",
		ClientName:    "Kim Jiwoo",
		ClientEmail:   "jiwoo@example.com",
		ContactMethod: "email",
		EstimateMin:   250000,
		EstimateMax:   500000,
		Formatted:     "₩250,000 ~ ₩500,000",
	}
}

func TestHandleSendsAdminAlertAndClientConfirmation(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, "studio@example.com", "Studio Onda", nil)

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.receivedCalls != 1 || sender.receivedTo != "studio@example.com" {
		t.Fatalf("expected one admin alert, got %d to %q", sender.receivedCalls, sender.receivedTo)
	}
	if sender.confirmationCalls != 1 || sender.confirmationTo != "jiwoo@example.com" {
		t.Fatalf("expected one confirmation, got %d to %q", sender.confirmationCalls, sender.confirmationTo)
	}
	if sender.confirmationData.CompanyName != "Studio Onda" {
		t.Fatalf("unexpected company name %q", sender.confirmationData.CompanyName)
	}
}

func TestHandleSkipsConfirmationForPhoneContact(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, "studio@example.com", "Studio Onda", nil)

	e := submittedEvent()
	e.ContactMethod = "phone"
	e.ClientEmail = ""
	e.ClientPhone = "+821012345678"

	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.receivedCalls != 1 {
		t.Fatalf("admin alert must still go out, got %d", sender.receivedCalls)
	}
	if sender.confirmationCalls != 0 {
		t.Fatalf("phone contacts must not get a confirmation email")
	}
}

func TestHandlePrefersQueueOverInlineDelivery(t *testing.T) {
	sender := &testSender{}
	enq := &testEnqueuer{}
	m := New(sender, enq, "studio@example.com", "Studio Onda", nil)

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if enq.calls != 1 {
		t.Fatalf("expected one enqueue, got %d", enq.calls)
	}
	if sender.receivedCalls != 0 || sender.confirmationCalls != 0 {
		t.Fatalf("queued delivery must not also send inline")
	}
	if enq.payloads[0].QuoteNumber != "WD-TEST-0001" {
		t.Fatalf("unexpected payload %+v", enq.payloads[0])
	}
}

func TestHandleFallsBackToInlineWhenQueueFails(t *testing.T) {
	sender := &testSender{}
	enq := &testEnqueuer{err: errors.New("redis down")}
	m := New(sender, enq, "studio@example.com", "Studio Onda", nil)

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("handler must swallow delivery failures, got %v", err)
	}

	if sender.receivedCalls != 1 || sender.confirmationCalls != 1 {
		t.Fatalf("expected inline fallback, got admin=%d client=%d", sender.receivedCalls, sender.confirmationCalls)
	}
}

func TestHandleSwallowsSenderFailures(t *testing.T) {
	sender := &testSender{err: errors.New("smtp refused")}
	m := New(sender, nil, "studio@example.com", "Studio Onda", nil)

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("sender failure must never surface, got %v", err)
	}
}
