package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agency_backend/internal/events"
	"agency_backend/internal/quote/repository"
	"agency_backend/internal/quote/transport"
	"agency_backend/internal/settings"
	"agency_backend/platform/apperr"
	platformvalidator "agency_backend/platform/validator"
)

type fakeInquiryStore struct {
	appended  []repository.Inquiry
	appendErr error

	findRow int
	findErr error

	updatedRow   int
	updatedLinks string
	updatedNote  string
	updateCalls  int
	updateErr    error
}

func (f *fakeInquiryStore) AppendInquiry(_ context.Context, inq repository.Inquiry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, inq)
	return nil
}

func (f *fakeInquiryStore) FindRowByQuoteNumber(_ context.Context, _ string) (int, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	return f.findRow, nil
}

func (f *fakeInquiryStore) UpdateAdditional(_ context.Context, rowIndex int, links, note string) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedRow = rowIndex
	f.updatedLinks = links
	f.updatedNote = note
	return nil
}

type fakeSettingsSource struct {
	snap settings.Snapshot
}

func (f *fakeSettingsSource) Get(_ context.Context) settings.Snapshot {
	return f.snap
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

func newTestService(t *testing.T, store *fakeInquiryStore, bus *fakeBus) *Service {
	t.Helper()
	val := platformvalidator.New()
	transport.RegisterValidations(val)
	src := &fakeSettingsSource{snap: settings.Snapshot{Settings: flatRateSettings()}}
	return New(store, src, bus, val, nil)
}

func intPtr(v int) *int { return &v }

func validSubmitRequest() transport.SubmitQuoteRequest {
	return transport.SubmitQuoteRequest{
		ClientName:    "Kim Jiwoo",
		ClientEmail:   "jiwoo@example.com",
		ContactMethod: "email",
		ScreenBlocks:  &transport.ScreenBlocks{Min: intPtr(5), Max: intPtr(10)},
		UIUXStyle:     "normal",
	}
}

func TestSubmitValidationFailureHasNoSideEffects(t *testing.T) {
	store := &fakeInquiryStore{}
	bus := &fakeBus{}
	svc := newTestService(t, store, bus)

	req := transport.SubmitQuoteRequest{
		ContactMethod: "email", // email chosen but no clientEmail given
		UIUXStyle:     "shiny",
	}

	resp, err := svc.Submit(context.Background(), req)
	if resp != nil || err == nil {
		t.Fatalf("expected validation error, got resp=%v err=%v", resp, err)
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", err)
	}

	msgs, ok := ae.Details.([]string)
	if !ok {
		t.Fatalf("expected []string details, got %T", ae.Details)
	}
	for _, want := range []string{
		"clientName is required",
		"clientEmail is required when contactMethod is email",
		"screenBlocks must be an object with numeric min and max",
		"uiuxStyle must be one of normal, fancy",
	} {
		found := false
		for _, m := range msgs {
			if m == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing message %q in %v", want, msgs)
		}
	}

	if len(store.appended) != 0 {
		t.Fatalf("invalid submission must not be persisted, got %d rows", len(store.appended))
	}
	if len(bus.published) != 0 {
		t.Fatalf("invalid submission must not publish events, got %d", len(bus.published))
	}
}

func TestSubmitSuccessPersistsAndPublishes(t *testing.T) {
	store := &fakeInquiryStore{}
	bus := &fakeBus{}
	svc := newTestService(t, store, bus)

	resp, err := svc.Submit(context.Background(), validSubmitRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(resp.QuoteNumber, "WD-") {
		t.Fatalf("unexpected quote number %q", resp.QuoteNumber)
	}
	if resp.EstimatedPrice.Min != 250000 || resp.EstimatedPrice.Max != 500000 {
		t.Fatalf("unexpected estimate %d..%d", resp.EstimatedPrice.Min, resp.EstimatedPrice.Max)
	}

	if len(store.appended) != 1 {
		t.Fatalf("expected one persisted row, got %d", len(store.appended))
	}
	inq := store.appended[0]
	if inq.QuoteNumber != resp.QuoteNumber {
		t.Fatalf("persisted quote number %q does not match response %q", inq.QuoteNumber, resp.QuoteNumber)
	}
	if inq.Status != string(transport.StatusPending) {
		t.Fatalf("new inquiries must start pending, got %q", inq.Status)
	}
	if !strings.Contains(inq.Notes, "estimate: ₩250,000 ~ ₩500,000") {
		t.Fatalf("estimate missing from notes: %q", inq.Notes)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(bus.published))
	}
	evt, ok := bus.published[0].(events.QuoteSubmitted)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.published[0])
	}
	if evt.QuoteNumber != resp.QuoteNumber || evt.EstimateMax != 500000 {
		t.Fatalf("unexpected event payload %+v", evt)
	}
}

func TestSubmitPersistenceFailureFailsRequest(t *testing.T) {
	store := &fakeInquiryStore{appendErr: errors.New("sheet unavailable")}
	bus := &fakeBus{}
	svc := newTestService(t, store, bus)

	_, err := svc.Submit(context.Background(), validSubmitRequest())

	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(bus.published) != 0 {
		t.Fatalf("failed persistence must not publish events")
	}
}

func TestSubmitNotesCarryOptionSummaries(t *testing.T) {
	store := &fakeInquiryStore{}
	svc := newTestService(t, store, &fakeBus{})

	req := validSubmitRequest()
	req.SpecialNotes = "launch before spring"
	req.ServerOption = &transport.ServerOption{Status: transport.OptionConfirmed, Years: 2}
	req.DomainOption = &transport.DomainOption{Status: transport.OptionPending}

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notes := store.appended[0].Notes
	for _, want := range []string{"launch before spring", "server hosting: 2 year(s)", "domain: pending"} {
		if !strings.Contains(notes, want) {
			t.Fatalf("notes %q missing %q", notes, want)
		}
	}
}

func TestUpdateMissingQuoteNumber(t *testing.T) {
	svc := newTestService(t, &fakeInquiryStore{}, &fakeBus{})

	err := svc.Update(context.Background(), transport.UpdateQuoteRequest{QuoteNumber: "  "})

	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestUpdateUnknownQuoteNumberAltersNothing(t *testing.T) {
	store := &fakeInquiryStore{findErr: apperr.NotFound("quote not found")}
	svc := newTestService(t, store, &fakeBus{})

	err := svc.Update(context.Background(), transport.UpdateQuoteRequest{QuoteNumber: "WD-NOPE"})

	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("unknown quote number must not trigger an update")
	}
}

func TestUpdateWritesJoinedLinksAndNote(t *testing.T) {
	store := &fakeInquiryStore{findRow: 7}
	svc := newTestService(t, store, &fakeBus{})

	req := transport.UpdateQuoteRequest{
		QuoteNumber: "WD-ABC-1234",
		AdditionalLinks: []transport.AdditionalLink{
			{Type: "portfolio", URL: "https://example.com/work"},
			{Type: "other", CustomType: "moodboard", URL: "https://example.com/board"},
		},
		AdditionalNote: "prefers dark palette",
	}

	if err := svc.Update(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.updatedRow != 7 {
		t.Fatalf("expected row 7, got %d", store.updatedRow)
	}
	wantLinks := "[portfolio] https://example.com/work\n[moodboard] https://example.com/board"
	if store.updatedLinks != wantLinks {
		t.Fatalf("unexpected links %q", store.updatedLinks)
	}
	if store.updatedNote != "prefers dark palette" {
		t.Fatalf("unexpected note %q", store.updatedNote)
	}
}
