package repository

import (
	"context"
	"errors"
	"testing"

	"agency_backend/platform/apperr"
)

type fakeRangeClient struct {
	readRows     [][]string
	readErr      error
	appendedRng  string
	appendedRow  []string
	updatedRng   string
	updatedVals  [][]string
	appendCalled int
	updateCalled int
}

func (f *fakeRangeClient) ReadRange(_ context.Context, _ string) ([][]string, error) {
	return f.readRows, f.readErr
}

func (f *fakeRangeClient) Append(_ context.Context, rng string, row []string) error {
	f.appendCalled++
	f.appendedRng = rng
	f.appendedRow = row
	return nil
}

func (f *fakeRangeClient) Update(_ context.Context, rng string, values [][]string) error {
	f.updateCalled++
	f.updatedRng = rng
	f.updatedVals = values
	return nil
}

func TestAppendInquiryWritesFixedColumnOrder(t *testing.T) {
	client := &fakeRangeClient{}
	repo := New(client, "Inquiries!A:P")

	err := repo.AppendInquiry(context.Background(), Inquiry{
		Date:          "2026-03-01",
		Time:          "14:30",
		QuoteNumber:   "WD-ABC-1234",
		ClientName:    "Kim Jiwoo",
		Phone:         "+821012341234",
		Email:         "jiwoo@example.com",
		ContactMethod: "email",
		Notes:         "estimate: ₩250,000 ~ ₩500,000",
		Status:        "pending",
	})
	if err != nil {
		t.Fatalf("append inquiry: %v", err)
	}

	if client.appendedRng != "Inquiries!A:P" {
		t.Fatalf("unexpected append range %q", client.appendedRng)
	}
	if len(client.appendedRow) != columnCount {
		t.Fatalf("expected %d columns, got %d", columnCount, len(client.appendedRow))
	}
	if client.appendedRow[colQuoteNumber] != "WD-ABC-1234" {
		t.Fatalf("quote number in wrong column: %v", client.appendedRow)
	}
	if client.appendedRow[colStatus] != "pending" {
		t.Fatalf("status in wrong column: %v", client.appendedRow)
	}
	if client.appendedRow[colNotes] != "estimate: ₩250,000 ~ ₩500,000" {
		t.Fatalf("notes in wrong column: %v", client.appendedRow)
	}
}

func TestFindRowByQuoteNumberScansColumn(t *testing.T) {
	client := &fakeRangeClient{readRows: [][]string{
		{"Quote Number"},
		{"WD-AAA-0001"},
		{"WD-BBB-0002"},
	}}
	repo := New(client, "Inquiries!A:P")

	row, err := repo.FindRowByQuoteNumber(context.Background(), "WD-BBB-0002")
	if err != nil {
		t.Fatalf("find row: %v", err)
	}
	if row != 3 {
		t.Fatalf("expected row 3, got %d", row)
	}
}

func TestFindRowByQuoteNumberReturnsNotFound(t *testing.T) {
	client := &fakeRangeClient{readRows: [][]string{{"WD-AAA-0001"}}}
	repo := New(client, "Inquiries!A:P")

	_, err := repo.FindRowByQuoteNumber(context.Background(), "WD-ZZZ-9999")
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if client.updateCalled != 0 {
		t.Fatal("no row should be altered on a miss")
	}
}

func TestUpdateAdditionalTouchesOnlyLinkAndNoteCells(t *testing.T) {
	client := &fakeRangeClient{}
	repo := New(client, "Inquiries!A:P")

	err := repo.UpdateAdditional(context.Background(), 4, "[portfolio] https://example.com", "call after 6pm")
	if err != nil {
		t.Fatalf("update additional: %v", err)
	}

	if client.updatedRng != "Inquiries!N4:O4" {
		t.Fatalf("unexpected update range %q", client.updatedRng)
	}
	if len(client.updatedVals) != 1 || len(client.updatedVals[0]) != 2 {
		t.Fatalf("unexpected update shape: %v", client.updatedVals)
	}
}

func TestUpdateAdditionalLinksOnlyKeepsExistingNotes(t *testing.T) {
	client := &fakeRangeClient{readRows: [][]string{
		{"", "estimate: ₩250,000 ~ ₩500,000\ndomain: pending"},
	}}
	repo := New(client, "Inquiries!A:P")

	err := repo.UpdateAdditional(context.Background(), 4, "[portfolio] https://example.com", "")
	if err != nil {
		t.Fatalf("update additional: %v", err)
	}

	got := client.updatedVals[0]
	if got[0] != "[portfolio] https://example.com" {
		t.Fatalf("unexpected links cell %q", got[0])
	}
	if got[1] != "estimate: ₩250,000 ~ ₩500,000\ndomain: pending" {
		t.Fatalf("notes cell must survive a links-only update, got %q", got[1])
	}
}

func TestUpdateAdditionalAppendsToExistingCells(t *testing.T) {
	client := &fakeRangeClient{readRows: [][]string{
		{"[reference] https://example.com/old", "estimate: ₩250,000 ~ ₩500,000"},
	}}
	repo := New(client, "Inquiries!A:P")

	err := repo.UpdateAdditional(context.Background(), 9, "[asset] https://example.com/new", "prefers dark palette")
	if err != nil {
		t.Fatalf("update additional: %v", err)
	}

	got := client.updatedVals[0]
	if got[0] != "[reference] https://example.com/old\n[asset] https://example.com/new" {
		t.Fatalf("unexpected links cell %q", got[0])
	}
	if got[1] != "estimate: ₩250,000 ~ ₩500,000\nprefers dark palette" {
		t.Fatalf("unexpected notes cell %q", got[1])
	}
}
