// Package repository persists inquiries to the spreadsheet store.
package repository

import (
	"context"
	"fmt"
	"strings"

	"agency_backend/platform/apperr"
)

// RangeClient is the slice of the sheets client the repository needs.
type RangeClient interface {
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	Append(ctx context.Context, rng string, row []string) error
	Update(ctx context.Context, rng string, values [][]string) error
}

// Column positions are contractually fixed: the existing spreadsheet is the
// system of record and other tooling reads it by position.
const (
	colDate = iota
	colTime
	colQuoteNumber
	colClientName
	colPhone
	colEmail
	colContactMethod
	colIndustry
	colPurpose
	colPreferredColor
	colToneManner
	colHeldAssets
	colPriorQuoteExperience
	colAdditionalLinks
	colNotes
	colStatus
	columnCount
)

// Letter references for the columns touched by the update pathway.
const (
	quoteNumberColumn     = "C"
	additionalLinksColumn = "N"
	notesColumn           = "O"
)

// Inquiry is one inquiry row in its persisted shape. All values are strings
// because the store is tabular text.
type Inquiry struct {
	Date                 string
	Time                 string
	QuoteNumber          string
	ClientName           string
	Phone                string
	Email                string
	ContactMethod        string
	Industry             string
	Purpose              string
	PreferredColor       string
	ToneManner           string
	HeldAssets           string
	PriorQuoteExperience string
	AdditionalLinks      string
	Notes                string
	Status               string
}

// Repository reads and writes inquiry rows.
type Repository struct {
	client       RangeClient
	inquiryRange string
	sheetName    string
}

// New creates a repository appending to the given inquiry range
// (e.g. "Inquiries!A:P").
func New(client RangeClient, inquiryRange string) *Repository {
	return &Repository{
		client:       client,
		inquiryRange: inquiryRange,
		sheetName:    sheetNameOf(inquiryRange),
	}
}

// AppendInquiry appends one inquiry row in the fixed column order.
func (r *Repository) AppendInquiry(ctx context.Context, inq Inquiry) error {
	row := make([]string, columnCount)
	row[colDate] = inq.Date
	row[colTime] = inq.Time
	row[colQuoteNumber] = inq.QuoteNumber
	row[colClientName] = inq.ClientName
	row[colPhone] = inq.Phone
	row[colEmail] = inq.Email
	row[colContactMethod] = inq.ContactMethod
	row[colIndustry] = inq.Industry
	row[colPurpose] = inq.Purpose
	row[colPreferredColor] = inq.PreferredColor
	row[colToneManner] = inq.ToneManner
	row[colHeldAssets] = inq.HeldAssets
	row[colPriorQuoteExperience] = inq.PriorQuoteExperience
	row[colAdditionalLinks] = inq.AdditionalLinks
	row[colNotes] = inq.Notes
	row[colStatus] = inq.Status

	if err := r.client.Append(ctx, r.inquiryRange, row); err != nil {
		return fmt.Errorf("append inquiry %s: %w", inq.QuoteNumber, err)
	}
	return nil
}

// FindRowByQuoteNumber scans the quote-number column and returns the 1-based
// row index of the match. Linear scan is fine at inquiry volume.
func (r *Repository) FindRowByQuoteNumber(ctx context.Context, quoteNumber string) (int, error) {
	rng := fmt.Sprintf("%s!%s:%s", r.sheetName, quoteNumberColumn, quoteNumberColumn)
	rows, err := r.client.ReadRange(ctx, rng)
	if err != nil {
		return 0, fmt.Errorf("scan quote numbers: %w", err)
	}

	for i, row := range rows {
		if len(row) > 0 && row[0] == quoteNumber {
			return i + 1, nil
		}
	}

	return 0, apperr.NotFound("quote not found")
}

// UpdateAdditional merges follow-up material into the additional-links and
// notes cells of the given row; no other column is touched. Non-empty values
// are appended below what the cell already holds, so the notes written at
// submission (estimate, option summaries) survive every later update. Empty
// values leave the cell as it was.
func (r *Repository) UpdateAdditional(ctx context.Context, rowIndex int, links, note string) error {
	rng := fmt.Sprintf("%s!%s%d:%s%d", r.sheetName, additionalLinksColumn, rowIndex, notesColumn, rowIndex)

	rows, err := r.client.ReadRange(ctx, rng)
	if err != nil {
		return fmt.Errorf("read row %d: %w", rowIndex, err)
	}
	var curLinks, curNotes string
	if len(rows) > 0 {
		if len(rows[0]) > 0 {
			curLinks = rows[0][0]
		}
		if len(rows[0]) > 1 {
			curNotes = rows[0][1]
		}
	}

	merged := [][]string{{appendCell(curLinks, links), appendCell(curNotes, note)}}
	if err := r.client.Update(ctx, rng, merged); err != nil {
		return fmt.Errorf("update row %d: %w", rowIndex, err)
	}
	return nil
}

func appendCell(existing, added string) string {
	if added == "" {
		return existing
	}
	if existing == "" {
		return added
	}
	return existing + "\n" + added
}

func sheetNameOf(rng string) string {
	if i := strings.Index(rng, "!"); i > 0 {
		return rng[:i]
	}
	return rng
}
