// Package service implements the quote pricing and submission pipeline.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agency_backend/internal/events"
	"agency_backend/internal/quote/repository"
	"agency_backend/internal/quote/transport"
	"agency_backend/internal/settings"
	"agency_backend/platform/apperr"
	"agency_backend/platform/logger"
	"agency_backend/platform/phone"
	platformvalidator "agency_backend/platform/validator"

	"github.com/google/uuid"
)

// quoteNumberPrefix identifies inquiries from this intake channel.
const quoteNumberPrefix = "WD-"

// InquiryStore is the persistence surface the pipeline needs.
type InquiryStore interface {
	AppendInquiry(ctx context.Context, inq repository.Inquiry) error
	FindRowByQuoteNumber(ctx context.Context, quoteNumber string) (int, error)
	UpdateAdditional(ctx context.Context, rowIndex int, links, note string) error
}

// SettingsSource yields the current pricing configuration snapshot.
type SettingsSource interface {
	Get(ctx context.Context) settings.Snapshot
}

// Service orchestrates validation, quote-number generation, pricing,
// persistence, and best-effort notification for inbound inquiries.
type Service struct {
	store       InquiryStore
	settingsSrc SettingsSource
	bus         events.Bus
	val         *platformvalidator.Validator
	log         *logger.Logger
	now         func() time.Time
}

// New creates a quote service.
func New(store InquiryStore, settingsSrc SettingsSource, bus events.Bus, val *platformvalidator.Validator, log *logger.Logger) *Service {
	return &Service{
		store:       store,
		settingsSrc: settingsSrc,
		bus:         bus,
		val:         val,
		log:         log,
		now:         time.Now,
	}
}

// Submit runs the full pipeline for one inbound request.
//
// A validation failure returns immediately with the full error list and zero
// side effects. A persistence failure fails the request. A notification
// failure never does: the event is published fire-and-forget after the row is
// committed.
func (s *Service) Submit(ctx context.Context, req transport.SubmitQuoteRequest) (*transport.SubmitQuoteResponse, error) {
	normalize(&req)

	if msgs := s.validate(req); len(msgs) > 0 {
		return nil, apperr.Validation("validation failed").WithDetails(msgs)
	}

	quoteNumber := s.generateQuoteNumber()

	snap := s.settingsSrc.Get(ctx)
	estimate := CalculateEstimate(
		*req.ScreenBlocks.Min,
		*req.ScreenBlocks.Max,
		transport.UIUXStyle(req.UIUXStyle),
		req.Features,
		snap.Settings,
	)

	now := s.now()
	inq := repository.Inquiry{
		Date:                 now.Format("2006-01-02"),
		Time:                 now.Format("15:04"),
		QuoteNumber:          quoteNumber,
		ClientName:           req.ClientName,
		Phone:                req.ClientPhone,
		Email:                req.ClientEmail,
		ContactMethod:        req.ContactMethod,
		Industry:             req.Industry,
		Purpose:              req.Purpose,
		PreferredColor:       req.PreferredColor,
		ToneManner:           req.ToneManner,
		HeldAssets:           req.HeldAssets,
		PriorQuoteExperience: req.PriorQuoteExperience,
		Notes:                buildNotes(req, estimate),
		Status:               string(transport.StatusPending),
	}

	if err := s.store.AppendInquiry(ctx, inq); err != nil {
		if s.log != nil {
			s.log.SheetError("append_inquiry", err)
		}
		return nil, apperr.Internal("failed to save inquiry", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuoteSubmitted{
			BaseEvent:     events.NewBaseEvent(),
			QuoteNumber:   quoteNumber,
			ClientName:    req.ClientName,
			ClientEmail:   req.ClientEmail,
			ClientPhone:   req.ClientPhone,
			ContactMethod: req.ContactMethod,
			EstimateMin:   estimate.Min,
			EstimateMax:   estimate.Max,
			Formatted:     estimate.Formatted,
		})
	}

	return &transport.SubmitQuoteResponse{
		Success:        true,
		QuoteNumber:    quoteNumber,
		EstimatedPrice: estimate,
	}, nil
}

// Update attaches follow-up links and a note to an existing inquiry, located
// by quote number. Provided fields are appended to the stored cells; absent
// fields leave them untouched. A missing quote number is a bad request; an
// unknown one is not found and alters nothing.
func (s *Service) Update(ctx context.Context, req transport.UpdateQuoteRequest) error {
	if strings.TrimSpace(req.QuoteNumber) == "" {
		return apperr.BadRequest("quoteNumber is required")
	}
	if err := s.val.Struct(req); err != nil {
		return apperr.Validation("validation failed").WithDetails(validationMessages(err))
	}

	rowIndex, err := s.store.FindRowByQuoteNumber(ctx, req.QuoteNumber)
	if err != nil {
		if domainErr, ok := err.(*apperr.Error); ok {
			return domainErr
		}
		if s.log != nil {
			s.log.SheetError("find_inquiry", err)
		}
		return apperr.Internal("failed to look up inquiry", err)
	}

	if err := s.store.UpdateAdditional(ctx, rowIndex, joinLinks(req.AdditionalLinks), req.AdditionalNote); err != nil {
		if s.log != nil {
			s.log.SheetError("update_inquiry", err)
		}
		return apperr.Internal("failed to update inquiry", err)
	}

	return nil
}

// generateQuoteNumber builds a practically unique identifier without a
// coordination service: prefix + base-36 timestamp + short random suffix.
// Collisions are accepted as negligible, not formally prevented.
func (s *Service) generateQuoteNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(s.now().UnixMilli(), 36))
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return quoteNumberPrefix + ts + "-" + suffix
}

func normalize(req *transport.SubmitQuoteRequest) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	// Best effort: invalid numbers pass through unchanged, validation never
	// rejects on format.
	req.ClientPhone = phone.NormalizeE164(req.ClientPhone)
}

func buildNotes(req transport.SubmitQuoteRequest, estimate transport.PriceEstimate) string {
	parts := make([]string, 0, 4)
	if strings.TrimSpace(req.SpecialNotes) != "" {
		parts = append(parts, strings.TrimSpace(req.SpecialNotes))
	}
	parts = append(parts, "estimate: "+estimate.Formatted)

	if opt := req.ServerOption; opt != nil {
		if opt.Status == transport.OptionConfirmed {
			parts = append(parts, fmt.Sprintf("server hosting: %d year(s)", opt.Years))
		} else {
			parts = append(parts, "server hosting: pending")
		}
	}
	if opt := req.DomainOption; opt != nil {
		switch {
		case opt.Status == transport.OptionConfirmed && opt.Transfer:
			parts = append(parts, fmt.Sprintf("domain: %d year(s), transfer", opt.Years))
		case opt.Status == transport.OptionConfirmed:
			parts = append(parts, fmt.Sprintf("domain: %d year(s)", opt.Years))
		default:
			parts = append(parts, "domain: pending")
		}
	}

	return strings.Join(parts, "\n")
}

// joinLinks renders links in the persisted newline-joined "[type] url" form.
func joinLinks(links []transport.AdditionalLink) string {
	if len(links) == 0 {
		return ""
	}
	lines := make([]string, 0, len(links))
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("[%s] %s", link.Label(), link.URL))
	}
	return strings.Join(lines, "\n")
}
