// Package transport defines the request/response types for the quote module.
package transport

import (
	"strings"

	platformvalidator "agency_backend/platform/validator"

	"github.com/go-playground/validator/v10"
)

// ContactMethod is how the client wants to be reached.
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactSMS   ContactMethod = "sms"
	ContactPhone ContactMethod = "phone"
)

// UIUXStyle is the binary complexity tier multiplying the base price.
type UIUXStyle string

const (
	StyleNormal UIUXStyle = "normal"
	StyleFancy  UIUXStyle = "fancy"
)

// InquiryStatus is the lifecycle state of one inquiry. Submissions are
// created pending; the status only advances, it never regresses.
type InquiryStatus string

const (
	StatusPending   InquiryStatus = "pending"
	StatusContacted InquiryStatus = "contacted"
	StatusCompleted InquiryStatus = "completed"
	StatusCanceled  InquiryStatus = "canceled"
)

// OptionStatus marks a hosting/domain choice as confirmed with parameters or
// still pending a decision.
const (
	OptionConfirmed = "confirmed"
	OptionPending   = "pending"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ScreenBlocks is the client-chosen page/section count range driving pricing.
// Pointers distinguish absent fields from zero.
type ScreenBlocks struct {
	Min *int `json:"min" validate:"required,min=0"`
	Max *int `json:"max" validate:"required,min=0"`
}

// ServerOption is the optional server-hosting choice.
type ServerOption struct {
	Status string `json:"status" validate:"required,oneof=confirmed pending"`
	Years  int    `json:"years" validate:"omitempty,min=1,max=5"`
}

// DomainOption is the optional domain choice.
type DomainOption struct {
	Status   string `json:"status" validate:"required,oneof=confirmed pending"`
	Years    int    `json:"years" validate:"omitempty,min=1,max=10"`
	Transfer bool   `json:"transfer"`
}

// SubmitQuoteRequest is the body of POST /api/v1/quote/submit.
type SubmitQuoteRequest struct {
	ClientName           string        `json:"clientName" validate:"required"`
	ClientPhone          string        `json:"clientPhone"`
	ClientEmail          string        `json:"clientEmail"`
	ContactMethod        string        `json:"contactMethod" validate:"required,oneof=email sms phone"`
	ScreenBlocks         *ScreenBlocks `json:"screenBlocks" validate:"required"`
	UIUXStyle            string        `json:"uiuxStyle" validate:"required,oneof=normal fancy"`
	Features             []string      `json:"features"`
	SpecialNotes         string        `json:"specialNotes"`
	Industry             string        `json:"industry"`
	Purpose              string        `json:"purpose"`
	PreferredColor       string        `json:"preferredColor"`
	ToneManner           string        `json:"toneManner"`
	HeldAssets           string        `json:"heldAssets"`
	PriorQuoteExperience string        `json:"priorQuoteExperience"`
	ServerOption         *ServerOption `json:"serverOption" validate:"omitempty"`
	DomainOption         *DomainOption `json:"domainOption" validate:"omitempty"`
}

// AdditionalLink is one follow-up link attached to an existing inquiry.
type AdditionalLink struct {
	Type       string `json:"type" validate:"required,oneof=portfolio reference asset other"`
	CustomType string `json:"customType"`
	URL        string `json:"url" validate:"required,url"`
}

// Label returns the bracket label used in the persisted newline-joined form.
func (l AdditionalLink) Label() string {
	if l.Type == "other" && strings.TrimSpace(l.CustomType) != "" {
		return strings.TrimSpace(l.CustomType)
	}
	return l.Type
}

// UpdateQuoteRequest is the body of PUT /api/v1/quote/update.
type UpdateQuoteRequest struct {
	QuoteNumber     string           `json:"quoteNumber" validate:"required"`
	AdditionalLinks []AdditionalLink `json:"additionalLinks" validate:"omitempty,dive"`
	AdditionalNote  string           `json:"additionalNote"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// FeatureLine is one itemized feature surcharge in the estimate breakdown.
type FeatureLine struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// EstimateBreakdown itemizes how the estimate was composed. Summing the
// components reconstructs min/max exactly.
type EstimateBreakdown struct {
	BaseMin      int64         `json:"baseMin"`
	BaseMax      int64         `json:"baseMax"`
	FeatureTotal int64         `json:"featureTotal"`
	Features     []FeatureLine `json:"features"`
}

// PriceEstimate is the pricing engine output. Always Min <= Max.
type PriceEstimate struct {
	Min       int64             `json:"min"`
	Max       int64             `json:"max"`
	Formatted string            `json:"formatted"`
	Breakdown EstimateBreakdown `json:"breakdown"`
}

// SubmitQuoteResponse is the success body of POST /api/v1/quote/submit.
type SubmitQuoteResponse struct {
	Success        bool          `json:"success"`
	QuoteNumber    string        `json:"quoteNumber"`
	EstimatedPrice PriceEstimate `json:"estimatedPrice"`
}

// ── Validation ────────────────────────────────────────────────────────────────

// RegisterValidations installs the cross-field submission rules on the shared
// validator: the required contact detail depends on the chosen method.
func RegisterValidations(val *platformvalidator.Validator) {
	val.RegisterStructValidation(submitStructLevel, SubmitQuoteRequest{})
}

func submitStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(SubmitQuoteRequest)

	switch ContactMethod(req.ContactMethod) {
	case ContactEmail:
		if strings.TrimSpace(req.ClientEmail) == "" {
			sl.ReportError(req.ClientEmail, "clientEmail", "ClientEmail", "required_contact", "")
		}
	case ContactSMS, ContactPhone:
		if strings.TrimSpace(req.ClientPhone) == "" {
			sl.ReportError(req.ClientPhone, "clientPhone", "ClientPhone", "required_contact", "")
		}
	}
}
