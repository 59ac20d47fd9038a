package service

import (
	"fmt"

	"agency_backend/internal/quote/transport"

	"github.com/go-playground/validator/v10"
)

// validate runs the submission rules and returns every violated constraint as
// an independent message. Validity is the conjunction of all rules.
func (s *Service) validate(req transport.SubmitQuoteRequest) []string {
	err := s.val.Struct(req)
	if err == nil {
		return nil
	}
	return validationMessages(err)
}

// validationMessages translates validator errors into the messages surfaced
// verbatim to callers. One entry per violated rule, in rule order.
func validationMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid request"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, messageFor(fe))
	}
	return msgs
}

func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "ClientName":
		return "clientName is required"
	case "ContactMethod":
		return "contactMethod must be one of email, sms, phone"
	case "ClientEmail":
		return "clientEmail is required when contactMethod is email"
	case "ClientPhone":
		return "clientPhone is required when contactMethod is sms or phone"
	case "ScreenBlocks", "Min", "Max":
		return "screenBlocks must be an object with numeric min and max"
	case "UIUXStyle":
		return "uiuxStyle must be one of normal, fancy"
	case "QuoteNumber":
		return "quoteNumber is required"
	case "Type":
		return "additionalLinks type must be one of portfolio, reference, asset, other"
	case "URL":
		return "additionalLinks url must be a valid URL"
	case "Status":
		return "option status must be confirmed or pending"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
