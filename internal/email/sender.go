// Package email delivers transactional mail for the quote pipeline.
package email

import (
	"context"

	"agency_backend/platform/config"
)

// QuoteReceivedData fills the internal alert sent to the studio inbox when a
// new inquiry lands.
type QuoteReceivedData struct {
	QuoteNumber       string
	ClientName        string
	ClientEmail       string
	ClientPhone       string
	ContactMethod     string
	EstimateFormatted string
}

// QuoteConfirmationData fills the confirmation sent back to the client.
type QuoteConfirmationData struct {
	ClientName        string
	QuoteNumber       string
	EstimateFormatted string
	CompanyName       string
}

// Sender delivers the pipeline's outbound mail.
type Sender interface {
	SendQuoteReceivedEmail(ctx context.Context, toEmail string, data QuoteReceivedData) error
	SendQuoteConfirmationEmail(ctx context.Context, toEmail string, data QuoteConfirmationData) error
}

// NewSender builds the configured sender. With email disabled it returns a
// no-op so callers never branch on configuration.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// NoopSender discards all mail.
type NoopSender struct{}

func (NoopSender) SendQuoteReceivedEmail(context.Context, string, QuoteReceivedData) error {
	return nil
}

func (NoopSender) SendQuoteConfirmationEmail(context.Context, string, QuoteConfirmationData) error {
	return nil
}
