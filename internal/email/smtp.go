package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuoteReceivedEmail(ctx context.Context, toEmail string, data QuoteReceivedData) error {
	subject := fmt.Sprintf(subjectQuoteReceivedFmt, data.QuoteNumber)
	content, err := renderEmailTemplate("quote_received.html", quoteReceivedEmailData{
		baseEmailData: baseEmailData{
			Title:   "새 견적 문의",
			Heading: "새 견적 문의가 접수되었습니다",
		},
		QuoteNumber:       data.QuoteNumber,
		ClientName:        data.ClientName,
		ClientEmail:       data.ClientEmail,
		ClientPhone:       data.ClientPhone,
		ContactMethod:     data.ContactMethod,
		EstimateFormatted: data.EstimateFormatted,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendQuoteConfirmationEmail(ctx context.Context, toEmail string, data QuoteConfirmationData) error {
	subject := fmt.Sprintf(subjectQuoteConfirmationFmt, data.QuoteNumber)
	content, err := renderEmailTemplate("quote_confirmation.html", quoteConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "견적 문의 접수 완료",
			Heading: "견적 문의가 접수되었습니다",
		},
		ClientName:        data.ClientName,
		QuoteNumber:       data.QuoteNumber,
		EstimateFormatted: data.EstimateFormatted,
		CompanyName:       data.CompanyName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}
