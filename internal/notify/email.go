package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

const (
	defaultFromName     = "Hotel Reservations"
	defaultSendGridHost = "https://api.sendgrid.com"
	sendGridMailPath    = "/v3/mail/send"
)

var errNoRecipient = errors.New("notify: message has no recipient")

// EmailSender delivers one rendered guest email.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is a rendered email ready for a provider.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string

	// ReplyTo overrides the sender's reply address when set.
	ReplyTo string
	// BookingID travels as provider metadata so bounces and opens can be
	// traced back to a reservation.
	BookingID string
	Category  string
}

func (m EmailMessage) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return errNoRecipient
	}
	return nil
}

// SendGridConfig configures SendGridSender. Host is only overridden in tests.
type SendGridConfig struct {
	APIKey    string
	Host      string
	FromEmail string
	FromName  string
	ReplyTo   string
}

// SendGridSender posts guest emails to the SendGrid v3 mail API.
type SendGridSender struct {
	apiKey  string
	host    string
	from    *mail.Email
	replyTo string
	logger  *logging.Logger
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	if cfg.Host == "" {
		cfg.Host = defaultSendGridHost
	}
	return &SendGridSender{
		apiKey:  cfg.APIKey,
		host:    strings.TrimRight(cfg.Host, "/"),
		from:    mail.NewEmail(cfg.FromName, cfg.FromEmail),
		replyTo: cfg.ReplyTo,
		logger:  logger,
	}
}

func (s *SendGridSender) buildMail(msg EmailMessage) *mail.SGMailV3 {
	html := msg.HTML
	if html == "" {
		html = msg.Text
	}
	message := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail(msg.ToName, msg.To), msg.Text, html)

	if replyTo := firstNonEmpty(msg.ReplyTo, s.replyTo); replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}
	if msg.Category != "" {
		message.AddCategories(msg.Category)
	}
	if msg.BookingID != "" {
		message.SetCustomArg("booking_id", msg.BookingID)
	}
	return message
}

// Send delivers msg. SendGrid answers 202 once the message is queued.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := msg.validate(); err != nil {
		return err
	}

	request := sendgrid.GetRequest(s.apiKey, sendGridMailPath, s.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(s.buildMail(msg))

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		s.logger.Error("sendgrid send failed", "booking_id", msg.BookingID, "error", err)
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		s.logger.Error("sendgrid rejected message", "booking_id", msg.BookingID, "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("confirmation email queued", "provider", "sendgrid", "booking_id", msg.BookingID, "status", response.StatusCode)
	return nil
}

// StubEmailSender only logs. It backs EMAIL_PROVIDER=stub for local runs.
type StubEmailSender struct {
	logger *logging.Logger
}

func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	if err := msg.validate(); err != nil {
		return err
	}
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject, "booking_id", msg.BookingID)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var (
	_ EmailSender = (*SendGridSender)(nil)
	_ EmailSender = (*StubEmailSender)(nil)
)
