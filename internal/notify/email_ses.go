package notify

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// SESClient is the slice of *sesv2.Client the sender needs.
type SESClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESConfig configures SESSender. ConfigurationSet enables SES event
// publishing for delivery tracking when set.
type SESConfig struct {
	FromEmail        string
	FromName         string
	ReplyTo          string
	ConfigurationSet string
}

// SESSender delivers guest emails through Amazon SES v2.
type SESSender struct {
	client SESClient
	cfg    SESConfig
	logger *logging.Logger
}

// NewSESSender returns nil without a client.
func NewSESSender(client SESClient, cfg SESConfig, logger *logging.Logger) *SESSender {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	return &SESSender{client: client, cfg: cfg, logger: logger}
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

func (s *SESSender) buildInput(msg EmailMessage) *sesv2.SendEmailInput {
	body := &types.Body{}
	if msg.Text != "" {
		body.Text = utf8Content(msg.Text)
	}
	if msg.HTML != "" {
		body.Html = utf8Content(msg.HTML)
	}

	to := (&mail.Address{Name: msg.ToName, Address: msg.To}).String()
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String((&mail.Address{Name: s.cfg.FromName, Address: s.cfg.FromEmail}).String()),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{Subject: utf8Content(msg.Subject), Body: body},
		},
	}
	if replyTo := firstNonEmpty(msg.ReplyTo, s.cfg.ReplyTo); replyTo != "" {
		input.ReplyToAddresses = []string{replyTo}
	}
	if s.cfg.ConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(s.cfg.ConfigurationSet)
	}

	var tags []types.MessageTag
	if msg.Category != "" {
		tags = append(tags, types.MessageTag{Name: aws.String("category"), Value: aws.String(msg.Category)})
	}
	if msg.BookingID != "" {
		tags = append(tags, types.MessageTag{Name: aws.String("booking_id"), Value: aws.String(msg.BookingID)})
	}
	input.EmailTags = tags
	return input
}

func (s *SESSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := msg.validate(); err != nil {
		return err
	}
	output, err := s.client.SendEmail(ctx, s.buildInput(msg))
	if err != nil {
		s.logger.Error("ses send failed", "booking_id", msg.BookingID, "error", err)
		return fmt.Errorf("notify: ses send: %w", err)
	}
	s.logger.Info("confirmation email queued", "provider", "ses", "booking_id", msg.BookingID, "message_id", aws.ToString(output.MessageId))
	return nil
}

var _ EmailSender = (*SESSender)(nil)
