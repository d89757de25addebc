package bootstrap

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
	"github.com/wolfman30/hotel-booking-assistant/internal/notify"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// BuildEmailSender selects the confirmation email provider. A nil result
// means email is not configured.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) notify.EmailSender {
	if cfg == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.EmailProvider)) {
	case "stub":
		logger.Info("using stub email sender")
		return notify.NewStubEmailSender(logger)
	case "ses":
		if loadAWS == nil {
			logger.Warn("ses email provider selected without aws config; email disabled")
			return nil
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			logger.Error("failed to load aws config for ses", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail:        cfg.SendGridFromEmail,
			FromName:         cfg.SendGridFromName,
			ReplyTo:          cfg.EmailReplyTo,
			ConfigurationSet: cfg.SESConfigurationSet,
		}, logger)
		if sender == nil {
			return nil
		}
		logger.Info("using ses email sender", "region", awsCfg.Region)
		return sender
	default:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
			ReplyTo:   cfg.EmailReplyTo,
		}, logger)
		if sender == nil {
			logger.Warn("SENDGRID_API_KEY not set; confirmation emails disabled")
			return nil
		}
		logger.Info("using sendgrid email sender", "from", cfg.SendGridFromEmail)
		return sender
	}
}
