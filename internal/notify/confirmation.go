package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

const confirmationCategory = "booking-confirmation"

type confirmationData struct {
	BookingID string
	Name      string
	Phone     string
	Room      string
	CheckIn   string
	CheckOut  string
	Nights    int
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(`<html>
  <body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
    <div style="background-color: white; padding: 30px; border-radius: 8px; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px;">Booking Confirmation</h2>
      <p style="font-size: 16px; color: #333;">Dear <strong>{{.Name}}</strong>,</p>
      <p style="color: #555; font-size: 15px;">Thank you for booking with us. Your reservation has been confirmed. Please find the details below:</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-left: 4px solid #3498db; margin: 20px 0;">
        <p style="margin: 8px 0;"><strong>Booking ID:</strong> <span style="color: #3498db; font-size: 18px;">{{.BookingID}}</span></p>
        <p style="margin: 8px 0;"><strong>Guest Name:</strong> {{.Name}}</p>
        <p style="margin: 8px 0;"><strong>Contact Number:</strong> {{.Phone}}</p>
        <p style="margin: 8px 0;"><strong>Room Category:</strong> {{.Room}}</p>
        <p style="margin: 8px 0;"><strong>Check-in Date:</strong> {{.CheckIn}}</p>
        <p style="margin: 8px 0;"><strong>Check-out Date:</strong> {{.CheckOut}}</p>
        <p style="margin: 8px 0;"><strong>Duration:</strong> {{.Nights}} night(s)</p>
      </div>
      <div style="background-color: #e8f8f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p style="color: #27ae60; margin: 0;"><strong>&#10003; Booking Status:</strong> CONFIRMED</p>
      </div>
      <p style="color: #555; font-size: 15px; line-height: 1.6;">
        Your reservation is secured. We look forward to welcoming you. If you need to modify or cancel your booking,
        please contact us as soon as possible referencing your booking ID.
      </p>
      <p style="color: #555; font-size: 15px; line-height: 1.6;">
        <strong>Check-in Information:</strong> Please arrive by 3:00 PM. Early check-in may be available upon request.
      </p>
      <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
      <p style="color: #7f8c8d; font-size: 12px; text-align: center;">
        This is an automated confirmation. Please do not reply directly to this email.
        For assistance, contact our guest services.
      </p>
      <p style="color: #7f8c8d; font-size: 12px; text-align: center;">
        Best regards,<br><strong>The Hotel Management Team</strong>
      </p>
    </div>
  </body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(`Dear {{.Name}},

Thank you for booking with us. Your reservation has been confirmed.

BOOKING DETAILS:
Booking ID: {{.BookingID}}
Guest Name: {{.Name}}
Contact: {{.Phone}}
Room Type: {{.Room}}
Check-in: {{.CheckIn}}
Check-out: {{.CheckOut}}
Duration: {{.Nights}} night(s)

BOOKING STATUS: CONFIRMED

We look forward to welcoming you. Please arrive by 3:00 PM.

Should you have any questions, please contact our guest services.

Best regards,
The Hotel Management Team
`))

// BuildConfirmationEmail renders the guest's confirmation message.
func BuildConfirmationEmail(to, bookingID string, d booking.Details) (EmailMessage, error) {
	data := confirmationData{
		BookingID: bookingID,
		Name:      d.Name,
		Phone:     d.Phone,
		Room:      d.RoomLabel(),
		CheckIn:   d.CheckIn,
		CheckOut:  d.CheckOut,
		Nights:    d.Nights(),
	}

	var html, text bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render confirmation html: %w", err)
	}
	if err := confirmationText.Execute(&text, data); err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render confirmation text: %w", err)
	}

	return EmailMessage{
		To:        to,
		ToName:    d.Name,
		Subject:   fmt.Sprintf("Booking Confirmation - Booking ID: %s", bookingID),
		Text:      text.String(),
		HTML:      html.String(),
		BookingID: bookingID,
		Category:  confirmationCategory,
	}, nil
}

// ConfirmationMailer emails guests once their booking is stored. Delivery
// problems are logged and reported as false, never returned.
type ConfirmationMailer struct {
	sender EmailSender
	logger *logging.Logger
}

// NewConfirmationMailer wraps a sender. A nil sender means email is not
// configured and every confirmation reports false.
func NewConfirmationMailer(sender EmailSender, logger *logging.Logger) *ConfirmationMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &ConfirmationMailer{sender: sender, logger: logger}
}

func (m *ConfirmationMailer) SendConfirmation(ctx context.Context, email, bookingID string, d booking.Details) bool {
	if m.sender == nil {
		m.logger.Warn("email provider not configured; skipping confirmation", "booking_id", bookingID)
		return false
	}

	msg, err := BuildConfirmationEmail(email, bookingID, d)
	if err != nil {
		m.logger.Error("failed to build confirmation email", "booking_id", bookingID, "error", err)
		return false
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Error("failed to send confirmation email", "booking_id", bookingID, "to", email, "error", err)
		return false
	}
	return true
}
