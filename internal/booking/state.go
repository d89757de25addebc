package booking

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// State tracks one booking attempt. Empty strings mean "not collected yet".
type State struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	RoomType     string `json:"room_type,omitempty"`
	CheckIn      string `json:"check_in,omitempty"`
	CheckOut     string `json:"check_out,omitempty"`
	Confirmed    bool   `json:"confirmed"`
	CurrentField Field  `json:"current_field"`
}

// NewState returns an empty booking with nothing collected.
func NewState() *State {
	return &State{}
}

// Value returns the collected value for f.
func (s *State) Value(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldRoomType:
		return s.RoomType
	case FieldCheckIn:
		return s.CheckIn
	case FieldCheckOut:
		return s.CheckOut
	default:
		return ""
	}
}

func (s *State) set(f Field, v string) {
	switch f {
	case FieldName:
		s.Name = v
	case FieldEmail:
		s.Email = v
	case FieldPhone:
		s.Phone = v
	case FieldRoomType:
		s.RoomType = v
	case FieldCheckIn:
		s.CheckIn = v
	case FieldCheckOut:
		s.CheckOut = v
	}
}

// MissingFields returns the unset fields in the order they are asked.
func (s *State) MissingFields() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if s.Value(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field is set.
func (s *State) Complete() bool {
	return len(s.MissingFields()) == 0
}

// NextQuestion points CurrentField at the first missing field and returns
// its prompt. It returns false once every field has been collected.
func (s *State) NextQuestion() (string, bool) {
	missing := s.MissingFields()
	if len(missing) == 0 {
		return "", false
	}
	s.CurrentField = missing[0]
	return s.CurrentField.Prompt(), true
}

// ApplyInput validates raw against CurrentField and stores it on success.
// A failed validation leaves the booking untouched and CurrentField
// unchanged. A check-out that is not after check-in is stored and then
// reverted so the question is asked again.
func (s *State) ApplyInput(raw string) error {
	field := s.CurrentField
	if field == FieldNone {
		return ErrNoCurrentField
	}

	cleaned, err := Validate(field, raw)
	if err != nil {
		return err
	}
	s.set(field, cleaned)

	if field == FieldCheckOut {
		if err := CheckoutAfterCheckin(s.CheckIn, s.CheckOut); err != nil {
			s.CheckOut = ""
			return err
		}
	}
	return nil
}

// Phase is the coarse position of a booking in its lifecycle.
type Phase string

const (
	PhaseCollecting           Phase = "collecting"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseConfirmed            Phase = "confirmed"
)

// Phase reports where the booking is. While collecting, CurrentField says
// which question is outstanding.
func (s *State) Phase() Phase {
	switch {
	case s.Confirmed:
		return PhaseConfirmed
	case s.Complete():
		return PhaseAwaitingConfirmation
	default:
		return PhaseCollecting
	}
}

// Details is the validated snapshot handed to persistence and email.
type Details struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	RoomType string `json:"room_type"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// Details copies the collected values.
func (s *State) Details() Details {
	return Details{
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		RoomType: s.RoomType,
		CheckIn:  s.CheckIn,
		CheckOut: s.CheckOut,
	}
}

// Nights is the length of stay. Invalid dates yield zero.
func (d Details) Nights() int {
	in, errIn := time.Parse(DateLayout, d.CheckIn)
	out, errOut := time.Parse(DateLayout, d.CheckOut)
	if errIn != nil || errOut != nil || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// RoomLabel is the room type with a capital first letter.
func (d Details) RoomLabel() string {
	return Capitalize(d.RoomType)
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Summary renders every field for the guest to confirm.
func (s *State) Summary() string {
	d := s.Details()
	var b strings.Builder
	b.WriteString("✅ **Please confirm your booking details:**\n\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", d.Name)
	fmt.Fprintf(&b, "📧 Email: %s\n", d.Email)
	fmt.Fprintf(&b, "📱 Phone: %s\n", d.Phone)
	fmt.Fprintf(&b, "🏨 Room Type: %s\n", d.RoomLabel())
	fmt.Fprintf(&b, "📅 Check-in: %s\n", d.CheckIn)
	fmt.Fprintf(&b, "📅 Check-out: %s\n\n", d.CheckOut)
	b.WriteString("Type **confirm** to proceed or **cancel** to abort.")
	return b.String()
}

// ConfirmationOutcome is the result of answering the summary.
type ConfirmationOutcome int

const (
	ConfirmationRejected ConfirmationOutcome = iota
	ConfirmationAccepted
	ConfirmationCancelled
)

// ConfirmationResult pairs the outcome with the text shown to the guest.
type ConfirmationResult struct {
	Outcome ConfirmationOutcome
	Message string
}

// Confirm handles the guest's answer to the summary. Only "confirm" and
// "cancel" (any case) are accepted; anything else is a reminder.
func (s *State) Confirm(input string) ConfirmationResult {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "confirm":
		s.Confirmed = true
		return ConfirmationResult{Outcome: ConfirmationAccepted, Message: "✅ Booking confirmed. Processing your reservation..."}
	case "cancel":
		return ConfirmationResult{Outcome: ConfirmationCancelled, Message: "❌ Booking cancelled."}
	default:
		return ConfirmationResult{Outcome: ConfirmationRejected, Message: "Please type **confirm** or **cancel**."}
	}
}
