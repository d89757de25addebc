// Package booking implements the slot-filling flow that collects a guest's
// room reservation one field at a time and then asks for confirmation.
package booking

import "fmt"

// Field names one of the details collected during a booking.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldEmail
	FieldPhone
	FieldRoomType
	FieldCheckIn
	FieldCheckOut
)

// RequiredFields lists every field a booking needs, in the order they are asked.
var RequiredFields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldRoomType,
	FieldCheckIn,
	FieldCheckOut,
}

// String returns the wire name of the field ("" for FieldNone).
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldRoomType:
		return "room_type"
	case FieldCheckIn:
		return "check_in"
	case FieldCheckOut:
		return "check_out"
	default:
		return ""
	}
}

// ParseField maps a wire name back to a Field.
func ParseField(name string) (Field, bool) {
	if name == "" {
		return FieldNone, true
	}
	for _, f := range RequiredFields {
		if f.String() == name {
			return f, true
		}
	}
	return FieldNone, false
}

// Prompt is the question asked to collect the field.
func (f Field) Prompt() string {
	switch f {
	case FieldName:
		return "👤 May I have your full name?"
	case FieldEmail:
		return "📧 Please share your email address."
	case FieldPhone:
		return "📱 What is your phone number?"
	case FieldRoomType:
		return "🏨 Which room would you like? (**Standard** / **Deluxe** / **Suite**)"
	case FieldCheckIn:
		return "📅 What is your check-in date? (Format: **YYYY-MM-DD**)"
	case FieldCheckOut:
		return "📅 What is your check-out date? (Format: **YYYY-MM-DD**)"
	default:
		return ""
	}
}

// MarshalText lets the field round-trip through JSON session snapshots.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses the wire name written by MarshalText.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, ok := ParseField(string(text))
	if !ok {
		return fmt.Errorf("booking: unknown field %q", string(text))
	}
	*f = parsed
	return nil
}

// Room types a guest can book.
const (
	RoomStandard = "standard"
	RoomDeluxe   = "deluxe"
	RoomSuite    = "suite"
)

// ValidRoomTypes is the closed set accepted by the room_type validator.
var ValidRoomTypes = []string{RoomStandard, RoomDeluxe, RoomSuite}
